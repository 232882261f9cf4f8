// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/cmd/utils"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
	"github.com/urfave/cli/v2"
)

var (
	selectorCommand = &cli.Command{
		Action:    selector,
		Name:      "selector",
		Usage:     "Print the 4 byte selector of a function signature",
		ArgsUsage: "<signature>",
		Description: `
    ethabi selector "transfer(address to, uint256 amount)"

prints the selector followed by the canonical signature.`,
	}
	topicCommand = &cli.Command{
		Action:    topic,
		Name:      "topic",
		Usage:     "Print the topic of an event signature",
		ArgsUsage: "<signature>",
	}
	encodeCommand = &cli.Command{
		Action:    encode,
		Name:      "encode",
		Usage:     "ABI encode values",
		ArgsUsage: "<value> [<value>...]",
		Flags:     []cli.Flag{utils.TypesFlag, utils.MethodFlag},
		Description: `
    ethabi encode --types "uint256,string" 42 hello
    ethabi encode --method "transfer(address,uint256)" 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 1000

Values of array and tuple types are given as JSON arrays. With --method the
output is prefixed with the function selector.`,
	}
	decodeCommand = &cli.Command{
		Action:    decode,
		Name:      "decode",
		Usage:     "Decode ABI encoded data",
		ArgsUsage: "<hex data>",
		Flags:     []cli.Flag{utils.TypesFlag, utils.MethodFlag, utils.ABIFileFlag, utils.JSONFlag},
		Description: `
    ethabi decode --types "uint256,string" 0x...
    ethabi decode --method "transfer(address,uint256)" 0xa9059cbb...
    ethabi decode --abi token.json 0xa9059cbb...

With --method the data is treated as call data and must start with the
function selector. With --abi the selector picks the method from the JSON ABI,
whose signature is printed before the values.`,
	}
)

func selector(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one signature argument")
	}
	method, err := abi.ParseMethod(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%s %s\n", hexutil.Encode(method.ID), method.Sig)
	return nil
}

func topic(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one signature argument")
	}
	event, err := abi.ParseEvent(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%s %s\n", event.ID.Hex(), event.Sig)
	return nil
}

// codecTarget resolves --types and --method into the parameter types and the
// optional method that prefixes call data.
func codecTarget(ctx *cli.Context) ([]abi.Type, *abi.Method, error) {
	switch {
	case ctx.IsSet(utils.MethodFlag.Name) && ctx.IsSet(utils.TypesFlag.Name):
		return nil, nil, errors.New("--types and --method are mutually exclusive")
	case ctx.IsSet(utils.MethodFlag.Name):
		method, err := abi.ParseMethod(ctx.String(utils.MethodFlag.Name))
		if err != nil {
			return nil, nil, err
		}
		return method.Inputs.Types(), &method, nil
	case ctx.IsSet(utils.TypesFlag.Name):
		types, err := parseTypeList(ctx.String(utils.TypesFlag.Name))
		return types, nil, err
	}
	return nil, nil, errors.New("either --types or --method is required")
}

func encode(ctx *cli.Context) error {
	types, method, err := codecTarget(ctx)
	if err != nil {
		return err
	}
	values, err := parseArgs(types, ctx.Args().Slice())
	if err != nil {
		return err
	}
	enc, err := abi.EncodeValues(types, values)
	if err != nil {
		return err
	}
	if method != nil {
		enc = append(append([]byte{}, method.ID...), enc...)
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(enc))
	return nil
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need exactly one hex data argument")
	}
	if ctx.IsSet(utils.ABIFileFlag.Name) {
		if ctx.IsSet(utils.TypesFlag.Name) || ctx.IsSet(utils.MethodFlag.Name) {
			return errors.New("--abi cannot be combined with --types or --method")
		}
		return decodeCall(ctx)
	}
	types, method, err := codecTarget(ctx)
	if err != nil {
		return err
	}
	var values []abi.Value
	if method != nil {
		data, err := hexutil.Decode(ctx.Args().First())
		if err != nil {
			return err
		}
		values, err = method.DecodeInput(data)
		if err != nil {
			return err
		}
	} else {
		values, err = abi.DecodeHex(types, ctx.Args().First())
		if err != nil {
			return err
		}
	}
	return printValues(ctx.App.Writer, values, ctx.Bool(utils.JSONFlag.Name))
}

// decodeCall decodes call data against the methods of the --abi file.
func decodeCall(ctx *cli.Context) error {
	contract, err := readABIFile(ctx)
	if err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return err
	}
	method, values, err := contract.DecodeCall(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, method.Sig)
	return printValues(ctx.App.Writer, values, ctx.Bool(utils.JSONFlag.Name))
}

// printValues writes one "type: value" line per value, or a JSON array.
func printValues(w io.Writer, values []abi.Value, asJSON bool) error {
	if asJSON {
		out, err := json.Marshal(values)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
	for _, v := range values {
		fmt.Fprintf(w, "%v: %v\n", v.Type, v)
	}
	return nil
}
