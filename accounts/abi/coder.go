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

package abi

import (
	"fmt"

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
)

// The functions below form a stateless, hex-in hex-out facade over the codec
// for callers that shuttle JSON-RPC strings around.

// EncodeFunctionSignature returns the 0x-prefixed 4 byte selector of a
// function signature such as "transfer(address,uint256)". Parameter names and
// the function keyword are allowed.
// EncodeFunctionSignature 返回函数签名的 4 字节选择器。
func EncodeFunctionSignature(sig string) (string, error) {
	method, err := ParseMethod(sig)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(method.ID), nil
}

// EncodeEventSignature returns the 0x-prefixed 32 byte topic of an event
// signature such as "Transfer(address,address,uint256)".
func EncodeEventSignature(sig string) (string, error) {
	event, err := ParseEvent(sig)
	if err != nil {
		return "", err
	}
	return event.ID.Hex(), nil
}

// EncodeParameter encodes a single value of the given type.
func EncodeParameter(typ string, value interface{}) (string, error) {
	return EncodeParameters([]string{typ}, []interface{}{value})
}

// EncodeParameters encodes values against the given type signatures.
func EncodeParameters(types []string, values []interface{}) (string, error) {
	parsed, err := parseTypes(types)
	if err != nil {
		return "", err
	}
	enc, err := EncodeValues(parsed, values)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(enc), nil
}

// DecodeParameter decodes a single value of the given type from hex data.
func DecodeParameter(typ string, data string) (Value, error) {
	values, err := DecodeParameters([]string{typ}, data)
	if err != nil {
		return Value{}, err
	}
	return values[0], nil
}

// DecodeParameters decodes hex data against the given type signatures.
// DecodeParameters 按给定的类型签名解码十六进制数据。
func DecodeParameters(types []string, data string) ([]Value, error) {
	parsed, err := parseTypes(types)
	if err != nil {
		return nil, err
	}
	return DecodeHex(parsed, data)
}

// DecodeOutputs decodes hex data against a named parameter list, keying the
// results by parameter name. Unnamed parameters are keyed by position.
func DecodeOutputs(outputs Arguments, data string) (map[string]Value, error) {
	raw, err := decodeHexInput(data)
	if err != nil {
		return nil, err
	}
	values, err := Decode(outputs.Types(), raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(values))
	for i, v := range values {
		name := outputs[i].Name
		if name == "" {
			name = fmt.Sprint(i)
		}
		out[name] = v
	}
	return out, nil
}

// DecodeLog decodes a log record given as hex strings against an event
// signature, e.g. "event Transfer(address indexed from, address indexed to, uint256 value)".
func DecodeLog(event Event, data string, topics []string) (map[string]Value, error) {
	raw, err := decodeHexInput(data)
	if err != nil {
		return nil, err
	}
	hashes := make([]common.Hash, len(topics))
	for i, topic := range topics {
		b, err := hexutil.Decode(topic)
		if err != nil {
			return nil, fmt.Errorf("%w: topic %d: %v", ErrCouldNotDecodeType, i, err)
		}
		if len(b) != common.HashLength {
			return nil, fmt.Errorf("%w: topic %d has %d bytes", ErrCouldNotDecodeType, i, len(b))
		}
		hashes[i] = common.BytesToHash(b)
	}
	return event.DecodeLog(hashes, raw)
}

func parseTypes(types []string) ([]Type, error) {
	parsed := make([]Type, len(types))
	for i, t := range types {
		typ, err := ParseType(t)
		if err != nil {
			return nil, err
		}
		parsed[i] = typ
	}
	return parsed, nil
}
