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
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
)

// splitTypes splits a comma separated type list, leaving commas inside tuple
// parentheses alone.
func splitTypes(list string) ([]string, error) {
	var (
		types []string
		depth int
		start int
	)
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ')' at offset %d of %q", i, list)
			}
		case ',':
			if depth == 0 {
				types = append(types, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '(' in %q", list)
	}
	if last := strings.TrimSpace(list[start:]); last != "" || len(types) > 0 {
		types = append(types, last)
	}
	for _, t := range types {
		if t == "" {
			return nil, fmt.Errorf("empty type in %q", list)
		}
	}
	return types, nil
}

func parseTypeList(list string) ([]abi.Type, error) {
	names, err := splitTypes(list)
	if err != nil {
		return nil, err
	}
	types := make([]abi.Type, len(names))
	for i, name := range names {
		if types[i], err = abi.ParseType(name); err != nil {
			return nil, err
		}
	}
	return types, nil
}

// parseArgs converts command line arguments into values accepted by the
// encoder, one argument per type.
func parseArgs(types []abi.Type, args []string) ([]interface{}, error) {
	if len(args) != len(types) {
		return nil, fmt.Errorf("have %d arguments for %d types", len(args), len(types))
	}
	values := make([]interface{}, len(args))
	for i, arg := range args {
		v, err := parseArg(types[i], arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%v): %w", i, types[i], err)
		}
		values[i] = v
	}
	return values, nil
}

// parseArg interprets s according to t. Scalars use their natural text form:
// decimal or 0x-prefixed integers, true/false, hex addresses and byte
// strings, raw text for strings. Arrays and tuples are JSON arrays whose
// members follow the same rules, e.g. ["0xab..",[1,2],"text"].
func parseArg(t abi.Type, s string) (interface{}, error) {
	switch t.T {
	case abi.UintTy, abi.IntTy:
		n, ok := parseInteger(s)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		return n, nil
	case abi.BoolTy:
		return strconv.ParseBool(s)
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case abi.StringTy:
		return s, nil
	case abi.BytesTy, abi.FixedBytesTy:
		return hexutil.Decode(s)
	case abi.SliceTy, abi.ArrayTy, abi.TupleTy:
		var members []json.RawMessage
		if err := json.Unmarshal([]byte(s), &members); err != nil {
			return nil, fmt.Errorf("want a JSON array for %v: %v", t, err)
		}
		var memberType func(int) abi.Type
		switch t.T {
		case abi.TupleTy:
			if len(members) != len(t.TupleElems) {
				return nil, fmt.Errorf("have %d members for %v", len(members), t)
			}
			memberType = func(i int) abi.Type { return *t.TupleElems[i] }
		default:
			memberType = func(int) abi.Type { return *t.Elem }
		}
		list := make([]interface{}, len(members))
		for i, raw := range members {
			v, err := parseArg(memberType(i), jsonText(raw))
			if err != nil {
				return nil, fmt.Errorf("member %d: %w", i, err)
			}
			list[i] = v
		}
		return list, nil
	}
	return nil, fmt.Errorf("%w: %v", abi.ErrTypeNotSupported, t)
}

// jsonText unquotes JSON strings and returns any other JSON value verbatim.
func jsonText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func parseInteger(s string) (*big.Int, bool) {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	var (
		n  *big.Int
		ok bool
	)
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		n, ok = new(big.Int).SetString(digits[2:], 16)
	} else {
		n, ok = new(big.Int).SetString(digits, 10)
	}
	if !ok {
		return nil, false
	}
	if neg {
		n.Neg(n)
	}
	return n, true
}
