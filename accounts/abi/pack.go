// Copyright 2016 The go-ethereum Authors
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
)

// Encode packs the wrapped values with the head/tail layout: one head slot per
// value holding either its in-place encoding or, for dynamic values, the byte
// offset of its tail relative to the start of the block.
// Encode 按照 head/tail 布局打包给定的值。
func Encode(values ...WrappedValue) ([]byte, error) {
	types := make([]Type, len(values))
	encs := make([]Encodable, len(values))
	for i, v := range values {
		types[i] = v.Type
		encs[i] = v
	}
	return packSequence(types, encs)
}

// EncodeValue packs a single native value as the only parameter of type t.
func EncodeValue(t Type, v interface{}) ([]byte, error) {
	return EncodeValues([]Type{t}, []interface{}{v})
}

// EncodeValues packs native values against the given types.
func EncodeValues(types []Type, values []interface{}) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrTypeMismatch, len(values), len(types))
	}
	encs := make([]Encodable, len(values))
	for i, v := range values {
		enc, err := AsEncodable(v)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		encs[i] = enc
	}
	return packSequence(types, encs)
}

// packSequence lays out values as a tuple: heads first, then the tails of the
// dynamic members in order.
func packSequence(types []Type, values []Encodable) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrTypeMismatch, len(values), len(types))
	}
	headLen, err := checkHeads(types)
	if err != nil {
		return nil, err
	}
	var (
		head = make([]byte, 0, headLen)
		tail []byte
	)
	for i, t := range types {
		packed, err := packValue(t, values[i])
		if err != nil {
			return nil, err
		}
		if t.IsDynamic() {
			head = append(head, packNum(headLen+len(tail))...)
			tail = append(tail, packed...)
		} else {
			head = append(head, packed...)
		}
	}
	return append(head, tail...), nil
}

func packValue(t Type, v Encodable) ([]byte, error) {
	if t.T == FixedPointTy {
		return nil, fmt.Errorf("%w: %v", ErrTypeNotSupported, t)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: missing value for %v", ErrTypeMismatch, t)
	}
	return v.EncodeABI(t)
}
