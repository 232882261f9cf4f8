// Copyright 2017 The go-ethereum Authors
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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sunyihoo/go-ethabi/common"
)

// Decode unpacks data laid out with the head/tail encoding into one value per
// type. Decoding either succeeds for every type or fails as a whole.
// Decode 将 head/tail 编码的数据解包为每个类型对应的值。
func Decode(types []Type, data []byte) ([]Value, error) {
	return unpackSequence(types, data)
}

// DecodeHex is like Decode but takes hex input with an optional 0x prefix.
func DecodeHex(types []Type, input string) ([]Value, error) {
	data, err := decodeHexInput(input)
	if err != nil {
		return nil, err
	}
	return unpackSequence(types, data)
}

func decodeHexInput(input string) ([]byte, error) {
	if len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X') {
		input = input[2:]
	}
	data, err := hex.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex input: %v", ErrCouldNotDecodeType, err)
	}
	return data, nil
}

// pendingTail is a dynamic member whose offset has been read from the head but
// whose content is decoded after the head pass.
type pendingTail struct {
	index  int
	offset int
}

// unpackSequence decodes a tuple-shaped block. Static members are decoded in
// place while walking the head; dynamic members are resolved afterwards, each
// tail ending where the next one starts or at the end of the block.
func unpackSequence(types []Type, data []byte) ([]Value, error) {
	if _, err := checkHeads(types); err != nil {
		return nil, err
	}
	var (
		values = make([]Value, len(types))
		tails  []pendingTail
		cursor int
	)
	for i, t := range types {
		if t.IsDynamic() {
			if cursor+wordSize > len(data) {
				return nil, fmt.Errorf("%w: missing offset word for argument %d (%v)", ErrCouldNotDecodeType, i, t)
			}
			offset, err := readOffset(data[cursor:cursor+wordSize], len(data))
			if err != nil {
				return nil, err
			}
			tails = append(tails, pendingTail{index: i, offset: offset})
			cursor += wordSize
			continue
		}
		size := t.StaticSize()
		if cursor+size > len(data) {
			return nil, fmt.Errorf("%w: argument %d (%v) needs %d bytes at %d, have %d", ErrCouldNotDecodeType, i, t, size, cursor, len(data))
		}
		v, err := unpackStatic(t, data[cursor:cursor+size])
		if err != nil {
			return nil, err
		}
		values[i] = v
		cursor += size
	}
	for j, tail := range tails {
		end := len(data)
		if j+1 < len(tails) {
			end = tails[j+1].offset
		}
		if tail.offset < cursor || tail.offset > end {
			return nil, fmt.Errorf("%w: invalid tail span [%d, %d) for argument %d", ErrRealisticIndexOutOfBounds, tail.offset, end, tail.index)
		}
		v, err := unpackDynamic(types[tail.index], data[tail.offset:end])
		if err != nil {
			return nil, err
		}
		values[tail.index] = v
	}
	return values, nil
}

// unpackStatic decodes a non-dynamic type from exactly t.StaticSize() bytes.
func unpackStatic(t Type, b []byte) (Value, error) {
	switch t.T {
	case IntTy, UintTy:
		num, err := readInteger(t, b)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, num: num}, nil
	case BoolTy:
		flag, err := readBool(b)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, flag: flag}, nil
	case AddressTy:
		return Value{Type: t, data: common.CopyBytes(b[wordSize-common.AddressLength : wordSize])}, nil
	case FixedBytesTy:
		if t.Size <= 0 || t.Size > 32 {
			return Value{}, malformed(t.String(), "length must be between 1 and 32")
		}
		return Value{Type: t, data: common.CopyBytes(b[:t.Size])}, nil
	case ArrayTy:
		// A static fixed array is a flat run of its elements.
		elems, err := unpackSequence(repeatType(*t.Elem, t.Size), b)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, elems: elems}, nil
	case TupleTy:
		elems, err := unpackSequence(t.tupleTypes(), b)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, elems: elems}, nil
	case FixedPointTy:
		return Value{}, fmt.Errorf("%w: %v", ErrTypeNotSupported, t)
	}
	return Value{}, fmt.Errorf("%w: %v", ErrAssociatedTypeNotFound, t)
}

// unpackDynamic decodes a dynamic type from its tail span.
func unpackDynamic(t Type, tail []byte) (Value, error) {
	switch t.T {
	case StringTy, BytesTy:
		n, err := readLength(tail, 1)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, data: common.CopyBytes(tail[wordSize : wordSize+n])}, nil
	case SliceTy:
		n, err := readLength(tail, t.Elem.headSize())
		if err != nil {
			return Value{}, err
		}
		elems, err := unpackSequence(repeatType(*t.Elem, n), tail[wordSize:])
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, elems: elems}, nil
	case ArrayTy:
		// Every element of a dynamic array takes an offset slot in the head.
		if t.Size > len(tail)/wordSize {
			return Value{}, fmt.Errorf("%w: %v needs %d offset words, have %d bytes", ErrCouldNotDecodeType, t, t.Size, len(tail))
		}
		elems, err := unpackSequence(repeatType(*t.Elem, t.Size), tail)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, elems: elems}, nil
	case TupleTy:
		elems, err := unpackSequence(t.tupleTypes(), tail)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: t, elems: elems}, nil
	}
	return Value{}, fmt.Errorf("%w: %v", ErrAssociatedTypeNotFound, t)
}
