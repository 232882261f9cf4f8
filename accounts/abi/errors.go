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
	"errors"
	"fmt"
)

var (
	// ErrTypeMalformed is returned for signature strings that do not describe a valid ABI type.
	ErrTypeMalformed = errors.New("abi: malformed type")
	// ErrTypeNotSupported is returned when encoding or decoding a type without a runtime
	// representation (fixed and ufixed).
	ErrTypeNotSupported = errors.New("abi: type not supported")
	// ErrCouldNotParseLength is returned when a length word is missing or claims more data
	// than is available.
	ErrCouldNotParseLength = errors.New("abi: could not parse length")
	// ErrCouldNotDecodeType is returned for undersized or malformed atomic payloads.
	ErrCouldNotDecodeType = errors.New("abi: could not decode type")
	// ErrAssociatedTypeNotFound is returned when no native representation exists for a type.
	ErrAssociatedTypeNotFound = errors.New("abi: no associated native type")
	// ErrRealisticIndexOutOfBounds is returned when an offset word points outside the data
	// or tail spans are inverted.
	ErrRealisticIndexOutOfBounds = errors.New("abi: offset out of bounds")
	// ErrDoesNotMatchSignature is returned when a log does not belong to the event it is
	// decoded against.
	ErrDoesNotMatchSignature = errors.New("abi: log does not match event signature")
	// ErrTypeMismatch is returned when a value cannot be represented by its declared type.
	ErrTypeMismatch = errors.New("abi: value does not match type")
)

// typeErr returns a formatted type casting error.
// typeErr 返回格式化的类型转换错误。
func typeErr(expected, got interface{}) error {
	return fmt.Errorf("%w: cannot use %v as type %v as argument", ErrTypeMismatch, got, expected)
}

func malformed(input string, format string, args ...interface{}) error {
	return fmt.Errorf("%w %q: %s", ErrTypeMalformed, input, fmt.Sprintf(format, args...))
}
