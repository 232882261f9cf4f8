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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeParseCanonical(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		input     string
		canonical string
		kind      byte
		dynamic   bool
		size      int
	}{
		{"uint", "uint256", UintTy, false, 32},
		{"int", "int256", IntTy, false, 32},
		{"uint8", "uint8", UintTy, false, 32},
		{"int24", "int24", IntTy, false, 32},
		{"bool", "bool", BoolTy, false, 32},
		{"address", "address", AddressTy, false, 32},
		{"bytes10", "bytes10", FixedBytesTy, false, 32},
		{"bytes32", "bytes32", FixedBytesTy, false, 32},
		{"bytes", "bytes", BytesTy, true, 0},
		{"string", "string", StringTy, true, 0},
		{"fixed", "fixed128x18", FixedPointTy, false, 32},
		{"ufixed64x10", "ufixed64x10", FixedPointTy, false, 32},
		{"uint256[3]", "uint256[3]", ArrayTy, false, 96},
		{"uint256[3][]", "uint256[3][]", SliceTy, true, 0},
		{"bytes32[2][3]", "bytes32[2][3]", ArrayTy, false, 192},
		{"bool[0]", "bool[0]", ArrayTy, false, 0},
		{"string[2]", "string[2]", ArrayTy, true, 0},
		{"(uint256,bool)", "(uint256,bool)", TupleTy, false, 64},
		{"(uint,string)", "(uint256,string)", TupleTy, true, 0},
		{"(string,uint256[4])[]", "(string,uint256[4])[]", SliceTy, true, 0},
		{"((int8,address)[2],bytes)", "((int8,address)[2],bytes)", TupleTy, true, 0},
		{"()", "()", TupleTy, false, 0},
	}
	for _, test := range tests {
		typ, err := ParseType(test.input)
		require.NoError(t, err, test.input)
		assert.Equal(t, test.canonical, typ.String(), test.input)
		assert.Equal(t, test.kind, typ.T, test.input)
		assert.Equal(t, test.dynamic, typ.IsDynamic(), test.input)
		assert.Equal(t, test.size, typ.StaticSize(), test.input)

		again, err := ParseType(typ.String())
		require.NoError(t, err, test.input)
		assert.True(t, typ.Equal(again), "round trip of %s", test.input)
	}
}

func TestTypeSuffixOrder(t *testing.T) {
	t.Parallel()
	typ := MustParseType("uint256[3][]")
	require.Equal(t, SliceTy, typ.T)
	require.Equal(t, ArrayTy, typ.Elem.T)
	assert.Equal(t, 3, typ.Elem.Size)
	assert.Equal(t, "uint256", typ.Elem.Elem.String())
}

func TestTypeParseMalformed(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"", "uint7", "int264", "uint0", "uint08", "bytes0", "bytes33", "fixed7x1", "fixed8x81",
		"uint256[", "uint256[a]", "uint256]", "(uint256", "(uint256,)", "tuple", "tuple[]",
		"function", "foo", "uint256 ", "[2]", "uint256[99999999999]",
		"uint256[2147483648][402653184]", "uint256[4294967295][4294967295][]",
		"(bool,uint256[4294967295][4294967295])",
	} {
		_, err := ParseType(input)
		if !errors.Is(err, ErrTypeMalformed) {
			t.Errorf("input %q: got error %v, want %v", input, err, ErrTypeMalformed)
		}
	}
}

func TestTypeLargeArrays(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		input string
		size  int
	}{
		{"uint256[4294967295]", 4294967295 * 32},
		{"bytes32[65536][65536]", 65536 * 65536 * 32},
		{"string[4294967295]", 0},
		{"(uint8,string[4294967295])[2]", 0},
	}
	for _, test := range tests {
		typ, err := ParseType(test.input)
		require.NoError(t, err, test.input)
		if got := typ.StaticSize(); got != test.size {
			t.Errorf("%s: static size %d, want %d", test.input, got, test.size)
		}
	}
}

func TestNewTypeComponents(t *testing.T) {
	t.Parallel()
	components := []ArgumentMarshaling{
		{Name: "owner", Type: "address"},
		{Name: "amounts", Type: "uint256[]"},
		{Name: "inner", Type: "tuple", Components: []ArgumentMarshaling{
			{Name: "flag", Type: "bool"},
		}},
		{Name: "owner", Type: "bytes32"},
	}
	typ, err := NewType("tuple[2]", "struct Vault.Position[2]", components)
	require.NoError(t, err)
	assert.Equal(t, "(address,uint256[],(bool),bytes32)[2]", typ.String())
	assert.Equal(t, "VaultPosition", typ.Elem.TupleRawName)
	assert.Equal(t, []string{"owner", "amounts", "inner", "owner0"}, typ.Elem.TupleRawNames)

	m := typ.marshaling("positions")
	assert.Equal(t, "tuple[2]", m.Type)
	assert.Equal(t, "struct VaultPosition[2]", m.InternalType)
	require.Len(t, m.Components, 4)
	assert.Equal(t, "tuple", m.Components[2].Type)
}

func TestTypeTextMarshaling(t *testing.T) {
	t.Parallel()
	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("(uint,string)[]")))
	text, err := typ.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "(uint256,string)[]", string(text))
	assert.Error(t, typ.UnmarshalText([]byte("uint9")))
}
