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
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi/common"
)

func TestMethodEncodeStatic(t *testing.T) {
	t.Parallel()
	method, err := ParseMethod("baz(uint32 x, bool y)")
	require.NoError(t, err)

	got, err := method.Encode(Uint(uint32(69)), Bool(true))
	require.NoError(t, err)
	want := unhex(t, "cdcd77c0", word("45"), word("1"))
	assert.Equal(t, want, got)
}

func TestMethodEncodeDynamic(t *testing.T) {
	t.Parallel()
	method, err := ParseMethod("sam(bytes,bool,uint256[])")
	require.NoError(t, err)

	got, err := method.Encode(
		Bytes([]byte("dave")),
		Bool(true),
		Array(Uint256Type, BigUint(big.NewInt(1)), BigUint(big.NewInt(2)), BigUint(big.NewInt(3))),
	)
	require.NoError(t, err)
	want := unhex(t, "a5643bf2",
		word("60"), word("1"), word("a0"),
		word("4"), rword("64617665"),
		word("3"), word("1"), word("2"), word("3"),
	)
	assert.Equal(t, want, got)
}

func TestEncodeMixed(t *testing.T) {
	t.Parallel()
	// f(uint256,uint32[],bytes10,bytes) from the Solidity ABI documentation.
	method, err := ParseMethod("f(uint256,uint32[],bytes10,bytes)")
	require.NoError(t, err)
	assert.Equal(t, "8be65246", common.Bytes2Hex(method.ID))

	got, err := method.Encode(
		BigUint(big.NewInt(0x123)),
		Array(MustParseType("uint32"), Uint(uint32(0x456)), Uint(uint32(0x789))),
		FixedBytes([]byte("1234567890")),
		Bytes([]byte("Hello, world!")),
	)
	require.NoError(t, err)
	want := unhex(t, "8be65246",
		word("123"), word("80"), rword("31323334353637383930"), word("e0"),
		word("2"), word("456"), word("789"),
		word("d"), rword("48656c6c6f2c20776f726c6421"),
	)
	assert.Equal(t, want, got)
}

func TestEncodeNestedDynamic(t *testing.T) {
	t.Parallel()
	// g(uint256[][],string[]) from the Solidity ABI documentation.
	types := []Type{MustParseType("uint256[][]"), MustParseType("string[]")}
	got, err := EncodeValues(types, []interface{}{
		[][]*big.Int{{big.NewInt(1), big.NewInt(2)}, {big.NewInt(3)}},
		[]string{"one", "two", "three"},
	})
	require.NoError(t, err)
	want := unhex(t,
		word("40"), word("140"),
		word("2"), word("40"), word("a0"),
		word("2"), word("1"), word("2"),
		word("1"), word("3"),
		word("3"), word("60"), word("a0"), word("e0"),
		word("3"), rword("6f6e65"),
		word("3"), rword("74776f"),
		word("5"), rword("7468726565"),
	)
	assert.Equal(t, want, got)

	values, err := Decode(types, got)
	require.NoError(t, err)
	assert.Equal(t, "[[1, 2], [3]]", values[0].String())
	assert.Equal(t, `["one", "two", "three"]`, values[1].String())
}

func TestEncodeIntegers(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		value WrappedValue
		want  string
	}{
		{Int(int8(-1)), "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{Int(int8(-128)), "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff80"},
		{Int(int8(127)), word("7f")},
		{Int(int64(-2)), "fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"},
		{Uint(uint8(255)), word("ff")},
		{Uint(uint64(1) << 63), word("8000000000000000")},
		{Uint256(uint256.NewInt(0).SetAllOne()), "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"},
		{BigInt(new(big.Int).Lsh(big.NewInt(-1), 255)), "8000000000000000000000000000000000000000000000000000000000000000"},
	}
	for _, test := range tests {
		got, err := Encode(test.value)
		require.NoError(t, err, test.value.String())
		assert.Equal(t, test.want, common.Bytes2Hex(got), test.value.String())
	}
}

func TestEncodeTypeMismatch(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		typ   string
		value interface{}
	}{
		{"uint8", 256},
		{"uint8", -1},
		{"int8", 128},
		{"int8", -129},
		{"uint256", new(big.Int).Lsh(common.Big1, 256)},
		{"bool", 1},
		{"address", "0x01"},
		{"bytes2", []byte{1, 2, 3}},
		{"uint256[2]", []int{1, 2, 3}},
		{"(uint8,bool)", []interface{}{1}},
		{"string", nil},
	}
	for _, test := range tests {
		_, err := EncodeValue(MustParseType(test.typ), test.value)
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("%s <- %v: got error %v, want %v", test.typ, test.value, err, ErrTypeMismatch)
		}
	}
}

func TestEncodeFixedPointUnsupported(t *testing.T) {
	t.Parallel()
	_, err := EncodeValue(MustParseType("fixed128x18"), 1)
	assert.ErrorIs(t, err, ErrTypeNotSupported)
}

func TestEncodeWrappedTypeMustMatch(t *testing.T) {
	t.Parallel()
	_, err := EncodeValue(MustParseType("uint256"), Uint(uint32(1)))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	method, err := ParseMethod("transfer(address,uint256)")
	require.NoError(t, err)
	_, err = method.Encode(Address(common.Address{}))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestEncodeEmptyDynamicArray(t *testing.T) {
	t.Parallel()
	got, err := Encode(Array(Uint256Type))
	require.NoError(t, err)
	assert.Equal(t, unhex(t, word("20"), word("0")), got)
}

func TestEncodeStructs(t *testing.T) {
	t.Parallel()
	type leg struct {
		Token  common.Address
		Amount *big.Int
	}
	typ, err := NewType("tuple[]", "", []ArgumentMarshaling{
		{Name: "token", Type: "address"},
		{Name: "amount", Type: "uint256"},
	})
	require.NoError(t, err)

	token := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	got, err := EncodeValue(typ, []leg{{token, big.NewInt(7)}})
	require.NoError(t, err)
	want := unhex(t, word("20"), word("1"), word("aa"), word("7"))
	assert.Equal(t, want, got)

	// Unnamed components fall back to field order.
	anon := MustParseType("(address,uint256)")
	got, err = EncodeValue(anon, leg{token, big.NewInt(7)})
	require.NoError(t, err)
	assert.Equal(t, unhex(t, word("aa"), word("7")), got)
}

func TestEncodeFixedBytesPadding(t *testing.T) {
	t.Parallel()
	got, err := EncodeValue(MustParseType("bytes4"), [2]byte{0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, rword("dead"), common.Bytes2Hex(got))

	got, err = Encode(Hash(common.HexToHash("0x01")))
	require.NoError(t, err)
	assert.Equal(t, word("1"), common.Bytes2Hex(got))
}

func TestArgumentsPack(t *testing.T) {
	t.Parallel()
	args := Arguments{
		{Name: "to", Type: AddressType},
		{Name: "memo", Type: StringType},
	}
	got, err := args.Pack(common.HexToAddress("0x01"), "hi")
	require.NoError(t, err)
	want := unhex(t, word("1"), word("40"), word("2"), rword("6869"))
	assert.Equal(t, want, got)

	_, err = args.Pack("only one")
	assert.Error(t, err)
}
