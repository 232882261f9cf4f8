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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSignatures(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		sig  string
		want string
	}{
		{"transfer(address,uint256)", "0xa9059cbb"},
		{"function transfer(address to, uint256 amount) returns (bool)", "0xa9059cbb"},
		{"balanceOf(address)", "0x70a08231"},
		{"baz(uint32,bool)", "0xcdcd77c0"},
	}
	for _, test := range tests {
		got, err := EncodeFunctionSignature(test.sig)
		require.NoError(t, err, test.sig)
		assert.Equal(t, test.want, got, test.sig)
	}

	topic, err := EncodeEventSignature("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	assert.Equal(t, transferTopic, topic)

	_, err = EncodeFunctionSignature("transfer(address")
	assert.Error(t, err)
}

func TestEncodeDecodeParameters(t *testing.T) {
	t.Parallel()
	got, err := EncodeParameter("uint256", big.NewInt(8))
	require.NoError(t, err)
	assert.Equal(t, "0x"+word("8"), got)

	got, err = EncodeParameters([]string{"string", "uint256"}, []interface{}{"hello world", 8})
	require.NoError(t, err)
	assert.Equal(t, "0x"+word("40")+word("8")+word("b")+rword("68656c6c6f20776f726c64"), got)

	values, err := DecodeParameters([]string{"string", "uint256"}, got)
	require.NoError(t, err)
	assert.Equal(t, "hello world", values[0].Text())
	assert.Equal(t, "8", values[1].String())

	value, err := DecodeParameter("int8", "0x"+"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff80")
	require.NoError(t, err)
	assert.Equal(t, int8(-128), value.Native())

	_, err = EncodeParameter("uint7", 1)
	assert.ErrorIs(t, err, ErrTypeMalformed)
	_, err = DecodeParameter("bytes33", "0x")
	assert.ErrorIs(t, err, ErrTypeMalformed)
}

func TestDecodeOutputs(t *testing.T) {
	t.Parallel()
	method, err := ParseMethod("info() view returns (string name, uint8)")
	require.NoError(t, err)

	out, err := DecodeOutputs(method.Outputs, "0x"+word("40")+word("12")+word("3")+rword("544b4e"))
	require.NoError(t, err)
	assert.Equal(t, "TKN", out["name"].Text())
	assert.Equal(t, uint8(18), out["1"].Native())
}

func TestFacadeDecodeLog(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)

	topics := []string{
		transferTopic,
		"0x" + word("1111111111111111111111111111111111111111"),
		"0x" + word("2222222222222222222222222222222222222222"),
	}
	out, err := DecodeLog(event, "0x"+word("64"), topics)
	require.NoError(t, err)
	assert.Equal(t, alice, out["from"].Address())
	assert.Equal(t, bob, out["to"].Address())
	assert.Equal(t, "100", out["value"].String())

	_, err = DecodeLog(event, "0x"+word("64"), []string{transferTopic, "0x01", "0x02"})
	assert.ErrorIs(t, err, ErrCouldNotDecodeType)
	_, err = DecodeLog(event, "0x"+word("64"), topics[:2])
	assert.ErrorIs(t, err, ErrDoesNotMatchSignature)
}
