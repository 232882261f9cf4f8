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
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto"
)

const tokenABI = `[
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"info","stateMutability":"pure","inputs":[],"outputs":[{"name":"name","type":"string"},{"name":"decimals","type":"uint8"}]},
	{"type":"function","name":"foo","inputs":[{"name":"a","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"foo","inputs":[{"name":"a","type":"address"}],"outputs":[]},
	{"type":"function","name":"positions","stateMutability":"view","inputs":[],"outputs":[
		{"name":"","type":"tuple[]","internalType":"struct Book.Position[]","components":[
			{"name":"owner","type":"address"},{"name":"size","type":"int128"}]}]},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[
		{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
	{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]},
	{"type":"receive","stateMutability":"payable"},
	{"type":"fallback","stateMutability":"nonpayable"}
]`

func parseTokenABI(t *testing.T) ABI {
	t.Helper()
	parsed, err := JSON(strings.NewReader(tokenABI))
	require.NoError(t, err)
	return parsed
}

func TestJSONParse(t *testing.T) {
	t.Parallel()
	parsed := parseTokenABI(t)

	require.Len(t, parsed.Methods, 6)
	assert.Contains(t, parsed.Methods, "foo")
	assert.Contains(t, parsed.Methods, "foo0")
	assert.Equal(t, "foo(address)", parsed.Methods["foo0"].Sig)
	assert.Equal(t, "a9059cbb", common.Bytes2Hex(parsed.Methods["transfer"].ID))
	assert.Equal(t, "70a08231", common.Bytes2Hex(parsed.Methods["balanceOf"].ID))
	assert.True(t, parsed.Methods["balanceOf"].IsConstant())
	assert.False(t, parsed.Methods["transfer"].IsConstant())
	assert.Equal(t, "function balanceOf(address owner) view returns(uint256)", parsed.Methods["balanceOf"].String())

	positions := parsed.Methods["positions"].Outputs[0].Type
	assert.Equal(t, "(address,int128)[]", positions.String())
	assert.Equal(t, "BookPosition", positions.Elem.TupleRawName)

	require.Contains(t, parsed.Events, "Transfer")
	assert.Equal(t, transferTopic, parsed.Events["Transfer"].ID.Hex())
	require.Contains(t, parsed.Errors, "InsufficientBalance")
	assert.True(t, parsed.HasReceive())
	assert.True(t, parsed.HasFallback())
	assert.Len(t, parsed.Constructor.Inputs, 1)
}

func TestJSONInvalid(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		`[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint7"}]}]`,
		`[{"type":"unknown","name":"f"}]`,
		`[{"type":"receive","stateMutability":"nonpayable"}]`,
		`[{"type":"fallback"},{"type":"fallback"}]`,
		`{"type":"function"}`,
	} {
		_, err := JSON(strings.NewReader(input))
		assert.Error(t, err, input)
	}
}

func TestABIPackUnpack(t *testing.T) {
	t.Parallel()
	parsed := parseTokenABI(t)

	packed, err := parsed.Pack("transfer", bob, big.NewInt(10))
	require.NoError(t, err)
	want := unhex(t, "a9059cbb", word("2222222222222222222222222222222222222222"), word("a"))
	assert.Equal(t, want, packed)

	method, err := parsed.MethodById(packed)
	require.NoError(t, err)
	assert.Equal(t, "transfer", method.Name)
	args, err := method.DecodeInput(packed)
	require.NoError(t, err)
	assert.Equal(t, bob, args[0].Address())

	ctor, err := parsed.Pack("", big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, unhex(t, word("1")), ctor)

	_, err = parsed.Pack("missing")
	assert.Error(t, err)
	_, err = parsed.MethodById([]byte{1, 2})
	assert.Error(t, err)

	out := unhex(t, word("40"), word("12"), word("3"), rword("544b4e"))
	values, err := parsed.Unpack("info", out)
	require.NoError(t, err)
	assert.Equal(t, "TKN", values[0].Text())
	assert.Equal(t, uint8(18), values[1].Native())

	var info struct {
		Name     string
		Decimals uint8
	}
	require.NoError(t, parsed.UnpackIntoInterface(&info, "info", out))
	assert.Equal(t, "TKN", info.Name)
	assert.Equal(t, uint8(18), info.Decimals)

	m := make(map[string]Value)
	require.NoError(t, parsed.UnpackIntoMap(m, "info", out))
	assert.Equal(t, "TKN", m["name"].Text())

	_, err = parsed.Unpack("info", out[:len(out)-1])
	assert.Error(t, err)
}

func TestABILookups(t *testing.T) {
	t.Parallel()
	parsed := parseTokenABI(t)

	event, err := parsed.EventByID(common.HexToHash(transferTopic))
	require.NoError(t, err)
	assert.Equal(t, "Transfer", event.Name)
	_, err = parsed.EventByID(common.Hash{})
	assert.Error(t, err)

	var id [4]byte
	copy(id[:], crypto.Selector("InsufficientBalance(uint256,uint256)"))
	abiErr, err := parsed.ErrorByID(id)
	require.NoError(t, err)

	data := append(id[:], unhex(t, word("5"), word("9"))...)
	values, err := abiErr.Unpack(data)
	require.NoError(t, err)
	assert.Equal(t, "5", values[0].String())
	assert.Equal(t, "9", values[1].String())

	_, err = abiErr.Unpack(unhex(t, "deadbeef", word("5"), word("9")))
	assert.Error(t, err)
}

func TestUnpackRevert(t *testing.T) {
	t.Parallel()
	reason, err := Encode(String("not enough funds"))
	require.NoError(t, err)
	got, err := UnpackRevert(append(unhex(t, "08c379a0"), reason...))
	require.NoError(t, err)
	assert.Equal(t, "not enough funds", got)

	var tests = []struct {
		code string
		want string
	}{
		{"01", "assert(false)"},
		{"11", "arithmetic underflow or overflow"},
		{"32", "out-of-bounds access of an array or bytesN"},
		{"99", "unknown panic code: 0x99"},
	}
	for _, test := range tests {
		got, err := UnpackRevert(unhex(t, "4e487b71", word(test.code)))
		require.NoError(t, err)
		assert.Equal(t, test.want, got)
	}

	_, err = UnpackRevert(unhex(t, "deadbeef"))
	assert.Error(t, err)
	_, err = UnpackRevert([]byte{0x08})
	assert.Error(t, err)
}

func TestArgumentJSONRoundTrip(t *testing.T) {
	t.Parallel()
	var arg Argument
	input := `{"name":"legs","type":"tuple[2]","components":[{"name":"token","type":"address"},{"name":"amount","type":"uint96"}],"indexed":true}`
	require.NoError(t, json.Unmarshal([]byte(input), &arg))
	assert.Equal(t, "(address,uint96)[2]", arg.Type.String())
	assert.True(t, arg.Indexed)

	out, err := json.Marshal(arg)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDecodeCall(t *testing.T) {
	t.Parallel()
	parsed := parseTokenABI(t)
	bob := common.HexToAddress("0x2222222222222222222222222222222222222222")

	data, err := parsed.Pack("transfer", bob, big.NewInt(10))
	require.NoError(t, err)
	method, values, err := parsed.DecodeCall(data)
	require.NoError(t, err)
	assert.Equal(t, "transfer(address,uint256)", method.Sig)
	require.Len(t, values, 2)
	assert.Equal(t, bob, values[0].Address())
	assert.Equal(t, "10", values[1].String())

	method, values, err = parsed.DecodeCall(parsed.Methods["info"].ID)
	require.NoError(t, err)
	assert.Equal(t, "info", method.Name)
	assert.Empty(t, values)

	_, _, err = parsed.DecodeCall(data[:36])
	assert.ErrorContains(t, err, "transfer(address,uint256)")
	_, _, err = parsed.DecodeCall(unhex(t, "deadbeef"))
	assert.Error(t, err)
}

func TestDecodeRevert(t *testing.T) {
	t.Parallel()
	parsed := parseTokenABI(t)

	reason, err := Encode(String("paused"))
	require.NoError(t, err)
	got, err := parsed.DecodeRevert(append(unhex(t, "08c379a0"), reason...))
	require.NoError(t, err)
	assert.Equal(t, "paused", got)

	custom := parsed.Errors["InsufficientBalance"]
	got, err = parsed.DecodeRevert(append(common.CopyBytes(custom.ID[:4]), unhex(t, word("5"), word("9"))...))
	require.NoError(t, err)
	assert.Equal(t, "InsufficientBalance(5, 9)", got)

	_, err = parsed.DecodeRevert(append(common.CopyBytes(custom.ID[:4]), unhex(t, word("5"))...))
	assert.Error(t, err)
	_, err = parsed.DecodeRevert(unhex(t, "deadbeef"))
	assert.Error(t, err)
	_, err = parsed.DecodeRevert([]byte{1, 2})
	assert.Error(t, err)
}

func TestArgumentsCopy(t *testing.T) {
	t.Parallel()
	parsed := parseTokenABI(t)
	out := unhex(t, word("40"), word("12"), word("3"), rword("544b4e"))

	var list []interface{}
	require.NoError(t, parsed.UnpackIntoInterface(&list, "info", out))
	assert.Equal(t, []interface{}{"TKN", uint8(18)}, list)

	var short [1]interface{}
	assert.ErrorIs(t, parsed.UnpackIntoInterface(&short, "info", out), ErrAssociatedTypeNotFound)

	var partial struct{ Name string }
	assert.ErrorIs(t, parsed.UnpackIntoInterface(&partial, "info", out), ErrAssociatedTypeNotFound)

	var info struct {
		Name     string
		Decimals uint8
	}
	assert.Error(t, parsed.UnpackIntoInterface(info, "info", out))
}

func TestMethodString(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		method Method
		want   string
	}{
		{
			NewMethod("f", "f", Function, "", false, false, Arguments{{Type: MustParseType("uint256")}}, nil),
			"function f(uint256) returns()",
		},
		{
			NewMethod("g", "g", Function, "payable", false, true,
				Arguments{{Name: "to", Type: MustParseType("address")}},
				Arguments{{Name: "ok", Type: MustParseType("bool")}, {Type: MustParseType("bytes")}}),
			"function g(address to) payable returns(bool ok, bytes)",
		},
		{NewMethod("", "", Receive, "payable", false, true, nil, nil), "receive() payable returns()"},
		{NewMethod("", "", Constructor, "nonpayable", false, false, nil, nil), "constructor() returns()"},
	}
	for i, test := range tests {
		if got := test.method.String(); got != test.want {
			t.Errorf("test %d: have %q, want %q", i, got, test.want)
		}
	}
}

func TestNewEventKeepsInputs(t *testing.T) {
	t.Parallel()
	inputs := Arguments{{Type: MustParseType("address"), Indexed: true}, {Name: "value", Type: MustParseType("uint256")}}
	event := NewEvent("Moved", "Moved", false, inputs)
	assert.Equal(t, "", inputs[0].Name)
	assert.Equal(t, "arg0", event.Inputs[0].Name)
	assert.Equal(t, "event Moved(address indexed arg0, uint256 value)", event.String())
	assert.Equal(t, "Moved(address,uint256)", event.Sig)
}
