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
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto"
)

const transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestEventSignature(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("event Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	assert.Equal(t, "Transfer", event.Name)
	assert.Equal(t, "Transfer(address,address,uint256)", event.Sig)
	assert.Equal(t, transferTopic, event.ID.Hex())
	assert.Equal(t, "event Transfer(address indexed from, address indexed to, uint256 value)", event.String())
	assert.Len(t, event.Inputs.Indexed(), 2)
}

func TestEventDecodeLog(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)

	topics := []common.Hash{
		common.HexToHash(transferTopic),
		common.BytesToHash(alice.Bytes()),
		common.BytesToHash(bob.Bytes()),
	}
	data := unhex(t, word("de0b6b3a7640000"))

	out, err := event.DecodeLog(topics, data)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, alice, out["from"].Address())
	assert.Equal(t, bob, out["to"].Address())
	assert.Equal(t, "1000000000000000000", out["value"].String())
	assert.False(t, out["from"].Hashed())
}

func TestEventDecodeLogMismatch(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	data := unhex(t, word("1"))

	var tests = []struct {
		name   string
		topics []common.Hash
	}{
		{"no topics", nil},
		{"wrong signature", []common.Hash{crypto.Keccak256Hash([]byte("Approval(address,address,uint256)")), {}, {}}},
		{"missing indexed", []common.Hash{common.HexToHash(transferTopic), {}}},
		{"extra topic", []common.Hash{common.HexToHash(transferTopic), {}, {}, {}}},
	}
	for _, test := range tests {
		_, err := event.DecodeLog(test.topics, data)
		assert.ErrorIs(t, err, ErrDoesNotMatchSignature, test.name)
	}
}

func TestEventDecodeAnonymous(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("event Ping(address indexed from, uint64 indexed seq) anonymous")
	require.NoError(t, err)
	require.True(t, event.Anonymous)

	topics := []common.Hash{
		common.BytesToHash(alice.Bytes()),
		common.BigToHash(big.NewInt(42)),
	}
	out, err := event.DecodeLog(topics, nil)
	require.NoError(t, err)
	assert.Equal(t, alice, out["from"].Address())
	assert.Equal(t, uint64(42), out["seq"].Native())
}

func TestEventDecodeHashedParameters(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("Registered(string indexed name, uint256[] indexed ids, bytes32 indexed key, string note)")
	require.NoError(t, err)

	nameTopic := crypto.Keccak256Hash([]byte("vitalik"))
	idsTopic := crypto.Keccak256Hash(unhex(t, word("1"), word("2")))
	key := common.HexToHash("0xabcdef")
	topics := []common.Hash{event.ID, nameTopic, idsTopic, key}
	data := unhex(t, word("20"), word("2"), rword("6869"))

	out, err := event.DecodeLog(topics, data)
	require.NoError(t, err)

	assert.True(t, out["name"].Hashed())
	assert.Equal(t, nameTopic, out["name"].Native())
	assert.True(t, out["ids"].Hashed())
	assert.Equal(t, idsTopic.Hex(), out["ids"].String())
	assert.False(t, out["key"].Hashed())
	assert.Equal(t, key, out["key"].Hash())
	assert.Equal(t, "hi", out["note"].Text())

	// Hashed values cannot be packed again.
	_, err = EncodeValue(StringType, out["name"])
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestEventUnnamedInputs(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("Deposit(address indexed, uint256)")
	require.NoError(t, err)
	assert.Equal(t, "arg0", event.Inputs[0].Name)
	assert.Equal(t, "arg1", event.Inputs[1].Name)
}

func TestMakeTopics(t *testing.T) {
	t.Parallel()
	topics, err := MakeTopics(
		[]interface{}{alice},
		[]interface{}{big.NewInt(-1), int8(-2), uint32(7), true},
		[]interface{}{"vitalik", String("vitalik"), Array(Uint256Type, BigUint(big.NewInt(1)), BigUint(big.NewInt(2)))},
	)
	require.NoError(t, err)
	require.Len(t, topics, 3)

	assert.Equal(t, common.BytesToHash(alice.Bytes()), topics[0][0])
	assert.Equal(t, common.HexToHash("0x"+"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"), topics[1][0])
	assert.Equal(t, common.HexToHash("0x"+"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe"), topics[1][1])
	assert.Equal(t, common.BigToHash(big.NewInt(7)), topics[1][2])
	assert.Equal(t, common.BigToHash(big.NewInt(1)), topics[1][3])

	vitalik := crypto.Keccak256Hash([]byte("vitalik"))
	assert.Equal(t, vitalik, topics[2][0])
	assert.Equal(t, vitalik, topics[2][1])
	assert.Equal(t, crypto.Keccak256Hash(unhex(t, word("1"), word("2"))), topics[2][2])

	_, err = MakeTopics([]interface{}{struct{}{}})
	assert.Error(t, err)
}

func TestParseTopics(t *testing.T) {
	t.Parallel()
	event, err := ParseEvent("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)

	var out struct {
		From  common.Address
		To    common.Address
		Value *big.Int
	}
	topics := []common.Hash{common.BytesToHash(alice.Bytes()), common.BytesToHash(bob.Bytes())}
	require.NoError(t, ParseTopics(&out, event.Inputs.Indexed(), topics))
	assert.Equal(t, alice, out.From)
	assert.Equal(t, bob, out.To)

	assert.Error(t, ParseTopics(&out, event.Inputs.Indexed(), topics[:1]))
	assert.Error(t, ParseTopics(out, event.Inputs.Indexed(), topics))
}
