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

package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi/common"
)

func TestParseBlockNumber(t *testing.T) {
	var tests = []struct {
		input string
		want  BlockNumber
		fail  bool
	}{
		{input: "latest", want: LatestBlockNumber},
		{input: " pending ", want: PendingBlockNumber},
		{input: "safe", want: SafeBlockNumber},
		{input: "0x10", want: 16},
		{input: "0X1f", want: 31},
		{input: "100", want: 100},
		{input: "0xffffffffffffffff", fail: true},
		{input: "latests", fail: true},
		{input: "-1", fail: true},
	}
	for _, test := range tests {
		got, err := ParseBlockNumber(test.input)
		if test.fail {
			if err == nil {
				t.Errorf("%q: expected error, got %v", test.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: have %d, want %d", test.input, got, test.want)
		}
	}
}

func TestBlockNumberJSON(t *testing.T) {
	var bn BlockNumber
	require.NoError(t, json.Unmarshal([]byte(`"finalized"`), &bn))
	assert.Equal(t, FinalizedBlockNumber, bn)
	require.NoError(t, json.Unmarshal([]byte(`"0x2a"`), &bn))
	assert.Equal(t, BlockNumber(42), bn)
	assert.Error(t, json.Unmarshal([]byte(`"42"`), &bn))

	out, err := json.Marshal([]BlockNumber{LatestBlockNumber, 255, EarliestBlockNumber})
	require.NoError(t, err)
	assert.Equal(t, `["latest","0xff","earliest"]`, string(out))
	assert.Equal(t, "<invalid -9>", BlockNumber(-9).String())
}

func TestBlockNumberOrHash(t *testing.T) {
	hash := common.HexToHash("0x656c34545f90a730a19008c0e7a7cd4fb3895064b48d6d69761bd5abad681056")
	out, err := json.Marshal(BlockNumberOrHashWithHash(hash, false))
	require.NoError(t, err)
	assert.Equal(t, `"`+hash.Hex()+`"`, string(out))

	out, err = json.Marshal(BlockNumberOrHashWithNumber(PendingBlockNumber))
	require.NoError(t, err)
	assert.Equal(t, `"pending"`, string(out))
	assert.Equal(t, "nil", BlockNumberOrHash{}.String())
}
