// Copyright 2015 The go-ethereum Authors
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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
)

// BlockNumber selects a block for state queries. Negative values are the
// named tags understood by every node.
// BlockNumber 用于在状态查询中选择区块，负值表示命名标签。
type BlockNumber int64

const (
	SafeBlockNumber      = BlockNumber(-4)
	FinalizedBlockNumber = BlockNumber(-3)
	LatestBlockNumber    = BlockNumber(-2)
	PendingBlockNumber   = BlockNumber(-1)
	EarliestBlockNumber  = BlockNumber(0)
)

var blockTags = map[string]BlockNumber{
	"safe":      SafeBlockNumber,
	"finalized": FinalizedBlockNumber,
	"latest":    LatestBlockNumber,
	"pending":   PendingBlockNumber,
	"earliest":  EarliestBlockNumber,
}

// ParseBlockNumber accepts a tag name, a 0x-prefixed hex number or a decimal number.
func ParseBlockNumber(s string) (BlockNumber, error) {
	s = strings.TrimSpace(s)
	if bn, ok := blockTags[s]; ok {
		return bn, nil
	}
	var (
		n   uint64
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err = hexutil.DecodeUint64(s)
	} else {
		n, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q", s)
	}
	return checkedBlockNumber(n)
}

func checkedBlockNumber(n uint64) (BlockNumber, error) {
	if n > math.MaxInt64 {
		return 0, errors.New("block number larger than int64")
	}
	return BlockNumber(n), nil
}

// UnmarshalJSON accepts a tag name or a hex quantity, quoted or not.
func (bn *BlockNumber) UnmarshalJSON(data []byte) error {
	input := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if tag, ok := blockTags[input]; ok {
		*bn = tag
		return nil
	}
	n, err := hexutil.DecodeUint64(input)
	if err != nil {
		return err
	}
	*bn, err = checkedBlockNumber(n)
	return err
}

// Int64 returns the block number as int64.
func (bn BlockNumber) Int64() int64 {
	return int64(bn)
}

// MarshalText renders tags by name and other numbers as hex quantities.
func (bn BlockNumber) MarshalText() ([]byte, error) {
	return []byte(bn.String()), nil
}

func (bn BlockNumber) String() string {
	for tag, n := range blockTags {
		if n == bn {
			return tag
		}
	}
	if bn < 0 {
		return fmt.Sprintf("<invalid %d>", bn)
	}
	return hexutil.Uint64(bn).String()
}

// BlockNumberOrHash selects a block either by number or by hash.
type BlockNumberOrHash struct {
	BlockNumber      *BlockNumber `json:"blockNumber,omitempty"`
	BlockHash        *common.Hash `json:"blockHash,omitempty"`
	RequireCanonical bool         `json:"requireCanonical,omitempty"`
}

// MarshalText renders the hash when set, the block number otherwise. This is
// the form nodes accept for the block parameter of eth_call.
func (bnh BlockNumberOrHash) MarshalText() ([]byte, error) {
	return []byte(bnh.String()), nil
}

func (bnh BlockNumberOrHash) String() string {
	switch {
	case bnh.BlockNumber != nil:
		return bnh.BlockNumber.String()
	case bnh.BlockHash != nil:
		return bnh.BlockHash.Hex()
	}
	return "nil"
}

// BlockNumberOrHashWithNumber selects the block by number.
func BlockNumberOrHashWithNumber(number BlockNumber) BlockNumberOrHash {
	return BlockNumberOrHash{BlockNumber: &number}
}

// BlockNumberOrHashWithHash selects the block by hash. canonical asks the
// node to reject blocks that are no longer on the main chain.
func BlockNumberOrHashWithHash(hash common.Hash, canonical bool) BlockNumberOrHash {
	return BlockNumberOrHash{BlockHash: &hash, RequireCanonical: canonical}
}
