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

// Package ethclient is a typed client for the subset of the Ethereum JSON-RPC
// API needed to call contracts and read their logs.
package ethclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/sunyihoo/go-ethabi"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
	"github.com/sunyihoo/go-ethabi/core/types"
	"github.com/sunyihoo/go-ethabi/rpc"
)

// revertErrorCode is the JSON-RPC error code nodes use for reverted calls.
const revertErrorCode = 3

// Client wraps an rpc.Client with typed eth_* methods.
// Client 定义了以太坊 RPC API 的类型化封装。
type Client struct {
	c *rpc.Client
}

var (
	_ ethereum.ContractCaller        = (*Client)(nil)
	_ ethereum.PendingContractCaller = (*Client)(nil)
	_ ethereum.CodeReader            = (*Client)(nil)
	_ ethereum.LogFilterer           = (*Client)(nil)
	_ ethereum.BlockNumberReader     = (*Client)(nil)
	_ ethereum.ChainIDReader         = (*Client)(nil)
)

// Dial connects to the node at rawurl.
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

// DialContext connects to the node at rawurl. ctx only bounds the dial.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient wraps an existing connection.
func NewClient(c *rpc.Client) *Client {
	return &Client{c: c}
}

// Close closes the connection.
func (ec *Client) Close() { ec.c.Close() }

// Client returns the wrapped connection for methods this package lacks.
func (ec *Client) Client() *rpc.Client { return ec.c }

// ChainID returns the chain ID reported by eth_chainId, or ethereum.NotFound
// when the node answers null.
// ChainID 检索当前的链 ID。
func (ec *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var id *hexutil.Big
	if err := ec.c.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return nil, err
	}
	if id == nil {
		return nil, ethereum.NotFound
	}
	return id.ToInt(), nil
}

// BlockNumber returns the number of the head block.
func (ec *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var head hexutil.Uint64
	err := ec.c.CallContext(ctx, &head, "eth_blockNumber")
	return uint64(head), err
}

// CodeAt returns the code deployed at account. A nil blockNumber reads the
// latest block.
func (ec *Client) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return ec.bytesCall(ctx, "eth_getCode", account, toBlockNumArg(blockNumber))
}

// CodeAtHash is like CodeAt but selects the block by hash.
func (ec *Client) CodeAtHash(ctx context.Context, account common.Address, blockHash common.Hash) ([]byte, error) {
	return ec.bytesCall(ctx, "eth_getCode", account, rpc.BlockNumberOrHashWithHash(blockHash, false))
}

// CallContract runs msg with eth_call on the state of the given block and
// returns the output. A nil blockNumber runs against the latest block. Old
// state may have been pruned by the node.
//
// CallContract 通过 eth_call 模拟合约调用，返回执行结果。
func (ec *Client) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return ec.bytesCall(ctx, "eth_call", toCallArg(msg), toBlockNumArg(blockNumber))
}

// CallContractAtHash is like CallContract but selects the block by hash.
func (ec *Client) CallContractAtHash(ctx context.Context, msg ethereum.CallMsg, blockHash common.Hash) ([]byte, error) {
	return ec.bytesCall(ctx, "eth_call", toCallArg(msg), rpc.BlockNumberOrHashWithHash(blockHash, false))
}

// PendingCallContract runs msg against the pending state.
func (ec *Client) PendingCallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return ec.bytesCall(ctx, "eth_call", toCallArg(msg), rpc.PendingBlockNumber.String())
}

// bytesCall invokes a method whose result is a hex encoded byte string.
func (ec *Client) bytesCall(ctx context.Context, method string, args ...interface{}) ([]byte, error) {
	var out hexutil.Bytes
	if err := ec.c.CallContext(ctx, &out, method, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterLogs returns the logs matching q, fetched with a single eth_getLogs.
// FilterLogs 通过 eth_getLogs 执行日志过滤查询。
func (ec *Client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	arg, err := toFilterArg(q)
	if err != nil {
		return nil, err
	}
	var logs []types.Log
	if err := ec.c.CallContext(ctx, &logs, "eth_getLogs", arg); err != nil {
		return nil, err
	}
	return logs, nil
}

// RevertErrorData extracts the revert payload from the error of a reverted
// eth_call. It only recognizes nodes that report reverts with code 3 and the
// payload as hex error data.
func RevertErrorData(err error) ([]byte, bool) {
	var (
		rpcErr  rpc.Error
		dataErr rpc.DataError
	)
	if !errors.As(err, &rpcErr) || rpcErr.ErrorCode() != revertErrorCode || !errors.As(err, &dataErr) {
		return nil, false
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return nil, false
	}
	data, decErr := hexutil.Decode(hexData)
	if decErr != nil {
		return nil, false
	}
	return data, true
}

// callArg is the transaction object of eth_call.
type callArg struct {
	From                 common.Address  `json:"from"`
	To                   *common.Address `json:"to"`
	Input                hexutil.Bytes   `json:"input,omitempty"`
	Value                *hexutil.Big    `json:"value,omitempty"`
	Gas                  hexutil.Uint64  `json:"gas,omitempty"`
	GasPrice             *hexutil.Big    `json:"gasPrice,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
}

func toCallArg(msg ethereum.CallMsg) callArg {
	return callArg{
		From:                 msg.From,
		To:                   msg.To,
		Input:                msg.Data,
		Value:                (*hexutil.Big)(msg.Value),
		Gas:                  hexutil.Uint64(msg.Gas),
		GasPrice:             (*hexutil.Big)(msg.GasPrice),
		MaxFeePerGas:         (*hexutil.Big)(msg.GasFeeCap),
		MaxPriorityFeePerGas: (*hexutil.Big)(msg.GasTipCap),
	}
}

// filterArg is the filter object of eth_getLogs.
type filterArg struct {
	BlockHash *common.Hash     `json:"blockHash,omitempty"`
	FromBlock string           `json:"fromBlock,omitempty"`
	ToBlock   string           `json:"toBlock,omitempty"`
	Addresses []common.Address `json:"address"`
	Topics    [][]common.Hash  `json:"topics"`
}

func toFilterArg(q ethereum.FilterQuery) (filterArg, error) {
	arg := filterArg{Addresses: q.Addresses, Topics: q.Topics}
	if q.BlockHash != nil {
		if q.FromBlock != nil || q.ToBlock != nil {
			return filterArg{}, errors.New("cannot specify both BlockHash and FromBlock/ToBlock")
		}
		arg.BlockHash = q.BlockHash
		return arg, nil
	}
	arg.FromBlock = "0x0"
	if q.FromBlock != nil {
		arg.FromBlock = toBlockNumArg(q.FromBlock)
	}
	arg.ToBlock = toBlockNumArg(q.ToBlock)
	return arg, nil
}

// toBlockNumArg renders a block number parameter. Negative numbers stand for
// the named blocks of rpc.BlockNumber.
func toBlockNumArg(number *big.Int) string {
	switch {
	case number == nil:
		return rpc.LatestBlockNumber.String()
	case number.Sign() >= 0:
		return hexutil.EncodeBig(number)
	case number.IsInt64():
		return rpc.BlockNumber(number.Int64()).String()
	}
	return fmt.Sprintf("<invalid %d>", number)
}
