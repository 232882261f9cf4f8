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

package bind

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"

	"github.com/sunyihoo/go-ethabi"
	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
	"github.com/sunyihoo/go-ethabi/core/types"
	"github.com/sunyihoo/go-ethabi/rpc"
	"golang.org/x/sync/errgroup"
)

// CallOpts is the collection of options to fine tune a contract call request.
// CallOpts 是用于微调合约调用请求的选项集合。
type CallOpts struct {
	Pending     bool            // Whether to operate on the pending state or the last known one
	From        common.Address  // Optional the sender address, otherwise the first account is used
	BlockNumber *big.Int        // Optional the block number on which the call should be performed
	BlockHash   common.Hash     // Optional the block hash on which the call should be performed
	Context     context.Context // Network context to support cancellation and timeouts (nil = no timeout)
}

// FilterOpts is the collection of options to fine tune filtering for events
// within a bound contract.
type FilterOpts struct {
	Start uint64  // Start of the queried range
	End   *uint64 // End of the range (nil = latest)

	Context context.Context // Network context to support cancellation and timeouts (nil = no timeout)
}

// Event is a decoded contract log together with the log it was decoded from.
// Event 是解码后的合约日志及其原始日志。
type Event struct {
	Name   string
	Values map[string]abi.Value
	Raw    types.Log
}

// RevertError is returned by Call when the node reports a reverted execution
// and the revert payload could be decoded.
type RevertError struct {
	Reason string // decoded Error(string), Panic(uint256) or custom error
	Data   []byte // raw revert payload
	err    error
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("execution reverted: %s", e.Reason)
}

func (e *RevertError) Unwrap() error {
	return e.err
}

// BoundContract is the base wrapper object that reflects a contract on the
// Ethereum network. It contains a collection of methods that are used by the
// higher level contract bindings to operate.
//
// BoundContract 是反映以太坊网络上合约的基础封装对象。
type BoundContract struct {
	address  common.Address
	abi      abi.ABI
	caller   ContractCaller   // eth_call and eth_getCode
	filterer ContractFilterer // eth_getLogs
}

// NewBoundContract creates a low level contract interface through which calls
// and log queries can be made.
func NewBoundContract(address common.Address, abi abi.ABI, caller ContractCaller, filterer ContractFilterer) *BoundContract {
	return &BoundContract{
		address:  address,
		abi:      abi,
		caller:   caller,
		filterer: filterer,
	}
}

// NewContract binds address to a backend serving both calls and log queries,
// such as an ethclient.Client.
func NewContract(address common.Address, abi abi.ABI, backend ContractBackend) *BoundContract {
	return NewBoundContract(address, abi, backend, backend)
}

// Address returns the deployment address of the contract.
func (c *BoundContract) Address() common.Address {
	return c.address
}

// ABI returns the parsed contract interface.
func (c *BoundContract) ABI() abi.ABI {
	return c.abi
}

// Call invokes the (constant) contract method with params as input values and
// returns the decoded outputs in declaration order.
func (c *BoundContract) Call(opts *CallOpts, method string, params ...interface{}) ([]abi.Value, error) {
	input, err := c.abi.Pack(method, params...)
	if err != nil {
		return nil, err
	}
	output, err := c.call(opts, input)
	if err != nil {
		return nil, err
	}
	return c.abi.Unpack(method, output)
}

// CallInto is like Call but copies the outputs into result, a pointer to a
// struct with one field per output or to a single value for one output.
func (c *BoundContract) CallInto(opts *CallOpts, result interface{}, method string, params ...interface{}) error {
	input, err := c.abi.Pack(method, params...)
	if err != nil {
		return err
	}
	output, err := c.call(opts, input)
	if err != nil {
		return err
	}
	return c.abi.UnpackIntoInterface(result, method, output)
}

// call runs the raw call data against the selected state. Empty output from a
// contract without code is reported as ErrNoCode.
func (c *BoundContract) call(opts *CallOpts, input []byte) ([]byte, error) {
	// Don't crash on a lazy user
	if opts == nil {
		opts = new(CallOpts)
	}
	var (
		msg    = ethereum.CallMsg{From: opts.From, To: &c.address, Data: input}
		ctx    = ensureContext(opts.Context)
		code   []byte
		output []byte
		err    error
	)
	if opts.Pending {
		pb, ok := c.caller.(PendingContractCaller)
		if !ok {
			return nil, ErrNoPendingState
		}
		output, err = pb.PendingCallContract(ctx, msg)
		if err == nil && len(output) == 0 {
			// Make sure we have a contract to operate on, and bail out otherwise.
			if code, err = c.caller.CodeAt(ctx, c.address, big.NewInt(int64(rpc.PendingBlockNumber))); err != nil {
				return nil, err
			} else if len(code) == 0 {
				return nil, ErrNoCode
			}
		}
	} else if opts.BlockHash != (common.Hash{}) {
		bh, ok := c.caller.(BlockHashContractCaller)
		if !ok {
			return nil, ErrNoBlockHashState
		}
		output, err = bh.CallContractAtHash(ctx, msg, opts.BlockHash)
		if err == nil && len(output) == 0 {
			if code, err = bh.CodeAtHash(ctx, c.address, opts.BlockHash); err != nil {
				return nil, err
			} else if len(code) == 0 {
				return nil, ErrNoCode
			}
		}
	} else {
		output, err = c.caller.CallContract(ctx, msg, opts.BlockNumber)
		if err == nil && len(output) == 0 {
			if code, err = c.caller.CodeAt(ctx, c.address, opts.BlockNumber); err != nil {
				return nil, err
			} else if len(code) == 0 {
				return nil, ErrNoCode
			}
		}
	}
	if err != nil {
		return nil, c.revertError(err)
	}
	return output, nil
}

// revertError decodes the revert payload a node attached to a failed call,
// trying the standard Error/Panic encodings first and the contract's custom
// errors second. Undecodable errors are returned unchanged.
func (c *BoundContract) revertError(err error) error {
	var de rpc.DataError
	if !errors.As(err, &de) {
		return err
	}
	hexData, ok := de.ErrorData().(string)
	if !ok {
		return err
	}
	data, decErr := hexutil.Decode(hexData)
	if decErr != nil || len(data) < 4 {
		return err
	}
	if reason, decErr := c.abi.DecodeRevert(data); decErr == nil {
		return &RevertError{Reason: reason, Data: data, err: err}
	}
	return err
}

// FilterLogs retrieves the logs of the named event in the given block range and
// decodes them. query restricts the indexed parameters in declaration order, as
// accepted by abi.MakeTopics. Logs are decoded concurrently; the result keeps
// the order of the logs returned by the node.
//
// FilterLogs 检索并解码指定事件的日志，结果保持节点返回的日志顺序。
func (c *BoundContract) FilterLogs(opts *FilterOpts, name string, query ...[]interface{}) ([]*Event, error) {
	// Don't crash on a lazy user
	if opts == nil {
		opts = new(FilterOpts)
	}
	event, ok := c.abi.Events[name]
	if !ok {
		return nil, fmt.Errorf("event '%s' not found", name)
	}
	// Append the event selector to the query parameters and construct the topic set
	if !event.Anonymous {
		query = append([][]interface{}{{event.ID}}, query...)
	}
	topics, err := abi.MakeTopics(query...)
	if err != nil {
		return nil, err
	}
	config := ethereum.FilterQuery{
		Addresses: []common.Address{c.address},
		Topics:    topics,
		FromBlock: new(big.Int).SetUint64(opts.Start),
	}
	if opts.End != nil {
		config.ToBlock = new(big.Int).SetUint64(*opts.End)
	}
	logs, err := c.filterer.FilterLogs(ensureContext(opts.Context), config)
	if err != nil {
		return nil, err
	}

	var (
		events = make([]*Event, len(logs))
		g      errgroup.Group
	)
	g.SetLimit(runtime.NumCPU())
	for i := range logs {
		g.Go(func() error {
			values, err := event.DecodeLog(logs[i].Topics, logs[i].Data)
			if err != nil {
				return fmt.Errorf("log %d of tx %s: %w", logs[i].Index, logs[i].TxHash.Hex(), err)
			}
			events[i] = &Event{Name: name, Values: values, Raw: logs[i]}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return events, nil
}

// UnpackLog scans a log of the named event into out: data parameters by Copy
// rules, then indexed parameters from the topics.
func (c *BoundContract) UnpackLog(out interface{}, event string, log types.Log) error {
	ev, err := c.logEvent(event, log)
	if err != nil {
		return err
	}
	if len(ev.Inputs.NonIndexed()) > 0 {
		if err := c.abi.UnpackIntoInterface(out, event, log.Data); err != nil {
			return err
		}
	}
	return abi.ParseTopics(out, ev.Inputs.Indexed(), log.Topics[1:])
}

// UnpackLogIntoMap is like UnpackLog but fills a map keyed by parameter name.
func (c *BoundContract) UnpackLogIntoMap(out map[string]abi.Value, event string, log types.Log) error {
	ev, err := c.logEvent(event, log)
	if err != nil {
		return err
	}
	if len(ev.Inputs.NonIndexed()) > 0 {
		if err := c.abi.UnpackIntoMap(out, event, log.Data); err != nil {
			return err
		}
	}
	return abi.ParseTopicsIntoMap(out, ev.Inputs.Indexed(), log.Topics[1:])
}

// ensureContext is aimed at the case where the user supplied no context.
func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// logEvent checks that log was emitted by the named, non-anonymous event.
func (c *BoundContract) logEvent(name string, log types.Log) (abi.Event, error) {
	ev, ok := c.abi.Events[name]
	if !ok {
		return abi.Event{}, fmt.Errorf("event '%s' not found", name)
	}
	if len(log.Topics) == 0 {
		return abi.Event{}, errors.New("abi: no event signature")
	}
	if log.Topics[0] != ev.ID {
		return abi.Event{}, errors.New("abi: event signature mismatch")
	}
	return ev, nil
}
