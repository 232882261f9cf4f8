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
	"math/big"

	"github.com/sunyihoo/go-ethabi"
	"github.com/sunyihoo/go-ethabi/common"
)

var (
	// ErrNoCode is returned by a call that came back empty because the target
	// account has no code at the queried block.
	ErrNoCode = errors.New("no contract code at given address")

	// ErrNoPendingState is returned for CallOpts.Pending on a backend that is
	// not a PendingContractCaller.
	ErrNoPendingState = errors.New("backend does not support pending state")

	// ErrNoBlockHashState is returned for CallOpts.BlockHash on a backend that
	// is not a BlockHashContractCaller.
	ErrNoBlockHashState = errors.New("backend does not support block hash state")
)

// ContractCaller is the read-only backend BoundContract.Call needs.
// ContractCaller 定义了以只读方式操作合约所需的方法。
type ContractCaller interface {
	// CodeAt tells an empty return value apart from a missing contract.
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)

	// CallContract runs eth_call with call.Data as input.
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// PendingContractCaller is implemented by backends able to call against the
// pending block.
type PendingContractCaller interface {
	PendingCallContract(ctx context.Context, call ethereum.CallMsg) ([]byte, error)
}

// BlockHashContractCaller is implemented by backends able to call against a
// block given by hash.
type BlockHashContractCaller interface {
	CodeAtHash(ctx context.Context, contract common.Address, blockHash common.Hash) ([]byte, error)
	CallContractAtHash(ctx context.Context, call ethereum.CallMsg, blockHash common.Hash) ([]byte, error)
}

// ContractFilterer is the backend BoundContract.FilterLogs queries.
type ContractFilterer interface {
	ethereum.LogFilterer
}

// ContractBackend is a backend serving both calls and log queries.
type ContractBackend interface {
	ContractCaller
	ContractFilterer
}
