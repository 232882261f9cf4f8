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

package abi

import (
	"bytes"
	"fmt"

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto"
)

// Error is a custom error declared by a contract. Reverts carrying it start
// with the first 4 bytes of ID.
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	Sig string      // canonical signature, e.g. "InsufficientBalance(uint256,uint256)"
	ID  common.Hash // Keccak256(Sig)
}

// NewError builds an Error, naming unnamed inputs argN and precomputing the
// signature and ID.
func NewError(name string, inputs Arguments) Error {
	inputs = inputs.named()
	sig := inputs.signature(name)
	return Error{
		Name:   name,
		Inputs: inputs,
		str:    fmt.Sprintf("error %s(%s)", name, inputs.declarations()),
		Sig:    sig,
		ID:     common.BytesToHash(crypto.Keccak256([]byte(sig))),
	}
}

func (e Error) String() string {
	return e.str
}

// Unpack decodes revert data produced by this error after checking its
// 4 byte selector.
// Unpack 在校验 4 字节选择器后解码该错误的回滚数据。
func (e *Error) Unpack(data []byte) ([]Value, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("insufficient data for unpacking: have %d, want at least 4", len(data))
	}
	if !bytes.Equal(data[:4], e.ID[:4]) {
		return nil, fmt.Errorf("invalid identifier, have %#x want %#x", data[:4], e.ID[:4])
	}
	return e.Inputs.Unpack(data[4:])
}
