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
	"fmt"

	"github.com/sunyihoo/go-ethabi/crypto"
)

// FunctionType tells the special entry points of a contract apart from
// ordinary functions.
type FunctionType int

const (
	Constructor FunctionType = iota // runs once at deployment
	Fallback                        // runs when no selector matches
	Receive                         // runs on plain value transfers
	Function                        // an ordinary selector-dispatched function
)

// Method is a contract function or one of the special entry points. Only
// ordinary functions have a signature and a selector.
// Method 表示合约函数或特殊入口点。
type Method struct {
	// Name is unique within the ABI. Overloads of RawName get a numeric
	// suffix, e.g. the second "transfer" becomes "transfer0".
	Name    string
	RawName string

	Type            FunctionType
	StateMutability string // pure, view, nonpayable or payable; empty for old ABIs

	// Constant and Payable are the pre-0.6 flags superseded by StateMutability.
	Constant bool
	Payable  bool

	Inputs  Arguments
	Outputs Arguments
	str     string

	Sig string // canonical signature, e.g. "transfer(address,uint256)"
	ID  []byte // first 4 bytes of Keccak256(Sig)
}

// NewMethod builds a Method and precomputes its signature, selector and
// string form.
// NewMethod 创建一个新的 Method，并预先计算签名、选择器和字符串表示。
func NewMethod(name string, rawName string, funType FunctionType, mutability string, isConst, isPayable bool, inputs Arguments, outputs Arguments) Method {
	var (
		sig  string
		id   []byte
		head string
	)
	switch funType {
	case Function:
		sig = inputs.signature(rawName)
		id = crypto.Selector(sig)
		head = "function " + rawName
	case Fallback:
		head = "fallback"
	case Receive:
		head = "receive"
	default:
		head = "constructor"
	}
	str := head + "(" + inputs.declarations() + ")"
	if mutability != "" && mutability != "nonpayable" {
		str += " " + mutability
	}
	str += " returns(" + outputs.declarations() + ")"

	return Method{
		Name:            name,
		RawName:         rawName,
		Type:            funType,
		StateMutability: mutability,
		Constant:        isConst,
		Payable:         isPayable,
		Inputs:          inputs,
		Outputs:         outputs,
		str:             str,
		Sig:             sig,
		ID:              id,
	}
}

func (method Method) String() string {
	return method.str
}

// IsConstant returns the indicator whether the method is read-only.
func (method Method) IsConstant() bool {
	return method.StateMutability == "view" || method.StateMutability == "pure" || method.Constant
}

// IsPayable returns the indicator whether the method can process
// plain ether transfers.
func (method Method) IsPayable() bool {
	return method.StateMutability == "payable" || method.Payable
}

// Encode builds the call payload: the 4 byte selector followed by the
// head/tail encoding of the arguments. Each value must carry the type of the
// corresponding input.
func (method Method) Encode(values ...WrappedValue) ([]byte, error) {
	if len(values) != len(method.Inputs) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrTypeMismatch, method.Sig, len(method.Inputs), len(values))
	}
	encs := make([]Encodable, len(values))
	for i, v := range values {
		encs[i] = v
	}
	packed, err := packSequence(method.Inputs.Types(), encs)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}

// DecodeInput decodes call data produced for this method, checking the selector.
func (method Method) DecodeInput(data []byte) ([]Value, error) {
	if len(data) < len(method.ID) || string(data[:len(method.ID)]) != string(method.ID) {
		return nil, fmt.Errorf("abi: call data does not start with selector %x of %s", method.ID, method.Sig)
	}
	return method.Inputs.Unpack(data[len(method.ID):])
}
