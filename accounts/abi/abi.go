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

package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/crypto"
)

// ABI is the parsed interface of a contract: its functions, events and custom
// errors. Overloaded functions and events are registered under suffixed names
// (transfer, transfer0, ...), the raw name stays available on the entry.
// ABI 是合约接口的解析结果：函数、事件和自定义错误。
type ABI struct {
	Constructor Method
	Methods     map[string]Method
	Events      map[string]Event
	Errors      map[string]Error

	// Fallback and Receive are the special functions of solidity v0.6.0 and
	// later. A legacy fallback is reported as Fallback as well.
	Fallback Method
	Receive  Method
}

// JSON parses a JSON ABI document.
func JSON(reader io.Reader) (ABI, error) {
	var abi ABI
	if err := json.NewDecoder(reader).Decode(&abi); err != nil {
		return ABI{}, err
	}
	return abi, nil
}

// Pack encodes a call of the named method: the 4 byte selector followed by the
// head/tail encoded arguments. The empty name packs constructor arguments,
// which carry no selector.
func (abi ABI) Pack(name string, args ...interface{}) ([]byte, error) {
	if name == "" {
		return abi.Constructor.Inputs.Pack(args...)
	}
	method, ok := abi.Methods[name]
	if !ok {
		return nil, fmt.Errorf("method '%s' not found", name)
	}
	enc, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	return append(common.CopyBytes(method.ID), enc...), nil
}

// lookup returns the parameters data of the named entry is laid out by:
// method outputs, event inputs or error inputs.
func (abi ABI) lookup(name string, data []byte) (Arguments, error) {
	if method, ok := abi.Methods[name]; ok {
		if len(data)%wordSize != 0 {
			return nil, fmt.Errorf("%w: output of %s is %d bytes, not a multiple of %d", ErrCouldNotDecodeType, method.Sig, len(data), wordSize)
		}
		return method.Outputs, nil
	}
	if event, ok := abi.Events[name]; ok {
		return event.Inputs, nil
	}
	if e, ok := abi.Errors[name]; ok {
		return e.Inputs, nil
	}
	return nil, fmt.Errorf("abi: could not locate named method, event or error: %s", name)
}

// Unpack decodes the return data of a method, or the data section of an event
// or error, into values.
func (abi ABI) Unpack(name string, data []byte) ([]Value, error) {
	args, err := abi.lookup(name, data)
	if err != nil {
		return nil, err
	}
	return args.Unpack(data)
}

// UnpackIntoInterface decodes like Unpack and scans the result into v, a
// pointer to a single value, a struct or a slice.
func (abi ABI) UnpackIntoInterface(v interface{}, name string, data []byte) error {
	args, err := abi.lookup(name, data)
	if err != nil {
		return err
	}
	values, err := args.Unpack(data)
	if err != nil {
		return err
	}
	return args.Copy(v, values)
}

// UnpackIntoMap decodes like Unpack and stores the values under their
// parameter names.
func (abi ABI) UnpackIntoMap(v map[string]Value, name string, data []byte) error {
	args, err := abi.lookup(name, data)
	if err != nil {
		return err
	}
	return args.UnpackIntoMap(v, data)
}

// DecodeCall resolves the method of call data by its selector and decodes the
// arguments following it.
// DecodeCall 通过选择器找到调用数据对应的方法并解码其参数。
func (abi ABI) DecodeCall(data []byte) (*Method, []Value, error) {
	method, err := abi.MethodById(data)
	if err != nil {
		return nil, nil, err
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method.Sig, err)
	}
	return method, values, nil
}

// DecodeRevert renders the payload of a reverted call. Error(string) and
// Panic(uint256) are understood for every contract, custom errors only when
// they are part of the ABI. A custom error is rendered as Name(arg, ...).
func (abi ABI) DecodeRevert(data []byte) (string, error) {
	if reason, err := UnpackRevert(data); err == nil {
		return reason, nil
	}
	if len(data) < 4 {
		return "", errInvalidRevert
	}
	e, err := abi.ErrorByID([4]byte(data[:4]))
	if err != nil {
		return "", err
	}
	values, err := e.Unpack(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", e.Sig, err)
	}
	args := make([]string, len(values))
	for i, v := range values {
		args[i] = v.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")", nil
}

// abiEntry is one element of a JSON ABI document.
type abiEntry struct {
	Type    string
	Name    string
	Inputs  []Argument
	Outputs []Argument

	// StateMutability is one of "pure", "view", "nonpayable" or "payable".
	StateMutability string

	// Constant and Payable predate stateMutability and were removed in v0.6.0.
	Constant bool
	Payable  bool

	Anonymous bool
}

// UnmarshalJSON implements json.Unmarshaler interface.
// UnmarshalJSON 解析 JSON ABI，重载的函数和事件通过名称后缀区分。
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var entries []abiEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	abi.Methods = make(map[string]Method)
	abi.Events = make(map[string]Event)
	abi.Errors = make(map[string]Error)
	for _, entry := range entries {
		if err := abi.add(entry); err != nil {
			return err
		}
	}
	return nil
}

func (abi *ABI) add(e abiEntry) error {
	switch e.Type {
	case "constructor":
		abi.Constructor = NewMethod("", "", Constructor, e.StateMutability, e.Constant, e.Payable, e.Inputs, nil)
	case "function", "":
		// Entries without a type predate the field and are functions.
		name := ResolveNameConflict(e.Name, func(s string) bool { _, ok := abi.Methods[s]; return ok })
		abi.Methods[name] = NewMethod(name, e.Name, Function, e.StateMutability, e.Constant, e.Payable, e.Inputs, e.Outputs)
	case "fallback":
		if abi.HasFallback() {
			return errors.New("only single fallback is allowed")
		}
		abi.Fallback = NewMethod("", "", Fallback, e.StateMutability, e.Constant, e.Payable, nil, nil)
	case "receive":
		if abi.HasReceive() {
			return errors.New("only single receive is allowed")
		}
		if e.StateMutability != "payable" {
			return errors.New("the statemutability of receive can only be payable")
		}
		abi.Receive = NewMethod("", "", Receive, e.StateMutability, e.Constant, e.Payable, nil, nil)
	case "event":
		name := ResolveNameConflict(e.Name, func(s string) bool { _, ok := abi.Events[s]; return ok })
		abi.Events[name] = NewEvent(name, e.Name, e.Anonymous, e.Inputs)
	case "error":
		// Errors are inherited but never overloaded.
		abi.Errors[e.Name] = NewError(e.Name, e.Inputs)
	default:
		return fmt.Errorf("abi: could not recognize type %v of field %v", e.Type, e.Name)
	}
	return nil
}

// MethodById looks up a method by the selector in the first 4 bytes of sigdata.
func (abi *ABI) MethodById(sigdata []byte) (*Method, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("data too short (%d bytes) for abi method lookup", len(sigdata))
	}
	for _, method := range abi.Methods {
		if bytes.Equal(method.ID, sigdata[:4]) {
			return &method, nil
		}
	}
	return nil, fmt.Errorf("no method with id: %#x", sigdata[:4])
}

// EventByID looks up a non-anonymous event by its topic.
func (abi *ABI) EventByID(topic common.Hash) (*Event, error) {
	for _, event := range abi.Events {
		if !event.Anonymous && event.ID == topic {
			return &event, nil
		}
	}
	return nil, fmt.Errorf("no event with id: %s", topic.Hex())
}

// ErrorByID looks up a custom error by its 4 byte selector.
func (abi *ABI) ErrorByID(sigdata [4]byte) (*Error, error) {
	for _, e := range abi.Errors {
		if bytes.Equal(e.ID[:4], sigdata[:]) {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("no error with id: %#x", sigdata[:])
}

// HasFallback reports whether the ABI declares a fallback function.
func (abi *ABI) HasFallback() bool {
	return abi.Fallback.Type == Fallback
}

// HasReceive reports whether the ABI declares a receive function.
func (abi *ABI) HasReceive() bool {
	return abi.Receive.Type == Receive
}

var (
	// revertSelector prefixes revert(string) / require(cond, string) payloads.
	revertSelector = crypto.Selector("Error(string)")
	// panicSelector prefixes compiler inserted Panic(uint256) payloads.
	panicSelector = crypto.Selector("Panic(uint256)")

	errInvalidRevert = errors.New("invalid data for unpacking")
)

// panicReasons maps the panic codes of solidity 0.8 to readable reasons.
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

// UnpackRevert resolves a revert payload encoded as a call to Error(string) or
// Panic(uint256).
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", errInvalidRevert
	}
	switch {
	case bytes.Equal(data[:4], revertSelector):
		unpacked, err := Decode([]Type{StringType}, data[4:])
		if err != nil {
			return "", err
		}
		return unpacked[0].Text(), nil
	case bytes.Equal(data[:4], panicSelector):
		unpacked, err := Decode([]Type{Uint256Type}, data[4:])
		if err != nil {
			return "", err
		}
		code := unpacked[0].BigInt()
		if code.IsUint64() {
			if reason, ok := panicReasons[code.Uint64()]; ok {
				return reason, nil
			}
		}
		return fmt.Sprintf("unknown panic code: %#x", code), nil
	}
	return "", errInvalidRevert
}
