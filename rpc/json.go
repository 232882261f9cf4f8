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
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

const vsn = "2.0"

// jsonrpcMessage is the envelope of every JSON-RPC 2.0 payload. The client
// sends requests and receives responses, but servers may also push
// notifications over websockets.
// jsonrpcMessage 是所有 JSON-RPC 2.0 消息的封装。
type jsonrpcMessage struct {
	Version string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Error   *jsonError      `json:"error,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// isNotification reports a method invocation that expects no answer.
func (msg *jsonrpcMessage) isNotification() bool {
	return msg.Version == vsn && msg.ID == nil && msg.Method != ""
}

// isResponse reports an answer to one of our calls: a scalar id, no method
// and either a result or an error.
func (msg *jsonrpcMessage) isResponse() bool {
	if msg.Version != vsn || msg.Method != "" || msg.Params != nil {
		return false
	}
	if len(msg.ID) == 0 || msg.ID[0] == '{' || msg.ID[0] == '[' {
		return false
	}
	return msg.Result != nil || msg.Error != nil
}

func (msg *jsonrpcMessage) String() string {
	b, _ := json.Marshal(msg)
	return string(b)
}

// newRequest builds a call message. Params are marshalled eagerly so encoding
// problems surface before anything is sent.
func newRequest(id uint32, method string, args ...interface{}) (*jsonrpcMessage, error) {
	msg := &jsonrpcMessage{Version: vsn, ID: strconv.AppendUint(nil, uint64(id), 10), Method: method}
	if args != nil {
		var err error
		if msg.Params, err = json.Marshal(args); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// decodeResult copies the result of a response into out. A JSON null result
// leaves out untouched.
func (msg *jsonrpcMessage) decodeResult(out interface{}) error {
	switch {
	case msg.Error != nil:
		return msg.Error
	case len(msg.Result) == 0:
		return ErrNoResult
	case out == nil:
		return nil
	}
	return json.Unmarshal(msg.Result, out)
}

// parseMessage parses raw bytes as a single message or a batch. isBatch is
// true when the payload is a JSON array.
func parseMessage(raw json.RawMessage) (msgs []*jsonrpcMessage, isBatch bool, err error) {
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 {
		return nil, false, errors.New("empty JSON-RPC message")
	}
	if raw[0] != '[' {
		msg := new(jsonrpcMessage)
		if err := json.Unmarshal(raw, msg); err != nil {
			return nil, false, err
		}
		return []*jsonrpcMessage{msg}, false, nil
	}
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, true, err
	}
	return msgs, true, nil
}

// jsonError is the error member of a response. Data carries the revert
// payload when eth_call fails with errcodeExecution.
type jsonError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (err *jsonError) Error() string {
	if err.Message != "" {
		return err.Message
	}
	return "json-rpc error " + strconv.Itoa(err.Code)
}

func (err *jsonError) ErrorCode() int { return err.Code }
func (err *jsonError) ErrorData() interface{} { return err.Data }

