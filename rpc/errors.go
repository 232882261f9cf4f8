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
)

var (
	// ErrNoResult is returned by CallContext when the response carries neither a
	// result nor an error.
	ErrNoResult = errors.New("JSON-RPC response has no result")

	// ErrMissingBatchResponse is set on a BatchElem the server did not answer.
	ErrMissingBatchResponse = errors.New("response batch did not contain a response to this call")

	// ErrClientQuit is returned when calling on a closed client.
	ErrClientQuit = errors.New("client is closed")

	errDeadConnection = errors.New("connection lost")
)

// HTTPError is returned by client operations when the HTTP status code of the
// response is not a 2xx status.
//
// HTTPError 由客户端操作在响应的 HTTP 状态码不是 2xx 状态时返回。
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (err HTTPError) Error() string {
	if len(err.Body) == 0 {
		return err.Status
	}
	return fmt.Sprintf("%v: %s", err.Status, err.Body)
}

// Error wraps RPC errors, which contain an error code in addition to the message.
// Error 封装了 RPC 错误，这些错误除了消息之外还包含错误代码。
type Error interface {
	Error() string  // returns the message
	ErrorCode() int // returns the code
}

// A DataError contains some data in addition to the error message.
type DataError interface {
	Error() string          // returns the message
	ErrorData() interface{} // returns the error data
}

var (
	_ Error     = new(jsonError)
	_ DataError = new(jsonError)
)

const (
	errcodeMethodNotFound = -32601

	// errcodeExecution is what nodes answer eth_call with when the call reverted.
	errcodeExecution = 3
)

// IsMethodNotFound reports whether err is an RPC error stating the server does
// not provide the called method.
func IsMethodNotFound(err error) bool {
	var rpcErr Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == errcodeMethodNotFound
}
