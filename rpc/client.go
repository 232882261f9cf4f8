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

package rpc

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sunyihoo/go-ethabi/log"
)

// clientConn is a transport able to carry single calls and batches.
type clientConn interface {
	roundTrip(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error)
	roundTripBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error)
	close()
}

// Client represents a connection to an RPC server. It is safe for concurrent use.
// Client 表示与 RPC 服务器的连接，可以并发使用。
type Client struct {
	conn      clientConn
	isHTTP    bool
	idCounter atomic.Uint32

	closeOnce sync.Once
	closed    atomic.Bool
}

// BatchElem is an element in a batch request.
type BatchElem struct {
	Method string
	Args   []interface{}
	// The result is unmarshaled into this field. Result must be set to a
	// non-nil pointer value of the desired type, otherwise the response will be
	// discarded.
	Result interface{}
	// Error is set if the server returns an error for this request, or if
	// unmarshalling into Result fails. It is not set for I/O errors.
	Error error
}

// Dial creates a new client for the given URL.
//
// The currently supported URL schemes are "http", "https", "ws" and "wss".
// If you want to further configure the transport, use DialOptions instead of this
// function.
func Dial(rawurl string) (*Client, error) {
	return DialOptions(context.Background(), rawurl)
}

// DialContext creates a new RPC client, just like Dial.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	return DialOptions(ctx, rawurl)
}

// DialOptions creates a new RPC client for the given URL. You can supply any of the
// pre-defined client options to configure the underlying transport.
//
// DialOptions 为给定的 URL 创建一个新的 RPC 客户端，可以提供预定义的客户端选项来配置底层传输。
func DialOptions(ctx context.Context, rawurl string, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	cfg := new(clientConfig)
	for _, opt := range options {
		opt.applyOption(cfg)
	}

	c := new(Client)
	switch u.Scheme {
	case "http", "https":
		c.conn, c.isHTTP = newHTTPConn(rawurl, cfg), true
	case "ws", "wss":
		if c.conn, err = dialWebsocket(ctx, rawurl, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no known transport for URL scheme %q", u.Scheme)
	}
	log.Debug("RPC client connected", "url", redactURL(u), "http", c.isHTTP)
	return c, nil
}

// redactURL strips credentials before an endpoint is logged.
func redactURL(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	cp := *u
	cp.User = url.User("xxxxx")
	return cp.String()
}

// Close closes the client, aborting any in-flight requests.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.conn.close()
	})
}

func (c *Client) nextID() uint32 {
	return c.idCounter.Add(1)
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
func (c *Client) Call(result interface{}, method string, args ...interface{}) error {
	ctx := context.Background()
	return c.CallContext(ctx, result, method, args...)
}

// CallContext performs a JSON-RPC call with the given arguments. If the context is
// canceled before the call has successfully returned, CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
//
// CallContext 使用给定的参数执行 JSON-RPC 调用。如果上下文在调用成功返回前被取消，CallContext 会立即返回。
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if result != nil && reflect.TypeOf(result).Kind() != reflect.Ptr {
		return fmt.Errorf("call result parameter must be pointer or nil interface: %v", result)
	}
	if c.closed.Load() {
		return ErrClientQuit
	}
	msg, err := newRequest(c.nextID(), method, args...)
	if err != nil {
		return err
	}
	start := time.Now()
	resp, err := c.conn.roundTrip(ctx, msg)
	if err != nil {
		log.Debug("RPC call failed", "method", method, "id", string(msg.ID), "err", err)
		return err
	}
	log.Trace("RPC call answered", "method", method, "id", string(msg.ID), "elapsed", time.Since(start))
	return resp.decodeResult(result)
}

// BatchCall sends all given requests as a single batch and waits for the server
// to return a response for all of them.
func (c *Client) BatchCall(b []BatchElem) error {
	ctx := context.Background()
	return c.BatchCallContext(ctx, b)
}

// BatchCallContext sends all given requests as a single batch and waits for the server
// to return a response for all of them. The wait duration is bounded by the
// context's deadline.
//
// In contrast to CallContext, BatchCallContext only returns errors that have occurred
// while sending the request. Any error specific to a request is reported through the
// Error field of the corresponding BatchElem.
//
// Note that batch calls may not be executed atomically on the server side.
func (c *Client) BatchCallContext(ctx context.Context, b []BatchElem) error {
	if c.closed.Load() {
		return ErrClientQuit
	}
	var (
		msgs = make([]*jsonrpcMessage, len(b))
		byID = make(map[string]int, len(b))
	)
	for i, elem := range b {
		msg, err := newRequest(c.nextID(), elem.Method, elem.Args...)
		if err != nil {
			return err
		}
		msgs[i] = msg
		byID[string(msg.ID)] = i
	}
	resps, err := c.conn.roundTripBatch(ctx, msgs)
	if err != nil {
		return err
	}
	log.Trace("RPC batch answered", "calls", len(b), "responses", len(resps))

	answered := make([]bool, len(b))
	for _, resp := range resps {
		i, ok := byID[string(resp.ID)]
		if !ok || answered[i] {
			continue
		}
		answered[i] = true
		elem := &b[i]
		switch {
		case resp.Error != nil:
			elem.Error = resp.Error
		case elem.Result != nil:
			elem.Error = resp.decodeResult(elem.Result)
		}
	}
	for i := range b {
		if !answered[i] {
			b[i].Error = ErrMissingBatchResponse
		}
	}
	return nil
}
