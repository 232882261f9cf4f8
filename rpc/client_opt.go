// Copyright 2022 The go-ethereum Authors
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
	"net/http"

	"github.com/gorilla/websocket"
)

// ClientOption configures the transport set up by DialOptions.
// ClientOption 是 RPC 客户端的配置选项。
type ClientOption interface {
	applyOption(*clientConfig)
}

type optionFunc func(*clientConfig)

func (fn optionFunc) applyOption(cfg *clientConfig) { fn(cfg) }

// clientConfig collects the dial options. Headers and auth apply to both
// transports, the remaining fields only to the transport they name.
type clientConfig struct {
	headers http.Header
	auth    HTTPAuth

	httpClient *http.Client

	wsDialer    *websocket.Dialer
	wsReadLimit *int64 // nil selects wsDefaultReadLimit, 0 disables the limit
}

// requestHeader returns base extended by the configured headers. Configured
// values replace those of base.
func (cfg *clientConfig) requestHeader(base http.Header) http.Header {
	if base == nil {
		base = make(http.Header, len(cfg.headers))
	}
	return setHeaders(base, cfg.headers)
}

// readLimit is the largest websocket message the client accepts.
func (cfg *clientConfig) readLimit() int64 {
	if cfg.wsReadLimit == nil || *cfg.wsReadLimit < 0 {
		return wsDefaultReadLimit
	}
	return *cfg.wsReadLimit
}

func (cfg *clientConfig) addHeaders(h http.Header) {
	if cfg.headers == nil {
		cfg.headers = make(http.Header, len(h))
	}
	setHeaders(cfg.headers, h)
}

// WithHeader sets a header on every request, both over HTTP and in the
// websocket handshake.
// WithHeader 配置 RPC 客户端设置的 HTTP 头部，同时用于 HTTP 和 WebSocket 连接。
func WithHeader(key, value string) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.addHeaders(http.Header{key: {value}})
	})
}

// WithHeaders is like WithHeader for several headers at once.
func WithHeaders(headers http.Header) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.addHeaders(headers)
	})
}

// WithHTTPAuth installs a provider that adds credentials to each HTTP request
// and to the websocket handshake. A later WithHTTPAuth replaces an earlier one.
func WithHTTPAuth(a HTTPAuth) ClientOption {
	if a == nil {
		panic("rpc: nil HTTPAuth")
	}
	return optionFunc(func(cfg *clientConfig) {
		cfg.auth = a
	})
}

// WithHTTPClient makes the HTTP transport send its requests through c.
func WithHTTPClient(c *http.Client) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.httpClient = c
	})
}

// WithWebsocketDialer replaces the dialer used to open websocket connections.
func WithWebsocketDialer(dialer websocket.Dialer) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.wsDialer = &dialer
	})
}

// WithWebsocketMessageSizeLimit bounds the size of incoming websocket
// messages. Zero removes the bound.
func WithWebsocketMessageSizeLimit(limit int64) ClientOption {
	return optionFunc(func(cfg *clientConfig) {
		cfg.wsReadLimit = &limit
	})
}

// HTTPAuth adds credentials to the header of an outgoing request, usually by
// setting the Authorization field. It must be safe for concurrent use.
// HTTPAuth 函数在客户端每次发送 HTTP 请求时被调用，必须是并发安全的。
type HTTPAuth func(h http.Header) error
