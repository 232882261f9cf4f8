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
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sunyihoo/go-ethabi/log"
)

const (
	wsReadBuffer       = 1024
	wsWriteBuffer      = 1024
	wsPingInterval     = 30 * time.Second
	wsPingWriteTimeout = 5 * time.Second
	wsPongTimeout      = 30 * time.Second
	wsDefaultReadLimit = 32 * 1024 * 1024
	wsWriteTimeout     = 10 * time.Second // used if context has no deadline
)

var wsBufferPool = new(sync.Pool)

type wsHandshakeError struct {
	err    error
	status string
}

func (e wsHandshakeError) Error() string {
	s := e.err.Error()
	if e.status != "" {
		s += " (HTTP status " + e.status + ")"
	}
	return s
}

func (e wsHandshakeError) Unwrap() error {
	return e.err
}

// wsConn multiplexes calls over one websocket connection. Writes are
// serialised by writeMu; a read loop hands every response to the caller
// waiting on its id.
// wsConn 在单个 websocket 连接上复用多个调用。
type wsConn struct {
	conn *websocket.Conn

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan *jsonrpcMessage
	err     error // set once the read loop exits

	closeCh      chan struct{}
	closeOnce    sync.Once
	pingReset    chan struct{}
	pongReceived chan struct{}
	wg           sync.WaitGroup
}

// dialWebsocket opens the connection and starts the read and ping loops.
func dialWebsocket(ctx context.Context, endpoint string, cfg *clientConfig) (*wsConn, error) {
	dialer := cfg.wsDialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			ReadBufferSize:  wsReadBuffer,
			WriteBufferSize: wsWriteBuffer,
			WriteBufferPool: wsBufferPool,
			Proxy:           http.ProxyFromEnvironment,
		}
	}
	dialURL, header, err := wsClientHeaders(endpoint)
	if err != nil {
		return nil, err
	}
	header = cfg.requestHeader(header)
	if cfg.auth != nil {
		if err := cfg.auth(header); err != nil {
			return nil, err
		}
	}
	conn, resp, err := dialer.DialContext(ctx, dialURL, header)
	if err != nil {
		hErr := wsHandshakeError{err: err}
		if resp != nil {
			hErr.status = resp.Status
		}
		return nil, hErr
	}
	conn.SetReadLimit(cfg.readLimit())

	wc := &wsConn{
		conn:         conn,
		pending:      make(map[string]chan *jsonrpcMessage),
		closeCh:      make(chan struct{}),
		pingReset:    make(chan struct{}, 1),
		pongReceived: make(chan struct{}),
	}
	conn.SetPongHandler(func(string) error {
		select {
		case wc.pongReceived <- struct{}{}:
		case <-wc.closeCh:
		}
		return nil
	})
	wc.wg.Add(2)
	go wc.readLoop()
	go wc.pingLoop()
	return wc, nil
}

// wsClientHeaders moves credentials embedded in the URL into a basic auth header.
func wsClientHeaders(endpoint string) (string, http.Header, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return endpoint, nil, err
	}
	header := make(http.Header)
	if endpointURL.User != nil {
		b64auth := base64.StdEncoding.EncodeToString([]byte(endpointURL.User.String()))
		header.Add("authorization", "Basic "+b64auth)
		endpointURL.User = nil
	}
	return endpointURL.String(), header, nil
}

func (wc *wsConn) close() {
	wc.closeOnce.Do(func() {
		close(wc.closeCh)
		wc.conn.Close()
	})
	wc.wg.Wait()
}

func (wc *wsConn) roundTrip(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	resps, err := wc.send(ctx, []*jsonrpcMessage{msg}, msg)
	if err != nil {
		return nil, err
	}
	return resps[0], nil
}

func (wc *wsConn) roundTripBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	return wc.send(ctx, msgs, msgs)
}

// send registers the ids of msgs, writes payload and collects one response
// per id. For batches, responses the server never sends are simply missing
// from the result once the context expires or the connection drops.
func (wc *wsConn) send(ctx context.Context, msgs []*jsonrpcMessage, payload interface{}) ([]*jsonrpcMessage, error) {
	ch := make(chan *jsonrpcMessage, len(msgs))
	if err := wc.register(msgs, ch); err != nil {
		return nil, err
	}
	defer wc.unregister(msgs)

	if err := wc.write(ctx, payload); err != nil {
		return nil, err
	}
	resps := make([]*jsonrpcMessage, 0, len(msgs))
	for len(resps) < len(msgs) {
		select {
		case resp := <-ch:
			resps = append(resps, resp)
		case <-wc.closeCh:
			return nil, wc.readErr()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return resps, nil
}

func (wc *wsConn) register(msgs []*jsonrpcMessage, ch chan *jsonrpcMessage) error {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.err != nil {
		return wc.err
	}
	for _, msg := range msgs {
		wc.pending[string(msg.ID)] = ch
	}
	return nil
}

func (wc *wsConn) unregister(msgs []*jsonrpcMessage) {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	for _, msg := range msgs {
		delete(wc.pending, string(msg.ID))
	}
}

func (wc *wsConn) readErr() error {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.err != nil {
		return wc.err
	}
	return ErrClientQuit
}

func (wc *wsConn) write(ctx context.Context, v interface{}) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(wsWriteTimeout)
	}
	wc.writeMu.Lock()
	wc.conn.SetWriteDeadline(deadline)
	err := wc.conn.WriteJSON(v)
	wc.writeMu.Unlock()
	if err == nil {
		select {
		case wc.pingReset <- struct{}{}:
		default:
		}
	}
	return err
}

// readLoop dispatches incoming responses until the connection fails.
func (wc *wsConn) readLoop() {
	defer wc.wg.Done()
	for {
		var raw json.RawMessage
		if err := wc.conn.ReadJSON(&raw); err != nil {
			wc.fail(err)
			return
		}
		msgs, _, err := parseMessage(raw)
		if err != nil {
			log.Debug("Dropping invalid websocket message", "err", err)
			continue
		}
		wc.mu.Lock()
		for _, msg := range msgs {
			if msg.isNotification() {
				log.Trace("Ignoring websocket notification", "method", msg.Method)
				continue
			}
			if ch, ok := wc.pending[string(msg.ID)]; ok {
				delete(wc.pending, string(msg.ID))
				ch <- msg
			}
		}
		wc.mu.Unlock()
	}
}

// fail records the read error and wakes up all waiting callers.
func (wc *wsConn) fail(err error) {
	wc.mu.Lock()
	select {
	case <-wc.closeCh:
		wc.err = ErrClientQuit
	default:
		wc.err = fmt.Errorf("%w: %v", errDeadConnection, err)
		log.Debug("Websocket connection lost", "err", err)
	}
	wc.mu.Unlock()
	wc.closeOnce.Do(func() {
		close(wc.closeCh)
		wc.conn.Close()
	})
}

// pingLoop sends periodic ping frames to the server in order to keep the
// connection alive.
func (wc *wsConn) pingLoop() {
	var pingTimer = time.NewTimer(wsPingInterval)
	defer wc.wg.Done()
	defer pingTimer.Stop()

	for {
		select {
		case <-wc.closeCh:
			return

		case <-wc.pingReset:
			if !pingTimer.Stop() {
				<-pingTimer.C
			}
			pingTimer.Reset(wsPingInterval)

		case <-pingTimer.C:
			wc.writeMu.Lock()
			wc.conn.SetWriteDeadline(time.Now().Add(wsPingWriteTimeout))
			wc.conn.WriteMessage(websocket.PingMessage, nil)
			wc.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
			wc.writeMu.Unlock()
			pingTimer.Reset(wsPingInterval)

		case <-wc.pongReceived:
			wc.conn.SetReadDeadline(time.Time{})
		}
	}
}
