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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

const (
	maxResponseSize = 5 * 1024 * 1024
	contentType     = "application/json"
)

// httpConn posts each call or batch as a separate request.
type httpConn struct {
	client *http.Client
	url    string
	auth   HTTPAuth

	mu     sync.Mutex
	header http.Header // sent with every request, guarded by mu
}

func newHTTPConn(endpoint string, cfg *clientConfig) *httpConn {
	client := cfg.httpClient
	if client == nil {
		client = new(http.Client)
	}
	base := http.Header{
		"Accept":       {contentType},
		"Content-Type": {contentType},
	}
	return &httpConn{
		client: client,
		url:    endpoint,
		auth:   cfg.auth,
		header: cfg.requestHeader(base),
	}
}

// SetHeader changes a header sent with subsequent requests. It has no effect
// on websocket clients.
func (c *Client) SetHeader(key, value string) {
	hc, ok := c.conn.(*httpConn)
	if !ok {
		return
	}
	hc.mu.Lock()
	hc.header.Set(key, value)
	hc.mu.Unlock()
}

func (hc *httpConn) close() {
	hc.client.CloseIdleConnections()
}

func (hc *httpConn) roundTrip(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	msgs, _, err := hc.exchange(ctx, msg)
	if err != nil {
		return nil, err
	}
	if len(msgs) != 1 || !msgs[0].isResponse() {
		return nil, fmt.Errorf("invalid JSON-RPC response to %s", msg.Method)
	}
	return msgs[0], nil
}

func (hc *httpConn) roundTripBatch(ctx context.Context, msgs []*jsonrpcMessage) ([]*jsonrpcMessage, error) {
	resps, isBatch, err := hc.exchange(ctx, msgs)
	if err != nil {
		return nil, err
	}
	// A server refusing the batch as a whole answers with one error object.
	if !isBatch && len(resps) == 1 && resps[0].Error != nil {
		return nil, resps[0].Error
	}
	return resps, nil
}

// exchange posts payload and parses the messages in the response body.
func (hc *httpConn) exchange(ctx context.Context, payload interface{}) ([]*jsonrpcMessage, bool, error) {
	req, err := hc.buildRequest(ctx, payload)
	if err != nil {
		return nil, false, err
	}
	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode/100 != 2 {
		return nil, false, HTTPError{Status: resp.Status, StatusCode: resp.StatusCode, Body: body}
	}
	if err != nil {
		return nil, false, err
	}
	msgs, isBatch, err := parseMessage(body)
	if err != nil {
		return nil, false, fmt.Errorf("%w (body: %s)", err, truncate(body))
	}
	return msgs, isBatch, nil
}

// buildRequest encodes payload into a POST request carrying the connection
// headers, those attached to ctx and the auth credentials, in that order.
func (hc *httpConn) buildRequest(ctx context.Context, payload interface{}) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	hc.mu.Lock()
	req.Header = hc.header.Clone()
	hc.mu.Unlock()
	setHeaders(req.Header, headersFromContext(ctx))
	if hc.auth != nil {
		if err := hc.auth(req.Header); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
