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

/*
Package rpc implements the client side of JSON-RPC 2.0 over HTTP and WebSocket.

A Client is created with Dial or DialOptions. The URL scheme selects the transport:
"http" and "https" send one POST request per call or batch, "ws" and "wss" keep a
single connection open and route responses back to callers by request id.

	client, err := rpc.Dial("http://127.0.0.1:8545")
	if err != nil {
		return err
	}
	defer client.Close()

	var head hexutil.Uint64
	err = client.CallContext(ctx, &head, "eth_blockNumber")

Several calls can be sent in one round trip with BatchCallContext. Each BatchElem
carries its own Error, so a batch may partially succeed.

Errors returned by the server implement the Error interface, and DataError when the
server attached data (for example the revert payload of eth_call). Non-2xx HTTP
responses are reported as HTTPError.

Package rpc 实现了基于 HTTP 和 WebSocket 的 JSON-RPC 2.0 客户端。
*/
package rpc
