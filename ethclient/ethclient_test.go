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

package ethclient

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/common/hexutil"
	"github.com/sunyihoo/go-ethabi/rpc"
)

var (
	testContract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	testCaller   = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	// Error(string) with reason "nope"
	revertPayload = "0x08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000004" +
		"6e6f706500000000000000000000000000000000000000000000000000000000"
)

type request struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   interface{}     `json:"error,omitempty"`
}

// fakeNode answers the handful of methods Client uses and records the
// parameters of every request.
type fakeNode struct {
	t       *testing.T
	params  map[string][]json.RawMessage
	noChain atomic.Bool // answer eth_chainId with null
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	require.NoError(n.t, json.NewDecoder(r.Body).Decode(&req))
	n.params[req.Method] = req.Params

	resp := response{Version: "2.0", ID: req.ID}
	switch req.Method {
	case "eth_chainId":
		resp.Result = "0x7a69"
		if n.noChain.Load() {
			resp.Result = json.RawMessage("null")
		}
	case "eth_blockNumber":
		resp.Result = "0x10"
	case "eth_getCode":
		resp.Result = "0x6080"
	case "eth_call":
		var call map[string]interface{}
		json.Unmarshal(req.Params[0], &call)
		if call["input"] == "0xdeadbeef" {
			resp.Error = map[string]interface{}{"code": 3, "message": "execution reverted: nope", "data": revertPayload}
		} else {
			resp.Result = "0x000000000000000000000000000000000000000000000000000000000000002a"
		}
	case "eth_getLogs":
		resp.Result = []map[string]interface{}{{
			"address":          testContract,
			"topics":           []string{"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"},
			"data":             "0x01",
			"blockNumber":      "0x5",
			"transactionHash":  "0x3b198bfd5d2907285af009e9ae84a0ecd63677110d89d7e030251acb87f6487e",
			"transactionIndex": "0x0",
			"blockHash":        "0x656c34545f90a730a19008c0e7a7cd4fb3895064b48d6d69761bd5abad681056",
			"logIndex":         "0x1",
			"removed":          false,
		}}
	default:
		resp.Error = map[string]interface{}{"code": -32601, "message": "method not found"}
	}
	w.Header().Set("content-type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T) (*Client, *fakeNode) {
	node := &fakeNode{t: t, params: make(map[string][]json.RawMessage)}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	client, err := Dial(srv.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client, node
}

func TestChainState(t *testing.T) {
	ec, node := newTestClient(t)
	ctx := context.Background()

	id, err := ec.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(31337), id.Int64())

	head, err := ec.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), head)

	code, err := ec.CodeAt(ctx, testContract, big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80}, code)
	assert.JSONEq(t, `"0x7"`, string(node.params["eth_getCode"][1]))

	node.noChain.Store(true)
	_, err = ec.ChainID(ctx)
	assert.ErrorIs(t, err, ethereum.NotFound)
}

func TestCallContract(t *testing.T) {
	ec, node := newTestClient(t)
	ctx := context.Background()
	msg := ethereum.CallMsg{From: testCaller, To: &testContract, Data: []byte{0x70, 0xa0, 0x82, 0x31}}

	out, err := ec.CallContract(ctx, msg, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(42), out[31])

	var call map[string]interface{}
	require.NoError(t, json.Unmarshal(node.params["eth_call"][0], &call))
	assert.Equal(t, "0x70a08231", call["input"])
	assert.Equal(t, "latest", jsonString(t, node.params["eth_call"][1]))

	_, err = ec.PendingCallContract(ctx, msg)
	require.NoError(t, err)
	assert.Equal(t, "pending", jsonString(t, node.params["eth_call"][1]))

	hash := common.HexToHash("0x656c34545f90a730a19008c0e7a7cd4fb3895064b48d6d69761bd5abad681056")
	_, err = ec.CallContractAtHash(ctx, msg, hash)
	require.NoError(t, err)
	assert.Equal(t, hash.Hex(), jsonString(t, node.params["eth_call"][1]))
}

func TestCallContractRevert(t *testing.T) {
	ec, _ := newTestClient(t)
	msg := ethereum.CallMsg{To: &testContract, Data: []byte{0xde, 0xad, 0xbe, 0xef}}

	_, err := ec.CallContract(context.Background(), msg, nil)
	require.Error(t, err)
	data, ok := RevertErrorData(err)
	require.True(t, ok)
	assert.Equal(t, hexutil.MustDecode(revertPayload), data)

	_, ok = RevertErrorData(context.Canceled)
	assert.False(t, ok)
}

func TestFilterLogs(t *testing.T) {
	ec, node := newTestClient(t)
	q := ethereum.FilterQuery{
		FromBlock: big.NewInt(1),
		Addresses: []common.Address{testContract},
		Topics:    [][]common.Hash{{common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")}},
	}
	logs, err := ec.FilterLogs(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, testContract, logs[0].Address)
	assert.Equal(t, uint64(5), logs[0].BlockNumber)
	assert.Equal(t, uint(1), logs[0].Index)

	var arg map[string]interface{}
	require.NoError(t, json.Unmarshal(node.params["eth_getLogs"][0], &arg))
	assert.Equal(t, "0x1", arg["fromBlock"])
	assert.Equal(t, "latest", arg["toBlock"])

	hash := common.Hash{1}
	_, err = ec.FilterLogs(context.Background(), ethereum.FilterQuery{BlockHash: &hash, FromBlock: big.NewInt(1)})
	assert.Error(t, err)
}

func TestToBlockNumArg(t *testing.T) {
	var tests = []struct {
		number *big.Int
		want   string
	}{
		{nil, "latest"},
		{big.NewInt(0), "0x0"},
		{big.NewInt(255), "0xff"},
		{big.NewInt(int64(rpc.PendingBlockNumber)), "pending"},
		{big.NewInt(int64(rpc.FinalizedBlockNumber)), "finalized"},
		{big.NewInt(int64(rpc.SafeBlockNumber)), "safe"},
	}
	for _, test := range tests {
		if got := toBlockNumArg(test.number); got != test.want {
			t.Errorf("toBlockNumArg(%v) = %q, want %q", test.number, got, test.want)
		}
	}
}

func jsonString(t *testing.T, raw json.RawMessage) string {
	var s string
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}
