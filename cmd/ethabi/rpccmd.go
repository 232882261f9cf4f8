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

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/sunyihoo/go-ethabi/accounts/abi"
	"github.com/sunyihoo/go-ethabi/accounts/abi/bind"
	"github.com/sunyihoo/go-ethabi/cmd/utils"
	"github.com/sunyihoo/go-ethabi/common"
	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/sunyihoo/go-ethabi/log"
	"github.com/sunyihoo/go-ethabi/rpc"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// maxParallelQueries bounds the number of concurrent eth_getLogs requests of
// a chunked log query.
const maxParallelQueries = 4

var (
	callCommand = &cli.Command{
		Action:    call,
		Name:      "call",
		Usage:     "Execute a read-only contract call and decode its result",
		ArgsUsage: "[<argument>...]",
		Flags: []cli.Flag{
			utils.AddressFlag,
			utils.MethodFlag,
			utils.ABIFileFlag,
			utils.FromFlag,
			utils.BlockFlag,
			utils.BlockHashFlag,
			utils.JSONFlag,
		},
		Description: `
    ethabi --rpc http://127.0.0.1:8545 call --to 0x5FbDB2315678afecb367f032d93F642f64180aa3 \
        --method "balanceOf(address)(uint256)" 0x70997970C51812dc3A010C7d01b50e0d17dc79C8

Reverted calls are reported with their decoded reason. Custom errors are
decoded when the contract ABI is given with --abi.`,
	}
	logsCommand = &cli.Command{
		Action:    logs,
		Name:      "logs",
		Usage:     "Query and decode contract events",
		ArgsUsage: "[<indexed filter>...]",
		Flags: []cli.Flag{
			utils.AddressFlag,
			utils.EventFlag,
			utils.ABIFileFlag,
			utils.FromBlockFlag,
			utils.ToBlockFlag,
			utils.ChunkFlag,
			utils.JSONFlag,
		},
		Description: `
    ethabi logs --address 0x5FbDB2315678afecb367f032d93F642f64180aa3 \
        --event "Transfer(address indexed from,address indexed to,uint256 value)" \
        --fromblock 100 --toblock 200 0x70997970C51812dc3A010C7d01b50e0d17dc79C8

Positional arguments filter the indexed parameters in declaration order,
"*" matches any value.`,
	}
)

// loadContract builds the ABI used by call and logs: the JSON ABI given with
// --abi, or a single method or event parsed from the signature in the flag.
// It returns the name the entry is registered under.
func loadContract(ctx *cli.Context, flag *cli.StringFlag) (abi.ABI, string, error) {
	target := ctx.String(flag.Name)
	if target == "" {
		return abi.ABI{}, "", fmt.Errorf("--%s is required", flag.Name)
	}
	if ctx.IsSet(utils.ABIFileFlag.Name) {
		parsed, err := readABIFile(ctx)
		return parsed, target, err
	}
	if flag == utils.EventFlag {
		event, err := abi.ParseEvent(target)
		if err != nil {
			return abi.ABI{}, "", err
		}
		return abi.ABI{Events: map[string]abi.Event{event.Name: event}}, event.Name, nil
	}
	method, err := abi.ParseMethod(target)
	if err != nil {
		return abi.ABI{}, "", err
	}
	return abi.ABI{Methods: map[string]abi.Method{method.Name: method}}, method.Name, nil
}

// readABIFile parses the JSON ABI named by --abi.
func readABIFile(ctx *cli.Context) (abi.ABI, error) {
	file := ctx.Generic(utils.ABIFileFlag.Name).(*flags.PathString).String()
	f, err := os.Open(file)
	if err != nil {
		return abi.ABI{}, err
	}
	defer f.Close()
	parsed, err := abi.JSON(f)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("%s: %w", file, err)
	}
	return parsed, nil
}

func contractAddress(ctx *cli.Context) (common.Address, error) {
	addr := ctx.String(utils.AddressFlag.Name)
	if !common.IsHexAddress(addr) {
		return common.Address{}, fmt.Errorf("invalid contract address %q", addr)
	}
	return common.HexToAddress(addr), nil
}

// withTimeout derives the context of a command's RPC requests.
func withTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// callOpts translates --from, --block and --blockhash.
func callOpts(ctx *cli.Context) (*bind.CallOpts, error) {
	opts := new(bind.CallOpts)
	if from := ctx.String(utils.FromFlag.Name); from != "" {
		if !common.IsHexAddress(from) {
			return nil, fmt.Errorf("invalid sender address %q", from)
		}
		opts.From = common.HexToAddress(from)
	}
	if hash := ctx.String(utils.BlockHashFlag.Name); hash != "" {
		opts.BlockHash = common.HexToHash(hash)
		return opts, nil
	}
	number, err := rpc.ParseBlockNumber(ctx.String(utils.BlockFlag.Name))
	if err != nil {
		return nil, err
	}
	switch number {
	case rpc.PendingBlockNumber:
		opts.Pending = true
	case rpc.LatestBlockNumber:
	default:
		opts.BlockNumber = big.NewInt(number.Int64())
	}
	return opts, nil
}

func call(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	contract, name, err := loadContract(ctx, utils.MethodFlag)
	if err != nil {
		return err
	}
	method, ok := contract.Methods[name]
	if !ok {
		return fmt.Errorf("method '%s' not found", name)
	}
	address, err := contractAddress(ctx)
	if err != nil {
		return err
	}
	args, err := parseArgs(method.Inputs.Types(), ctx.Args().Slice())
	if err != nil {
		return err
	}
	opts, err := callOpts(ctx)
	if err != nil {
		return err
	}
	rctx, cancel := withTimeout(ctx.Context, cfg.RPC.Timeout)
	defer cancel()
	opts.Context = rctx

	client, err := utils.DialRPC(rctx, cfg.RPC)
	if err != nil {
		return err
	}
	defer client.Close()

	bound := bind.NewContract(address, contract, client)
	out, err := bound.Call(opts, name, args...)
	if err != nil {
		var revert *bind.RevertError
		if errors.As(err, &revert) {
			log.Debug("Call reverted", "method", method.Sig, "data", common.Bytes2Hex(revert.Data))
		}
		return err
	}
	return printValues(ctx.App.Writer, out, ctx.Bool(utils.JSONFlag.Name))
}

// topicFilters parses the positional arguments of the logs command against
// the indexed parameters of the event.
func topicFilters(event abi.Event, args []string) ([][]interface{}, error) {
	indexed := event.Inputs.Indexed()
	if len(args) > len(indexed) {
		return nil, fmt.Errorf("%s has %d indexed parameters, have %d filters", event.Sig, len(indexed), len(args))
	}
	query := make([][]interface{}, len(args))
	for i, arg := range args {
		if arg == "*" {
			continue
		}
		v, err := parseArg(indexed[i].Type, arg)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, indexed[i].Name, err)
		}
		wrapped, err := abi.NewWrappedValue(v, indexed[i].Type)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, indexed[i].Name, err)
		}
		query[i] = []interface{}{wrapped}
	}
	return query, nil
}

// blockRange is an inclusive block interval of a log query. A nil end means
// the latest block.
type blockRange struct {
	start uint64
	end   *uint64
}

// splitRange cuts [start, end] into intervals of at most chunk blocks.
func splitRange(start uint64, end *uint64, chunk uint64) []blockRange {
	if end == nil || chunk == 0 || *end < start {
		return []blockRange{{start, end}}
	}
	var ranges []blockRange
	for from := start; ; from += chunk {
		to := from + chunk - 1
		if to >= *end || to < from {
			last := *end
			ranges = append(ranges, blockRange{from, &last})
			break
		}
		ranges = append(ranges, blockRange{from, &to})
	}
	return ranges
}

func blockFlag(ctx *cli.Context, flag *flags.BigFlag) (*uint64, error) {
	if !ctx.IsSet(flag.Name) {
		return nil, nil
	}
	n := flags.GlobalBig(ctx, flag.Name)
	if n == nil || !n.IsUint64() {
		return nil, fmt.Errorf("invalid --%s %v", flag.Name, n)
	}
	v := n.Uint64()
	return &v, nil
}

func logs(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	contract, name, err := loadContract(ctx, utils.EventFlag)
	if err != nil {
		return err
	}
	event, ok := contract.Events[name]
	if !ok {
		return fmt.Errorf("event '%s' not found", name)
	}
	address, err := contractAddress(ctx)
	if err != nil {
		return err
	}
	query, err := topicFilters(event, ctx.Args().Slice())
	if err != nil {
		return err
	}
	from, err := blockFlag(ctx, utils.FromBlockFlag)
	if err != nil {
		return err
	}
	to, err := blockFlag(ctx, utils.ToBlockFlag)
	if err != nil {
		return err
	}
	var start uint64
	if from != nil {
		start = *from
	}
	ranges := splitRange(start, to, ctx.Uint64(utils.ChunkFlag.Name))

	rctx, cancel := withTimeout(ctx.Context, cfg.RPC.Timeout)
	defer cancel()
	client, err := utils.DialRPC(rctx, cfg.RPC)
	if err != nil {
		return err
	}
	defer client.Close()
	bound := bind.NewContract(address, contract, client)

	limiter := rate.NewLimiter(rate.Inf, maxParallelQueries)
	if cfg.RPC.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPC.RateLimit), 1)
	}
	var (
		results = make([][]*bind.Event, len(ranges))
		g, gctx = errgroup.WithContext(rctx)
	)
	g.SetLimit(maxParallelQueries)
	for i, r := range ranges {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			events, err := bound.FilterLogs(&bind.FilterOpts{Start: r.start, End: r.end, Context: gctx}, name, query...)
			if err != nil {
				return err
			}
			log.Debug("Retrieved logs", "event", event.Sig, "from", r.start, "count", len(events))
			results[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, events := range results {
		for _, ev := range events {
			if err := printEvent(ctx.App.Writer, event, ev, ctx.Bool(utils.JSONFlag.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

type eventJSON struct {
	Event       string               `json:"event"`
	BlockNumber uint64               `json:"blockNumber"`
	TxHash      common.Hash          `json:"transactionHash"`
	Index       uint                 `json:"logIndex"`
	Values      map[string]abi.Value `json:"values"`
}

func printEvent(w io.Writer, event abi.Event, ev *bind.Event, asJSON bool) error {
	if asJSON {
		out, err := json.Marshal(eventJSON{
			Event:       ev.Name,
			BlockNumber: ev.Raw.BlockNumber,
			TxHash:      ev.Raw.TxHash,
			Index:       ev.Raw.Index,
			Values:      ev.Values,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
	fields := make([]string, len(event.Inputs))
	for i, input := range event.Inputs {
		fields[i] = fmt.Sprintf("%s=%v", input.Name, ev.Values[input.Name])
	}
	fmt.Fprintf(w, "%d %s %d %s(%s)\n", ev.Raw.BlockNumber, ev.Raw.TxHash.Hex(), ev.Raw.Index, ev.Name, strings.Join(fields, ", "))
	return nil
}
