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

// Package utils contains internal helper functions for ethabi commands.
package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/sunyihoo/go-ethabi/ethclient"
	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/sunyihoo/go-ethabi/log"
	"github.com/sunyihoo/go-ethabi/rpc"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// RPC client settings
	RPCEndpointFlag = &cli.StringFlag{
		Name:     "rpc",
		Usage:    "JSON-RPC endpoint of the node (http, https, ws or wss)",
		Value:    DefaultRPCConfig.Endpoint,
		EnvVars:  []string{"ETHABI_RPC"},
		Category: flags.RPCCategory,
	}
	JWTSecretFlag = &flags.PathFlag{
		Name:     "rpc.jwtsecret",
		Usage:    "Path to a hex encoded JWT secret used to authenticate against the node",
		Category: flags.RPCCategory,
	}
	RPCHeaderFlag = &cli.StringSliceFlag{
		Name:     "rpc.header",
		Usage:    "Extra HTTP header sent with every request (\"Name: value\")",
		Category: flags.RPCCategory,
	}
	RPCTimeoutFlag = &cli.DurationFlag{
		Name:     "rpc.timeout",
		Usage:    "Timeout of a single command's RPC requests",
		Value:    DefaultRPCConfig.Timeout,
		Category: flags.RPCCategory,
	}
	RPCRateLimitFlag = &cli.Float64Flag{
		Name:     "rpc.ratelimit",
		Usage:    "Maximum number of requests per second sent by chunked queries (0 = unlimited)",
		Category: flags.RPCCategory,
	}

	// ABI settings
	TypesFlag = &cli.StringFlag{
		Name:     "types",
		Usage:    "Comma separated list of ABI types, e.g. \"uint256,(address,bool)[]\"",
		Category: flags.ABICategory,
	}
	MethodFlag = &cli.StringFlag{
		Name:     "method",
		Usage:    "Function signature (\"balanceOf(address)(uint256)\") or method name when --abi is given",
		Category: flags.ABICategory,
	}
	EventFlag = &cli.StringFlag{
		Name:     "event",
		Usage:    "Event signature (\"Transfer(address indexed,address indexed,uint256)\") or event name when --abi is given",
		Category: flags.ABICategory,
	}
	ABIFileFlag = &flags.PathFlag{
		Name:     "abi",
		Usage:    "Path to a JSON ABI file",
		Category: flags.ABICategory,
	}
	JSONFlag = &cli.BoolFlag{
		Name:     "json",
		Usage:    "Print decoded values as JSON",
		Category: flags.ABICategory,
	}

	// Query settings
	AddressFlag = &cli.StringFlag{
		Name:     "address",
		Aliases:  []string{"to"},
		Usage:    "Contract address",
		Category: flags.QueryCategory,
	}
	FromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Sender address of the call",
		Category: flags.QueryCategory,
	}
	BlockFlag = &cli.StringFlag{
		Name:     "block",
		Usage:    "Block number or tag (latest, pending, safe, finalized, earliest)",
		Value:    "latest",
		Category: flags.QueryCategory,
	}
	BlockHashFlag = &cli.StringFlag{
		Name:     "blockhash",
		Usage:    "Hash of the block to execute the call against, overrides --block",
		Category: flags.QueryCategory,
	}
	FromBlockFlag = &flags.BigFlag{
		Name:     "fromblock",
		Usage:    "First block of the log query",
		Category: flags.QueryCategory,
	}
	ToBlockFlag = &flags.BigFlag{
		Name:     "toblock",
		Usage:    "Last block of the log query (default = latest)",
		Category: flags.QueryCategory,
	}
	ChunkFlag = &cli.Uint64Flag{
		Name:     "chunk",
		Usage:    "Split the log query into ranges of this many blocks (0 = single query)",
		Value:    0,
		Category: flags.QueryCategory,
	}
)

// RPCFlags are the flags configuring the node connection.
var RPCFlags = []cli.Flag{
	RPCEndpointFlag,
	JWTSecretFlag,
	RPCHeaderFlag,
	RPCTimeoutFlag,
	RPCRateLimitFlag,
}

// RPCConfig is the [RPC] section of the configuration file.
type RPCConfig struct {
	Endpoint  string
	JWTSecret string            `toml:",omitempty"`
	Headers   map[string]string `toml:",omitempty"`
	Timeout   time.Duration
	RateLimit float64 `toml:",omitempty"`
}

// DefaultRPCConfig contains the connection defaults.
var DefaultRPCConfig = RPCConfig{
	Endpoint: "http://127.0.0.1:8545",
	Timeout:  30 * time.Second,
}

// SetRPCConfig applies RPC-related command line flags to the config.
func SetRPCConfig(ctx *cli.Context, cfg *RPCConfig) error {
	if ctx.IsSet(RPCEndpointFlag.Name) {
		cfg.Endpoint = ctx.String(RPCEndpointFlag.Name)
	}
	if ctx.IsSet(JWTSecretFlag.Name) {
		cfg.JWTSecret = ctx.Generic(JWTSecretFlag.Name).(*flags.PathString).String()
	}
	if ctx.IsSet(RPCTimeoutFlag.Name) {
		cfg.Timeout = ctx.Duration(RPCTimeoutFlag.Name)
	}
	if ctx.IsSet(RPCRateLimitFlag.Name) {
		cfg.RateLimit = ctx.Float64(RPCRateLimitFlag.Name)
		if cfg.RateLimit < 0 {
			return fmt.Errorf("invalid --%s %v", RPCRateLimitFlag.Name, cfg.RateLimit)
		}
	}
	for _, header := range ctx.StringSlice(RPCHeaderFlag.Name) {
		key, value, ok := strings.Cut(header, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("invalid header %q, want \"Name: value\"", header)
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return nil
}

// DialRPC connects to the node described by cfg.
func DialRPC(ctx context.Context, cfg RPCConfig) (*ethclient.Client, error) {
	var opts []rpc.ClientOption
	for key, value := range cfg.Headers {
		opts = append(opts, rpc.WithHeader(key, value))
	}
	if cfg.JWTSecret != "" {
		secret, err := rpc.ReadJWTSecret(cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rpc.WithHTTPAuth(rpc.NewJWTAuth(secret)))
	}
	c, err := rpc.DialOptions(ctx, cfg.Endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", cfg.Endpoint, err)
	}
	return ethclient.NewClient(c), nil
}

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func Fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	log.Debug("Exiting after fatal error", "msg", fmt.Sprintf(format, args...))
	os.Exit(1)
}
