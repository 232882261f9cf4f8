// Copyright 2014 The go-ethereum Authors
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

// ethabi is a command line tool to encode and decode contract ABI data and to
// query contracts over JSON-RPC.
package main

import (
	"os"

	"github.com/sunyihoo/go-ethabi/cmd/utils"
	"github.com/sunyihoo/go-ethabi/internal/debug"
	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/urfave/cli/v2"
)

const clientIdentifier = "ethabi"

var app = newApp()

func newApp() *cli.App {
	app := flags.NewApp("the ethereum contract ABI command line interface")
	app.Name = clientIdentifier
	app.Flags = flags.Merge(
		[]cli.Flag{configFileFlag},
		utils.RPCFlags,
		debug.Flags,
	)
	app.Commands = []*cli.Command{
		// See abicmd.go:
		selectorCommand,
		topicCommand,
		encodeCommand,
		decodeCommand,
		// See rpccmd.go:
		callCommand,
		logsCommand,
		// See config.go:
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := loadBaseConfig(ctx)
		if err != nil {
			return err
		}
		return debug.Setup(ctx, cfg.Log)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		utils.Fatalf("%v", err)
	}
}
