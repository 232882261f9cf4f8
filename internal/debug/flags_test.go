// Copyright 2024 The go-ethereum Authors
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

package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-ethabi/log"
	"github.com/urfave/cli/v2"
)

// runSetup runs Setup inside a throwaway app so flag parsing matches the CLI.
func runSetup(t *testing.T, cfg Config, args ...string) error {
	t.Helper()
	prev := log.Root()
	t.Cleanup(func() {
		Exit()
		log.SetDefault(prev)
	})
	app := &cli.App{
		Name:  "debugtest",
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			if err := Setup(ctx, cfg); err != nil {
				return err
			}
			log.Info("Setup done", "answer", 42)
			log.Debug("Hidden at info level")
			return nil
		},
	}
	return app.Run(append([]string{"debugtest"}, args...))
}

func TestSetupJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "out.log")
	require.NoError(t, runSetup(t, DefaultConfig, "--log.format", "json", "--log.file", file))

	Exit()
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"Setup done"`)
	assert.Contains(t, string(content), `"answer":42`)
	assert.NotContains(t, string(content), "Hidden at info level")
}

func TestSetupConfigOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.log")
	cfg := DefaultConfig
	cfg.Format = "logfmt"
	cfg.File = file
	cfg.Verbosity = 2
	// The flag raises the verbosity given in the config.
	require.NoError(t, runSetup(t, cfg, "--verbosity", "4"))

	Exit()
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(content)
	assert.True(t, strings.Contains(out, `msg="Setup done"`), out)
	assert.Contains(t, out, "Hidden at info level")
}

func TestApplyFlags(t *testing.T) {
	app := &cli.App{
		Name:  "debugtest",
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			cfg := DefaultConfig
			ApplyFlags(ctx, &cfg)
			assert.Equal(t, 5, cfg.Verbosity)
			assert.Equal(t, "terminal", cfg.Format)
			assert.True(t, cfg.Rotate)
			assert.Equal(t, 7, cfg.MaxSizeMB)
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"debugtest", "--verbosity", "5", "--log.rotate", "--log.maxsize", "7"}))
}

func TestSetupUnknownFormat(t *testing.T) {
	err := runSetup(t, DefaultConfig, "--log.format", "xml")
	assert.ErrorContains(t, err, "unknown log format")
}
