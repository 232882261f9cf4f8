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

package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/sunyihoo/go-ethabi/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value:    DefaultConfig.Verbosity,
		Category: flags.LoggingCategory,
	}
	logjsonFlag = &cli.BoolFlag{
		Name:     "log.json",
		Usage:    "Format logs with JSON (deprecated, use --log.format json)",
		Hidden:   true,
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format: terminal, logfmt or json",
		Category: flags.LoggingCategory,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Also write logs to this file",
		Category: flags.LoggingCategory,
	}
	logRotateFlag = &cli.BoolFlag{
		Name:     "log.rotate",
		Usage:    "Rotate the log file",
		Category: flags.LoggingCategory,
	}
	logMaxSizeMBsFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Size in MB after which a rotated log file is cut",
		Value:    DefaultConfig.MaxSizeMB,
		Category: flags.LoggingCategory,
	}
	logMaxBackupsFlag = &cli.IntFlag{
		Name:     "log.maxbackups",
		Usage:    "Number of rotated log files to keep",
		Value:    DefaultConfig.MaxBackups,
		Category: flags.LoggingCategory,
	}
	logMaxAgeFlag = &cli.IntFlag{
		Name:     "log.maxage",
		Usage:    "Days to keep rotated log files",
		Value:    DefaultConfig.MaxAgeDays,
		Category: flags.LoggingCategory,
	}
	logCompressFlag = &cli.BoolFlag{
		Name:     "log.compress",
		Usage:    "Gzip rotated log files",
		Category: flags.LoggingCategory,
	}
	cpuprofileFlag = &cli.StringFlag{
		Name:     "pprof.cpuprofile",
		Usage:    "Write a CPU profile of the run to this file",
		Category: flags.LoggingCategory,
	}
	memprofileFlag = &cli.StringFlag{
		Name:     "pprof.memprofile",
		Usage:    "Write a heap profile to this file on exit",
		Category: flags.LoggingCategory,
	}
	traceFlag = &cli.StringFlag{
		Name:     "go-execution-trace",
		Usage:    "Write a Go execution trace of the run to this file",
		Category: flags.LoggingCategory,
	}
)

// Flags are the logging and profiling flags of the command line.
// Flags 包含所有用于调试的命令行标志。
var Flags = []cli.Flag{
	verbosityFlag,
	logjsonFlag,
	logFormatFlag,
	logFileFlag,
	logRotateFlag,
	logMaxSizeMBsFlag,
	logMaxBackupsFlag,
	logMaxAgeFlag,
	logCompressFlag,
	cpuprofileFlag,
	memprofileFlag,
	traceFlag,
}

// Config is the [Log] section of the configuration file. Flags given on the
// command line take precedence over it.
type Config struct {
	Verbosity  int
	Format     string `toml:",omitempty"`
	File       string `toml:",omitempty"`
	Rotate     bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig contains the logging defaults.
var DefaultConfig = Config{
	Verbosity:  3,
	Format:     "terminal",
	MaxSizeMB:  100,
	MaxBackups: 10,
	MaxAgeDays: 30,
}

var (
	// logOutputFile is the log file opened by Setup, closed again by Exit.
	logOutputFile io.WriteCloser
	// memProfileFile receives the heap profile written by Exit.
	memProfileFile string
)

// ApplyFlags overrides the fields of cfg with the logging flags set on the
// command line.
func ApplyFlags(ctx *cli.Context, cfg *Config) {
	setInt := func(f *cli.IntFlag, dst *int) {
		if ctx.IsSet(f.Name) {
			*dst = ctx.Int(f.Name)
		}
	}
	setInt(verbosityFlag, &cfg.Verbosity)
	setInt(logMaxSizeMBsFlag, &cfg.MaxSizeMB)
	setInt(logMaxBackupsFlag, &cfg.MaxBackups)
	setInt(logMaxAgeFlag, &cfg.MaxAgeDays)

	if ctx.IsSet(logFormatFlag.Name) {
		cfg.Format = ctx.String(logFormatFlag.Name)
	} else if ctx.Bool(logjsonFlag.Name) {
		cfg.Format = "json"
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.File = ctx.String(logFileFlag.Name)
	}
	if ctx.IsSet(logRotateFlag.Name) {
		cfg.Rotate = ctx.Bool(logRotateFlag.Name)
	}
	if ctx.IsSet(logCompressFlag.Name) {
		cfg.Compress = ctx.Bool(logCompressFlag.Name)
	}
}

// Setup installs the root logger described by cfg and the command line, and
// starts the profiles requested by flags. Call it before anything logs.
// Setup 根据配置和 CLI 标志初始化性能分析和日志记录。
func Setup(ctx *cli.Context, cfg Config) error {
	ApplyFlags(ctx, &cfg)

	file, location, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	logOutputFile = file

	handler, err := newHandler(cfg.Format, file, log.FromLegacyLevel(cfg.Verbosity))
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))
	if ctx.Bool(logjsonFlag.Name) && !ctx.IsSet(logFormatFlag.Name) {
		log.Warn("The flag '--log.json' is deprecated, please use '--log.format=json' instead")
	}

	if traceFile := ctx.String(traceFlag.Name); traceFile != "" {
		if err := Handler.StartGoTrace(traceFile); err != nil {
			return err
		}
	}
	if cpuFile := ctx.String(cpuprofileFlag.Name); cpuFile != "" {
		if err := Handler.StartCPUProfile(cpuFile); err != nil {
			return err
		}
	}
	memProfileFile = ctx.String(memprofileFlag.Name)
	if location != "" {
		log.Info("Logging configured", "format", cfg.Format, "rotate", cfg.Rotate, "location", location)
	}
	return nil
}

// openLogFile opens the file log output goes to besides stderr, if any, and
// reports where it is.
func openLogFile(cfg Config) (io.WriteCloser, string, error) {
	if cfg.File != "" {
		if err := validateLogLocation(filepath.Dir(cfg.File)); err != nil {
			return nil, "", fmt.Errorf("failed to initialize file logger: %v", err)
		}
	}
	if cfg.Rotate {
		// Lumberjack picks <processname>-lumberjack.log in the temp dir when
		// no file name is given.
		location := cfg.File
		if location == "" {
			location = filepath.Join(os.TempDir(), filepath.Base(os.Args[0])+"-lumberjack.log")
		}
		return &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}, location, nil
	}
	if cfg.File == "" {
		return nil, "", nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, "", err
	}
	return f, cfg.File, nil
}

// newHandler builds the handler for format writing to stderr and, when
// non-nil, to file. Only the terminal format is colored, and only on a tty.
func newHandler(format string, file io.Writer, level slog.Level) (slog.Handler, error) {
	stderr := io.Writer(os.Stderr)
	useColor := false
	if format == "" || format == "terminal" {
		fd := os.Stderr.Fd()
		useColor = (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
		if useColor {
			stderr = colorable.NewColorableStderr()
		}
	}
	out := stderr
	if file != nil {
		out = io.MultiWriter(file, stderr)
	}
	switch format {
	case "json":
		return log.JSONHandlerWithLevel(out, level), nil
	case "logfmt":
		return log.LogfmtHandlerWithLevel(out, level), nil
	case "", "terminal":
		return log.NewTerminalHandlerWithLevel(out, level, useColor), nil
	}
	return nil, fmt.Errorf("unknown log format: %v", format)
}

// Exit stops the running profiles, writes the heap profile if requested and
// closes the log file.
// Exit 停止所有正在运行的性能分析，并将其输出刷新到各自的文件。
func Exit() {
	Handler.StopCPUProfile()
	Handler.StopGoTrace()
	if memProfileFile != "" {
		if err := Handler.WriteMemProfile(memProfileFile); err != nil {
			log.Error("Failed to write heap profile", "err", err)
		}
		memProfileFile = ""
	}
	if logOutputFile != nil {
		logOutputFile.Close()
		logOutputFile = nil
	}
}

// validateLogLocation creates the log directory and checks that it is
// writable.
func validateLogLocation(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory: %w", err)
	}
	scratch := filepath.Join(dir, "tmp")
	f, err := os.Create(scratch)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(scratch)
}
