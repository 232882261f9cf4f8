package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// root discards everything until a program installs a logger.
var root atomic.Value

func init() {
	root.Store(NewLogger(DiscardHandler()))
}

// SetDefault replaces the root logger. It is also installed as the slog
// default so records from slog users end up in the same place.
// SetDefault 设置默认的全局日志记录器。
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// The package level functions call Write directly, like the methods of
// logger, to keep the recorded caller right.

// Trace logs at trace level on the root logger.
//
//	log.Trace("msg", "key1", val1)
func Trace(msg string, ctx ...interface{}) { Root().Write(LevelTrace, msg, ctx...) }

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...interface{}) { Root().Write(LevelDebug, msg, ctx...) }

// Info logs at info level on the root logger.
func Info(msg string, ctx ...interface{}) { Root().Write(LevelInfo, msg, ctx...) }

// Warn logs at warn level on the root logger.
func Warn(msg string, ctx ...interface{}) { Root().Write(LevelWarn, msg, ctx...) }

// Error logs at error level on the root logger.
func Error(msg string, ctx ...interface{}) { Root().Write(LevelError, msg, ctx...) }

// Crit logs at crit level on the root logger and exits.
func Crit(msg string, ctx ...interface{}) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// New returns a child of the root logger carrying ctx.
func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
