package log

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"time"
)

// errorKey marks records whose attributes had to be repaired.
const errorKey = "LOG_ERROR"

// Levels beyond the four slog defines. Trace sits below debug and crit above
// error; levelAll lets every record through.
const (
	levelAll   slog.Level = math.MinInt
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12
)

var levelNames = map[slog.Level]string{
	LevelTrace: "trace",
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelCrit:  "crit",
}

// legacyLevels is indexed by the numeric verbosity of the --verbosity flag.
var legacyLevels = [...]slog.Level{LevelCrit, LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace}

// FromLegacyLevel converts a numeric verbosity as used on the command line
// (0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace) into a slog level.
// Values above 5 map to trace, negative ones to crit.
// FromLegacyLevel 将命令行使用的数字详细级别转换为 slog 级别。
func FromLegacyLevel(verbosity int) slog.Level {
	switch {
	case verbosity < 0:
		return LevelCrit
	case verbosity >= len(legacyLevels):
		return LevelTrace
	}
	return legacyLevels[verbosity]
}

// LevelFromString parses a level name such as "info" or "TRACE". The four
// letter forms of the terminal output are accepted too.
func LevelFromString(s string) (slog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "trce":
		return LevelTrace, nil
	case "dbug":
		return LevelDebug, nil
	case "warning":
		return LevelWarn, nil
	case "eror":
		return LevelError, nil
	}
	for lvl, n := range levelNames {
		if n == name {
			return lvl, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// LevelString returns the lower case name of l.
func LevelString(l slog.Level) string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown level"
}

// LevelAlignedString returns the upper case name of l padded to five
// characters, as printed by the terminal handler.
func LevelAlignedString(l slog.Level) string {
	name, ok := levelNames[l]
	if !ok {
		return "unknown level"
	}
	return fmt.Sprintf("%-5s", strings.ToUpper(name))
}

// A Logger writes leveled messages with key/value context to a slog.Handler.
// Logger 将键值对写入处理器。
type Logger interface {
	// With returns a Logger that adds ctx to every record.
	With(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	// Crit logs at crit level and terminates the process.
	Crit(msg string, ctx ...interface{})

	// Write logs at an arbitrary level.
	Write(level slog.Level, msg string, attrs ...any)
	Enabled(ctx context.Context, level slog.Level) bool
	Handler() slog.Handler
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a Logger writing to h.
func NewLogger(h slog.Handler) Logger {
	return &logger{inner: slog.New(h)}
}

func (l *logger) Handler() slog.Handler { return l.inner.Handler() }

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) With(ctx ...interface{}) Logger {
	return &logger{inner: l.inner.With(ctx...)}
}

// Write emits a record. The level methods and the package level functions
// all call it directly, so the caller is always three frames up.
func (l *logger) Write(level slog.Level, msg string, attrs ...any) {
	ctx := context.Background()
	if !l.inner.Enabled(ctx, level) {
		return
	}
	var pc [1]uintptr
	runtime.Callers(3, pc[:])

	if len(attrs)%2 == 1 {
		attrs = append(attrs, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pc[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(ctx, r)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.Write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.Write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.Write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.Write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.Write(LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
