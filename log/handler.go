package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

type discardHandler struct{}

// DiscardHandler returns a handler that drops every record.
func DiscardHandler() slog.Handler { return discardHandler{} }

func (discardHandler) Handle(context.Context, slog.Record) error  { return nil }
func (discardHandler) Enabled(context.Context, slog.Level) bool   { return false }
func (h discardHandler) WithGroup(string) slog.Handler            { return h }
func (h discardHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }

// TerminalHandler formats records for humans:
//
//	INFO [05-16|20:58:45.123] rpc/client.go:88 dialing   url=http://127.0.0.1:8545
//
// Attribute values are padded per key so that consecutive lines line up.
// TerminalHandler 以便于人类阅读的格式输出日志记录。
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      slog.Level
	useColor bool
	attrs    []slog.Attr

	// fieldPadding holds the widest value printed so far per attribute key.
	fieldPadding map[string]int
	buf          []byte
}

// NewTerminalHandler returns a TerminalHandler printing records of every
// level. Colors are only meant for interactive terminals.
func NewTerminalHandler(wr io.Writer, useColor bool) *TerminalHandler {
	return NewTerminalHandlerWithLevel(wr, levelAll, useColor)
}

// NewTerminalHandlerWithLevel is like NewTerminalHandler but drops records
// below lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl slog.Level, useColor bool) *TerminalHandler {
	return &TerminalHandler{wr: wr, lvl: lvl, useColor: useColor, fieldPadding: make(map[string]int)}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.format(h.buf, r, h.useColor)
	_, err := h.wr.Write(buf)
	h.buf = buf[:0]
	return err
}

// WithGroup is unsupported; the terminal format has no notion of groups.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	panic("log: TerminalHandler does not support groups")
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	child := NewTerminalHandlerWithLevel(h.wr, h.lvl, h.useColor)
	child.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return child
}

// ResetFieldPadding forgets the value widths seen so far.
func (h *TerminalHandler) ResetFieldPadding() {
	h.mu.Lock()
	h.fieldPadding = make(map[string]int)
	h.mu.Unlock()
}

// source renders the file and line a record was emitted from, keeping the
// last directory and the file name.
func (h *TerminalHandler) source(r slog.Record) string {
	if r.PC == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	file := frame.File
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		if j := strings.LastIndexByte(file[:i], '/'); j >= 0 {
			file = file[j+1:]
		}
	}
	return fmt.Sprintf("%s:%d", file, frame.Line)
}

// minLevel is a fixed slog.Leveler.
type minLevel slog.Level

func (l minLevel) Level() slog.Level { return slog.Level(l) }

// JSONHandler returns a handler printing one JSON object per record.
func JSONHandler(wr io.Writer) slog.Handler {
	return JSONHandlerWithLevel(wr, levelAll)
}

// JSONHandlerWithLevel is like JSONHandler but drops records below level.
func JSONHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		Level:       minLevel(level),
		ReplaceAttr: replaceAttr(false),
	})
}

// LogfmtHandler returns a handler printing key=value lines.
func LogfmtHandler(wr io.Writer) slog.Handler {
	return LogfmtHandlerWithLevel(wr, levelAll)
}

// LogfmtHandlerWithLevel is like LogfmtHandler but drops records below level.
func LogfmtHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		Level:       minLevel(level),
		ReplaceAttr: replaceAttr(true),
	})
}

// replaceAttr renames the built-in time and level keys to t and lvl and
// renders numbers and Stringers as strings. Logfmt output also gets times in
// timeFormat; JSON keeps RFC 3339.
func replaceAttr(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				if logfmt {
					return slog.String("t", attr.Value.Time().Format(timeFormat))
				}
				return slog.Attr{Key: "t", Value: attr.Value}
			}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.String("lvl", LevelString(l))
			}
		}
		switch v := attr.Value.Any().(type) {
		case time.Time:
			if logfmt {
				return slog.String(attr.Key, v.Format(timeFormat))
			}
		case *big.Int:
			if v == nil {
				return slog.String(attr.Key, "<nil>")
			}
			return slog.String(attr.Key, v.String())
		case *uint256.Int:
			if v == nil {
				return slog.String(attr.Key, "<nil>")
			}
			return slog.String(attr.Key, v.Dec())
		case fmt.Stringer:
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
				return slog.String(attr.Key, "<nil>")
			}
			return slog.String(attr.Key, v.String())
		}
		return attr
	}
}
