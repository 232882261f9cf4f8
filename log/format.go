package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"

	// termMsgJust is the column attributes start at after a short message.
	termMsgJust = 40
	// termMaxPadding caps the width a single attribute value is padded to.
	termMaxPadding = 40
)

// TerminalStringer is implemented by types with a shortened form for the
// terminal, such as hashes printed as 0x1234…cdef.
type TerminalStringer interface {
	TerminalString() string
}

var levelColors = map[slog.Level]string{
	LevelCrit:  "\x1b[35m",
	LevelError: "\x1b[31m",
	LevelWarn:  "\x1b[33m",
	LevelInfo:  "\x1b[32m",
	LevelDebug: "\x1b[36m",
	LevelTrace: "\x1b[34m",
}

const colorReset = "\x1b[0m"

func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	var color string
	if usecolor {
		color = levelColors[r.Level]
	}
	b := bytes.NewBuffer(buf)

	writeColored(b, color, LevelAlignedString(r.Level))
	b.WriteByte('[')
	writeTimeTermFormat(b, r.Time)
	b.WriteString("] ")
	if src := h.source(r); src != "" {
		b.WriteString(src)
		b.WriteByte(' ')
	}
	msg := escapeMessage(r.Message)
	b.WriteString(msg)

	total := len(h.attrs) + r.NumAttrs()
	if n := utf8.RuneCountInString(msg); total > 0 && n < termMsgJust {
		b.WriteString(strings.Repeat(" ", termMsgJust-n))
	}
	written := 0
	emit := func(attr slog.Attr) bool {
		written++
		h.writeAttr(b, color, attr, written == total)
		return true
	}
	for _, attr := range h.attrs {
		emit(attr)
	}
	r.Attrs(emit)
	b.WriteByte('\n')
	return b.Bytes()
}

// writeAttr prints " key=value", padding the value to the widest one seen
// for the key unless it is the last attribute of the line.
func (h *TerminalHandler) writeAttr(b *bytes.Buffer, color string, attr slog.Attr, last bool) {
	b.WriteByte(' ')
	writeColored(b, color, string(appendEscapeString(nil, attr.Key)))
	b.WriteByte('=')

	val := FormatSlogValue(attr.Value, nil)
	width := utf8.RuneCount(val)
	pad := h.fieldPadding[attr.Key]
	if width > pad && width <= termMaxPadding {
		pad = width
		h.fieldPadding[attr.Key] = pad
	}
	b.Write(val)
	if !last && pad > width {
		b.WriteString(strings.Repeat(" ", pad-width))
	}
}

func writeColored(b *bytes.Buffer, color, s string) {
	if color == "" {
		b.WriteString(s)
		return
	}
	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(colorReset)
}

// FormatSlogValue appends the terminal form of v to tmp. Integers get
// thousand separators from 100,000 on; errors, TerminalStringers and
// Stringers are rendered through their methods.
// FormatSlogValue 将 slog.Value 格式化为终端输出。
func FormatSlogValue(v slog.Value, tmp []byte) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendEscapeString(tmp, v.String())
	case slog.KindInt64:
		n := v.Int64()
		if n < 0 {
			return appendDecimal(tmp, strconv.FormatUint(uint64(-n), 10), true)
		}
		return appendDecimal(tmp, strconv.FormatInt(n, 10), false)
	case slog.KindUint64:
		return appendDecimal(tmp, strconv.FormatUint(v.Uint64(), 10), false)
	case slog.KindFloat64:
		return strconv.AppendFloat(tmp, v.Float64(), 'f', 3, 64)
	case slog.KindBool:
		return strconv.AppendBool(tmp, v.Bool())
	case slog.KindDuration:
		return appendEscapeString(tmp, v.Duration().String())
	case slog.KindTime:
		return v.Time().AppendFormat(tmp, timeFormat)
	}
	value := v.Any()
	if value == nil {
		return append(tmp, "<nil>"...)
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return append(tmp, "<nil>"...)
	}
	switch x := value.(type) {
	case *big.Int:
		return appendDecimal(tmp, new(big.Int).Abs(x).String(), x.Sign() < 0)
	case *uint256.Int:
		return appendDecimal(tmp, x.Dec(), false)
	case error:
		return appendEscapeString(tmp, x.Error())
	case TerminalStringer:
		return appendEscapeString(tmp, x.TerminalString())
	case fmt.Stringer:
		return appendEscapeString(tmp, x.String())
	}
	return appendEscapeString(tmp, fmt.Sprintf("%+v", value))
}

// appendDecimal appends a sign and the decimal digits, grouped by three with
// commas once there are more than five of them.
func appendDecimal(dst []byte, digits string, neg bool) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if len(digits) <= 5 {
		return append(dst, digits...)
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	dst = append(dst, digits[:lead]...)
	for i := lead; i < len(digits); i += 3 {
		dst = append(dst, ',')
		dst = append(dst, digits[i:i+3]...)
	}
	return dst
}

// appendEscapeString appends s, quoted when it holds spaces or '=' and
// escaped when it holds quotes, control or non-ASCII characters.
func appendEscapeString(dst []byte, s string) []byte {
	quote := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '=':
			quote = true
		case r <= '"' || r > '~':
			return strconv.AppendQuote(dst, s)
		}
	}
	if !quote {
		return append(dst, s...)
	}
	dst = append(dst, '"')
	dst = append(dst, s...)
	return append(dst, '"')
}

// escapeMessage quotes a log message only when it holds '=', control
// characters other than line breaks and tabs, or non-ASCII characters.
func escapeMessage(s string) string {
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
		case r < ' ' || r > '~' || r == '=':
			return strconv.Quote(s)
		}
	}
	return s
}

func writeTimeTermFormat(buf *bytes.Buffer, t time.Time) {
	buf.WriteString(t.Format(termTimeFormat))
}
