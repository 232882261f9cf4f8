package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTimeTermFormat(t *testing.T) {
	var b bytes.Buffer
	writeTimeTermFormat(&b, time.Date(2024, 3, 7, 9, 5, 4, 12_000_000, time.UTC))
	assert.Equal(t, "03-07|09:05:04.012", b.String())
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, LevelInfo, false))
	l.Debug("hidden")
	l.Info("dialing", "url", "http://localhost:8545", "attempt", 1)

	line := out.String()
	require.Equal(t, 1, strings.Count(line, "\n"), line)
	assert.True(t, strings.HasPrefix(line, "INFO ["), line)
	assert.Contains(t, line, "logger_test.go:")
	assert.Contains(t, line, "dialing")
	assert.Contains(t, line, "url=http://localhost:8545")
	assert.Contains(t, line, "attempt=1")
}

func TestTerminalHandlerWith(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false)).With("conn", "ws")
	l.Trace("frame", "id", 7)
	assert.Contains(t, out.String(), "conn=ws")
	assert.Contains(t, out.String(), "id=7")
}

func TestOddAttributes(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("odd", "key")
	assert.Contains(t, out.String(), errorKey)
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandlerWithLevel(out, LevelWarn))
	l.Info("hidden")
	l.Warn("value", "amount", big.NewInt(1_000_000), "word", uint256.NewInt(5))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "warn", rec["lvl"])
	assert.Equal(t, "1000000", rec["amount"])
	assert.Equal(t, "5", rec["word"])
	assert.Contains(t, rec, "t")
}

func TestLogfmtHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(LogfmtHandler(out))
	l.Error("failed", "err", errors.New("boom"))
	assert.Contains(t, out.String(), "lvl=error")
	assert.Contains(t, out.String(), "msg=failed")
	assert.Contains(t, out.String(), "err=boom")
}

func TestFormatSlogValue(t *testing.T) {
	huge, _ := new(big.Int).SetString("-1000000000000000000000", 10)
	var tests = []struct {
		value interface{}
		want  string
	}{
		{int64(-123456), "-123,456"},
		{uint64(99999), "99999"},
		{uint64(1234567), "1,234,567"},
		{big.NewInt(100000), "100,000"},
		{huge, "-1,000,000,000,000,000,000,000"},
		{new(uint256.Int).Lsh(uint256.NewInt(1), 70), "1,180,591,620,717,411,303,424"},
		{(*big.Int)(nil), "<nil>"},
		{"with space", `"with space"`},
		{"quote\"d", `"quote\"d"`},
		{errors.New("bad"), "bad"},
		{true, "true"},
	}
	for _, test := range tests {
		got := string(FormatSlogValue(slog.AnyValue(test.value), nil))
		assert.Equal(t, test.want, got, "%v", test.value)
	}
}

func TestLevels(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))

	lvl, err := LevelFromString("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)
	_, err = LevelFromString("loud")
	assert.Error(t, err)

	assert.Equal(t, "trace", LevelString(LevelTrace))
	assert.Equal(t, "WARN ", LevelAlignedString(LevelWarn))
}

func TestSetDefault(t *testing.T) {
	prev := Root()
	defer SetDefault(prev)

	out := new(bytes.Buffer)
	SetDefault(NewLogger(LogfmtHandlerWithLevel(out, LevelInfo)))
	Debug("hidden")
	Info("shown", "n", 3)
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "msg=shown")
	assert.Contains(t, out.String(), "n=3")
}
