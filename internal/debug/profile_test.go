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

package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUProfile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cpu.prof")
	h := new(HandlerT)

	require.NoError(t, h.StartCPUProfile(file))
	assert.EqualError(t, h.StartCPUProfile(file), "CPU profile already in progress")
	require.NoError(t, h.StopCPUProfile())
	assert.EqualError(t, h.StopCPUProfile(), "CPU profile not in progress")

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestGoTrace(t *testing.T) {
	file := filepath.Join(t.TempDir(), "trace.out")
	h := new(HandlerT)

	assert.EqualError(t, h.StopGoTrace(), "Go trace not in progress")
	require.NoError(t, h.StartGoTrace(file))
	require.NoError(t, h.StopGoTrace())

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestMemProfileOnExit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "heap.prof")
	require.NoError(t, runSetup(t, DefaultConfig, "--pprof.memprofile", file))

	Exit()
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestProfileBadPath(t *testing.T) {
	h := new(HandlerT)
	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.prof")
	assert.Error(t, h.StartCPUProfile(missing))
	// A failed start leaves nothing running.
	assert.EqualError(t, h.StopCPUProfile(), "CPU profile not in progress")
}
