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

// Package debug wires logging and runtime profiling into the command line.
package debug

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"sync"

	"github.com/sunyihoo/go-ethabi/internal/flags"
	"github.com/sunyihoo/go-ethabi/log"
)

// Handler is the global profiling handler.
var Handler = new(HandlerT)

// HandlerT tracks the CPU profile and execution trace started from the
// command line. Use the Handler variable rather than creating values.
// HandlerT 跟踪从命令行启动的 CPU 性能分析和执行跟踪。
type HandlerT struct {
	mu    sync.Mutex
	cpu   recording
	trace recording
}

// recording is a profile streamed to a file until it is stopped.
type recording struct {
	kind string
	file string
	out  io.WriteCloser
	stop func()
}

func (r *recording) start(kind, file string, begin func(io.Writer) error, stop func()) error {
	if r.out != nil {
		return fmt.Errorf("%s already in progress", kind)
	}
	f, err := os.Create(flags.ExpandPath(file))
	if err != nil {
		return err
	}
	if err := begin(f); err != nil {
		f.Close()
		return err
	}
	*r = recording{kind: kind, file: file, out: f, stop: stop}
	log.Info("Started "+kind, "dump", file)
	return nil
}

func (r *recording) finish() error {
	if r.out == nil {
		return fmt.Errorf("%s not in progress", r.kind)
	}
	r.stop()
	err := r.out.Close()
	log.Info("Done writing "+r.kind, "dump", r.file)
	*r = recording{kind: r.kind}
	return err
}

// StartCPUProfile turns on CPU profiling, writing to the given file.
func (h *HandlerT) StartCPUProfile(file string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cpu.start("CPU profile", file, pprof.StartCPUProfile, pprof.StopCPUProfile)
}

// StopCPUProfile stops an ongoing CPU profile.
func (h *HandlerT) StopCPUProfile() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cpu.kind = "CPU profile"
	return h.cpu.finish()
}

// StartGoTrace turns on execution tracing, writing to the given file.
// StartGoTrace 开启跟踪，将跟踪数据写入指定的文件。
func (h *HandlerT) StartGoTrace(file string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.trace.start("Go trace", file, trace.Start, trace.Stop)
}

// StopGoTrace stops an ongoing execution trace.
func (h *HandlerT) StopGoTrace() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.trace.kind = "Go trace"
	return h.trace.finish()
}

// WriteMemProfile writes the heap profile to the given file.
func (*HandlerT) WriteMemProfile(file string) error {
	p := pprof.Lookup("heap")
	f, err := os.Create(flags.ExpandPath(file))
	if err != nil {
		return err
	}
	defer f.Close()
	log.Info("Writing heap profile", "records", p.Count(), "dump", file)
	return p.WriteTo(f, 0)
}
