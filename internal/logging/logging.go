// Package logging routes log/slog records onto a line-oriented sink such as
// hal.Logger.
package logging

import (
	"bytes"
	"log/slog"
	"sync"
)

// LineWriter receives complete log lines without the trailing newline.
type LineWriter interface {
	WriteLineString(s string)
}

// Options tune the handler.
type Options struct {
	Level slog.Leveler
	// NoTime drops the time attribute, for targets without a wall clock.
	NoTime bool
}

// New returns a logger writing text records to w, one line each.
func New(w LineWriter, opts Options) *slog.Logger {
	return slog.New(NewHandler(w, opts))
}

// NewHandler returns the slog.Handler behind New.
func NewHandler(w LineWriter, opts Options) slog.Handler {
	ho := &slog.HandlerOptions{Level: opts.Level}
	if opts.NoTime {
		ho.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
	}
	return slog.NewTextHandler(&splitter{w: w}, ho)
}

// splitter turns a byte stream into lines. slog writes one record per Write
// call, but partial lines are carried over anyway.
type splitter struct {
	mu  sync.Mutex
	w   LineWriter
	buf []byte
}

func (s *splitter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, p...)
	for {
		i := bytes.IndexByte(s.buf, '\n')
		if i < 0 {
			break
		}
		s.w.WriteLineString(string(s.buf[:i]))
		s.buf = s.buf[i+1:]
	}
	if len(s.buf) == 0 {
		s.buf = nil
	}
	return len(p), nil
}
