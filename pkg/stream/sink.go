// Package stream defines the byte sink abstraction rendered output is
// written to, and a guard decorator that can irreversibly cut a sink off
// from further writes.
package stream

import (
	"errors"
	"io"
)

// Sink is a byte sink that can be flushed. Concrete sinks may additionally
// implement io.Reader, io.Seeker, or Truncater; the Guard delegates those
// capabilities when present.
type Sink interface {
	io.Writer
	Flush() error
}

// Truncater is the optional set-length capability of a Sink.
type Truncater interface {
	Truncate(size int64) error
}

// Capability errors reported by Guard when the wrapped sink does not
// support an optional operation.
var (
	ErrNotReadable  = errors.New("stream: sink does not support reading")
	ErrNotSeekable  = errors.New("stream: sink does not support seeking")
	ErrNotTruncable = errors.New("stream: sink does not support truncation")
)

// writerSink adapts a plain io.Writer into a Sink with a no-op Flush.
type writerSink struct {
	io.Writer
}

func (writerSink) Flush() error { return nil }

// SinkFor returns w itself when it already is a Sink, and otherwise wraps
// it with a no-op Flush. It never wraps twice.
func SinkFor(w io.Writer) Sink {
	if s, ok := w.(Sink); ok {
		return s
	}
	return writerSink{w}
}
