package stream

import (
	"io"
	"sync/atomic"
)

// Guard wraps exactly one Sink for its entire lifetime and can be switched,
// once and irreversibly, into a mode where writes and flushes no longer
// reach the wrapped sink.
//
// Buffered writers flush automatically when released, even when the caller
// intends to discard partial output. Blocking beneath the buffer is the one
// point that reliably keeps such a release flush off the wire, without the
// buffered writer having to be failure-aware.
//
// A Guard never closes the wrapped sink; sink lifetime stays with whoever
// created it.
type Guard struct {
	sink    Sink
	blocked atomic.Bool
	written atomic.Int64
}

// NewGuard wraps sink in an unblocked Guard.
func NewGuard(sink Sink) *Guard {
	return &Guard{sink: sink}
}

// Block switches the Guard into its write- and flush-suppressing mode.
// Idempotent; there is no way to unblock.
func (g *Guard) Block() { g.blocked.Store(true) }

// Blocked reports whether Block has been called.
func (g *Guard) Blocked() bool { return g.blocked.Load() }

// BytesWritten returns the number of bytes delegated to the wrapped sink.
func (g *Guard) BytesWritten() int64 { return g.written.Load() }

// Write delegates to the wrapped sink, or reports success without writing
// anything once the Guard is blocked.
func (g *Guard) Write(p []byte) (int, error) {
	if g.blocked.Load() {
		return len(p), nil
	}
	n, err := g.sink.Write(p)
	g.written.Add(int64(n))
	return n, err
}

// Flush delegates to the wrapped sink, or does nothing once blocked.
func (g *Guard) Flush() error {
	if g.blocked.Load() {
		return nil
	}
	return g.sink.Flush()
}

// Read delegates to the wrapped sink when it is readable. Reads are not
// suppressed by blocking.
func (g *Guard) Read(p []byte) (int, error) {
	r, ok := g.sink.(io.Reader)
	if !ok {
		return 0, ErrNotReadable
	}
	return r.Read(p)
}

// Seek delegates to the wrapped sink when it is seekable.
func (g *Guard) Seek(offset int64, whence int) (int64, error) {
	s, ok := g.sink.(io.Seeker)
	if !ok {
		return 0, ErrNotSeekable
	}
	return s.Seek(offset, whence)
}

// Truncate delegates to the wrapped sink when it supports truncation.
func (g *Guard) Truncate(size int64) error {
	t, ok := g.sink.(Truncater)
	if !ok {
		return ErrNotTruncable
	}
	return t.Truncate(size)
}
