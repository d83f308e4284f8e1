package stream

import (
	"errors"
	"io"
)

// BufferSink is an in-memory Sink carrying the full capability set: read,
// write, seek, truncate, and flush. It stages rendered output that is
// published somewhere else afterwards (static export, tests).
//
// Reads and writes share one offset, moved by Seek.
type BufferSink struct {
	buf     []byte
	off     int64
	flushes int
}

// NewBufferSink returns an empty BufferSink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// Write writes p at the current offset, growing the buffer as needed.
func (b *BufferSink) Write(p []byte) (int, error) {
	if need := b.off + int64(len(p)); need > int64(len(b.buf)) {
		grown := make([]byte, need)
		copy(grown, b.buf)
		b.buf = grown
	}
	copy(b.buf[b.off:], p)
	b.off += int64(len(p))
	return len(p), nil
}

// Read reads from the current offset.
func (b *BufferSink) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += int64(n)
	return n, nil
}

// Seek moves the shared read/write offset.
func (b *BufferSink) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, errors.New("stream: invalid seek whence")
	}
	if abs < 0 {
		return 0, errors.New("stream: negative seek position")
	}
	b.off = abs
	return abs, nil
}

// Truncate sets the buffer length. Growing pads with zero bytes. The
// offset is clamped when it falls beyond the new length.
func (b *BufferSink) Truncate(size int64) error {
	if size < 0 {
		return errors.New("stream: negative truncate size")
	}
	switch {
	case size <= int64(len(b.buf)):
		b.buf = b.buf[:size]
	default:
		grown := make([]byte, size)
		copy(grown, b.buf)
		b.buf = grown
	}
	if b.off > size {
		b.off = size
	}
	return nil
}

// Flush records the flush; buffered memory needs no forwarding.
func (b *BufferSink) Flush() error {
	b.flushes++
	return nil
}

// Flushes returns how many times Flush has been called.
func (b *BufferSink) Flushes() int { return b.flushes }

// Bytes returns the full buffer contents regardless of offset.
func (b *BufferSink) Bytes() []byte { return b.buf }

// Len returns the buffer length.
func (b *BufferSink) Len() int { return len(b.buf) }
