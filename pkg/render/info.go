package render

import "context"

// Info describes one render pass to interceptors. ContentType, Encoding,
// and View are set before the streaming stage runs; BytesWritten and
// Blocked are settled by the time next() returns.
type Info struct {
	// View is the logical view name, "" when rendered anonymously.
	View string

	// ContentType is the negotiated header value committed to the response.
	ContentType string

	// Encoding is the canonical name of the negotiated body encoding.
	Encoding string

	// BytesWritten is the number of bytes that reached the sink.
	BytesWritten int64

	// Blocked reports whether the guard was armed, i.e. the pass faulted
	// after streaming began.
	Blocked bool
}

// Interceptor wraps the streaming stage of a render pass. Implementations
// must call next exactly once and return its error (possibly after
// recording it); they must not suppress or replace render failures.
type Interceptor func(ctx context.Context, info *Info, next func() error) error
