package render

import (
	"bufio"
	"context"
	"log/slog"

	"golang.org/x/text/transform"

	"github.com/viewstream-dev/viewstream/pkg/charset"
	"github.com/viewstream-dev/viewstream/pkg/contenttype"
	"github.com/viewstream-dev/viewstream/pkg/negotiate"
	"github.com/viewstream-dev/viewstream/pkg/stream"
)

// DefaultBufferSize is the buffered writer size used for the encoding chain.
const DefaultBufferSize = 1024

// RenderFunc produces the body of one render pass. The writer it receives
// is buffered and encodes to the negotiated charset; anything left in the
// buffer is flushed (or, on failure, discarded) when the callback returns.
type RenderFunc func(w *bufio.Writer) error

// Coordinator orchestrates content type negotiation, sink guarding, and
// buffered encoded streaming. A Coordinator is stateless across render
// calls and safe for concurrent use; per-call state lives on the stack of
// each Render invocation and is never pooled or shared.
type Coordinator struct {
	bufSize      int
	logger       *slog.Logger
	interceptors []Interceptor
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithBufferSize sets the buffered writer size. Values below 1 fall back
// to DefaultBufferSize.
func WithBufferSize(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.bufSize = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInterceptors appends interceptors wrapping the streaming stage,
// outermost first.
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(c *Coordinator) {
		c.interceptors = append(c.interceptors, interceptors...)
	}
}

// New returns a Coordinator with the given options applied.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		bufSize: DefaultBufferSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render renders one response body through fn.
//
// Sequence: negotiate the content type from the optional requested hint
// (failing before any header or sink activity on an unknown charset),
// commit the header on resp, then stream the callback's output through a
// buffered encoding writer over a guarded sink. On any callback failure,
// including context cancellation, the guard is armed before the writer
// chain is released and the original error is returned unchanged.
func (c *Coordinator) Render(ctx context.Context, resp Response, requested *contenttype.Spec, fn RenderFunc) error {
	_, err := c.RenderView(ctx, "", resp, requested, fn)
	return err
}

// RenderView is Render with a view name for interceptors and logging, and
// returns the Info describing the pass alongside the render error.
func (c *Coordinator) RenderView(ctx context.Context, view string, resp Response, requested *contenttype.Spec, fn RenderFunc) (*Info, error) {
	header, enc, err := negotiate.Negotiate(requested)
	if err != nil {
		return nil, err
	}

	resp.SetContentType(header)

	guard := stream.NewGuard(resp.Body())
	info := &Info{View: view, ContentType: header, Encoding: enc.Name()}

	run := func() error {
		err := c.streamBody(ctx, guard, enc, fn)
		info.BytesWritten = guard.BytesWritten()
		info.Blocked = guard.Blocked()
		return err
	}
	for i := len(c.interceptors) - 1; i >= 0; i-- {
		next, ic := run, c.interceptors[i]
		run = func() error { return ic(ctx, info, next) }
	}

	if err := run(); err != nil {
		c.logger.Error("render failed",
			slog.String("view", view),
			slog.String("content_type", header),
			slog.Int64("bytes_flushed", info.BytesWritten),
			slog.Any("error", err))
		return info, err
	}

	c.logger.Debug("render complete",
		slog.String("view", view),
		slog.String("content_type", header),
		slog.Int64("bytes", info.BytesWritten))
	return info, nil
}

// streamBody runs fn against the buffered encoding chain
// bufio.Writer -> encoder -> guard -> sink and settles the chain on every
// exit path. Release flushes after a failure hit the armed guard and
// silently vanish.
func (c *Coordinator) streamBody(ctx context.Context, guard *stream.Guard, enc charset.Encoding, fn RenderFunc) error {
	encoded := transform.NewWriter(guard, enc.NewEncoder())
	buffered := bufio.NewWriterSize(encoded, c.bufSize)

	err := ctx.Err()
	if err == nil {
		err = fn(buffered)
	}
	if err == nil {
		// Cancellation observed after the callback is still a failure.
		err = ctx.Err()
	}

	if err != nil {
		guard.Block()
		// Release the chain anyway; the guard swallows both flushes.
		_ = buffered.Flush()
		_ = encoded.Close()
		return err
	}

	if err := buffered.Flush(); err != nil {
		guard.Block()
		_ = encoded.Close()
		return err
	}
	if err := encoded.Close(); err != nil {
		guard.Block()
		return err
	}
	return guard.Flush()
}
