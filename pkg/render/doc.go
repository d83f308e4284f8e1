// Package render coordinates streaming templated output onto a single-use
// byte sink with two guarantees:
//
//   - The Content-Type header is negotiated from an optional caller hint and
//     committed before any body byte is written.
//   - When rendering fails partway, no byte reaches the sink after the
//     failure is observed, including the buffered writer's release flush.
//
// # Basic Usage
//
// To render onto an HTTP response:
//
//	coord := render.New()
//	err := coord.Render(r.Context(), render.NewHTTPResponse(w), nil, func(w *bufio.Writer) error {
//	    _, err := w.WriteString("<h1>hello</h1>")
//	    return err
//	})
//
// A nil content type hint negotiates to "text/html; charset=utf-8". A hint
// carrying a charset selects the body encoding; unknown charsets fail with
// *charset.UnknownEncodingError before anything is committed.
//
// # Failure Semantics
//
// The callback's writer is a 1KB buffered encoder over a stream.Guard over
// the response sink. On failure the guard is armed before the writer chain
// is released, so the release flush silently discards whatever the buffer
// still holds. Bytes flushed to the sink before the failure cannot be
// rolled back; streaming output is gone once transmitted. The callback's
// error is returned unchanged.
//
// # Interceptors
//
// Interceptors wrap the streaming stage for metrics and tracing; see the
// middleware package for the Prometheus and OpenTelemetry implementations.
package render
