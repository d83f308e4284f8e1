package render

import (
	"net/http"

	"github.com/viewstream-dev/viewstream/pkg/stream"
)

// Response is the external response collaborator: it accepts the negotiated
// Content-Type header and exposes the body sink. Implementations own the
// sink's lifetime; the coordinator never closes it.
type Response interface {
	SetContentType(value string)
	Body() stream.Sink
}

// HTTPResponse adapts an http.ResponseWriter into a Response. Flushes are
// forwarded when the writer implements http.Flusher and dropped otherwise.
type HTTPResponse struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewHTTPResponse wraps w.
func NewHTTPResponse(w http.ResponseWriter) *HTTPResponse {
	flusher, _ := w.(http.Flusher)
	return &HTTPResponse{w: w, flusher: flusher}
}

// SetContentType commits the Content-Type header.
func (r *HTTPResponse) SetContentType(value string) {
	r.w.Header().Set("Content-Type", value)
}

// Body returns the response body as a Sink.
func (r *HTTPResponse) Body() stream.Sink { return r }

// Write writes body bytes to the underlying ResponseWriter.
func (r *HTTPResponse) Write(p []byte) (int, error) {
	return r.w.Write(p)
}

// Flush flushes the ResponseWriter when it supports flushing.
func (r *HTTPResponse) Flush() error {
	if r.flusher != nil {
		r.flusher.Flush()
	}
	return nil
}

// SinkResponse is a Response over a bare Sink, for targets that are not
// HTTP responses (export staging, sockets, tests). The committed header
// value is retained for the caller to use.
type SinkResponse struct {
	sink        stream.Sink
	contentType string
}

// NewSinkResponse wraps sink.
func NewSinkResponse(sink stream.Sink) *SinkResponse {
	return &SinkResponse{sink: sink}
}

// SetContentType records the negotiated header value.
func (r *SinkResponse) SetContentType(value string) { r.contentType = value }

// ContentType returns the header value committed by negotiation, or ""
// before rendering.
func (r *SinkResponse) ContentType() string { return r.contentType }

// Body returns the wrapped sink.
func (r *SinkResponse) Body() stream.Sink { return r.sink }
