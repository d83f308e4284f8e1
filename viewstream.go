// Package viewstream is a server-side streaming render toolkit.
//
// Views write text to a buffered, charset-encoding writer; the toolkit
// negotiates the Content-Type header before the first byte and guarantees
// that a failed render leaks no bytes after the failure point, even though
// buffered writers flush on release.
//
// The root package is a thin HTTP facade over the render coordinator:
//
//	srv := viewstream.NewServer()
//	srv.Handle("/", func(w *bufio.Writer, r *http.Request) error {
//	    _, err := w.WriteString("<h1>hello</h1>")
//	    return err
//	})
//	http.ListenAndServe(":3000", srv)
//
// The building blocks live in pkg/: contenttype and charset parsing and
// lookup, the negotiate rules, the guarded sink in stream, and the
// coordinator in render.
package viewstream

import (
	"bufio"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/viewstream-dev/viewstream/pkg/contenttype"
	"github.com/viewstream-dev/viewstream/pkg/render"
)

// ViewFunc produces the body of one response. The writer encodes to the
// negotiated charset; r carries the request and any attached view data.
type ViewFunc func(w *bufio.Writer, r *http.Request) error

// Server routes HTTP requests to views rendered through a coordinator.
// It implements http.Handler.
type Server struct {
	mux         *chi.Mux
	coord       *render.Coordinator
	logger      *slog.Logger
	defaultType *contenttype.Spec
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithCoordinator sets the render coordinator, replacing the default.
func WithCoordinator(coord *render.Coordinator) ServerOption {
	return func(s *Server) {
		if coord != nil {
			s.coord = coord
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultContentType sets the content type hint applied to routes that
// declare none. Panics on an unparseable value; this is registration-time
// configuration.
func WithDefaultContentType(value string) ServerOption {
	spec, err := contenttype.Parse(value)
	if err != nil {
		panic("viewstream: invalid default content type: " + err.Error())
	}
	return func(s *Server) {
		s.defaultType = &spec
	}
}

// NewServer creates a Server with the given options applied.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		mux:    chi.NewRouter(),
		coord:  render.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// route holds per-route render settings.
type route struct {
	name string
	spec *contenttype.Spec
	data Data
}

// RouteOption configures one route registration.
type RouteOption func(*route)

// WithContentType sets the route's content type hint. Panics on an
// unparseable value.
func WithContentType(value string) RouteOption {
	spec, err := contenttype.Parse(value)
	if err != nil {
		panic("viewstream: invalid content type: " + err.Error())
	}
	return func(rt *route) {
		rt.spec = &spec
	}
}

// WithViewName names the route for metrics, tracing, and logs. Defaults to
// the route pattern.
func WithViewName(name string) RouteOption {
	return func(rt *route) {
		rt.name = name
	}
}

// WithViewData attaches an opaque data bag forwarded to the view on every
// request. The server never examines it.
func WithViewData(data Data) RouteOption {
	return func(rt *route) {
		rt.data = data
	}
}

// Handle registers a GET route rendering view.
func (s *Server) Handle(pattern string, view ViewFunc, opts ...RouteOption) {
	rt := &route{name: pattern}
	for _, opt := range opts {
		opt(rt)
	}

	s.mux.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		if rt.data != nil {
			r = r.WithContext(WithData(r.Context(), rt.data))
		}

		spec := rt.spec
		if spec == nil {
			spec = s.defaultType
		}

		info, err := s.coord.RenderView(r.Context(), rt.name, render.NewHTTPResponse(w), spec, func(bw *bufio.Writer) error {
			return view(bw, r)
		})
		if err != nil && (info == nil || info.BytesWritten == 0) {
			// Nothing was flushed, so the status line is still ours to write.
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// HandleMetrics exposes Prometheus metrics at path.
func (s *Server) HandleMetrics(path string) {
	s.mux.Handle(path, promhttp.Handler())
}

// Mux returns the underlying chi router for advanced wiring.
func (s *Server) Mux() *chi.Mux { return s.mux }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
