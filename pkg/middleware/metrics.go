package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/viewstream-dev/viewstream/pkg/charset"
	"github.com/viewstream-dev/viewstream/pkg/render"
)

// MetricsConfig configures the Prometheus render interceptor.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "viewstream").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus render interceptor.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "viewstream",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the render pipeline.
type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	renderBytes    prometheus.Counter
	rendersBlocked prometheus.Counter
}

// globalMetrics is created on the first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"view", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"view"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of render failures",
			ConstLabels: config.ConstLabels,
		}, []string{"view", "error_type"}),

		renderBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_bytes_total",
			Help:        "Total body bytes flushed to sinks",
			ConstLabels: config.ConstLabels,
		}),

		rendersBlocked: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_blocked_total",
			Help:        "Total render passes whose sink guard was armed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates an interceptor that collects Prometheus metrics for
// every render pass.
//
// Metrics collected:
//   - viewstream_renders_total: Counter of passes by view and status
//   - viewstream_render_duration_seconds: Histogram of pass duration
//   - viewstream_render_errors_total: Counter of failures by view and error type
//   - viewstream_render_bytes_total: Counter of body bytes flushed to sinks
//   - viewstream_renders_blocked_total: Counter of passes whose guard was armed
//
// Example:
//
//	coord := render.New(
//	    render.WithInterceptors(
//	        middleware.Prometheus(middleware.WithNamespace("myapp")),
//	    ),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) render.Interceptor {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(ctx context.Context, info *render.Info, next func() error) error {
		view := info.View
		if view == "" {
			view = "(anonymous)"
		}

		start := time.Now()
		err := next()
		m.renderDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.renderErrors.WithLabelValues(view, categorizeError(err)).Inc()
		}
		m.rendersTotal.WithLabelValues(view, status).Inc()
		m.renderBytes.Add(float64(info.BytesWritten))
		if info.Blocked {
			m.rendersBlocked.Inc()
		}

		return err
	}
}

// categorizeError returns a category for the error type. Categories keep
// the error_type label low-cardinality.
func categorizeError(err error) string {
	var unknown *charset.UnknownEncodingError
	switch {
	case errors.As(err, &unknown):
		return "unknown_encoding"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "render"
	}
}
