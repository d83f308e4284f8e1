package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/viewstream-dev/viewstream/pkg/render"
)

// Default tracer name for render tracing.
const defaultTracerName = "viewstream"

// OTelConfig configures the OpenTelemetry render interceptor.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "viewstream").
	TracerName string

	// Filter determines which render passes to trace.
	// Return true to trace the pass, false to skip.
	// If nil, all passes are traced.
	Filter func(info *render.Info) bool

	// AttributeExtractor extracts custom attributes for each traced pass.
	AttributeExtractor func(info *render.Info) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry render interceptor.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithRenderFilter sets a filter function for render passes.
func WithRenderFilter(filter func(info *render.Info) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(info *render.Info) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates an interceptor that traces every render pass.
//
// The interceptor:
//   - Creates a span per pass with view, content type, and encoding
//   - Records errors and sets span status
//   - Records flushed byte count and guard state as span attributes
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before serving:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) render.Interceptor {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return func(ctx context.Context, info *render.Info, next func() error) error {
		if config.Filter != nil && !config.Filter(info) {
			return next()
		}

		spanName := "viewstream.render"
		if info.View != "" {
			spanName = "viewstream.render " + info.View
		}

		attrs := []attribute.KeyValue{
			attribute.String("viewstream.view", info.View),
			attribute.String("viewstream.content_type", info.ContentType),
			attribute.String("viewstream.encoding", info.Encoding),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(info)...)
		}

		_, span := config.tracer.Start(
			ctx,
			spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(
			attribute.Int64("viewstream.bytes_written", info.BytesWritten),
			attribute.Bool("viewstream.blocked", info.Blocked),
		)

		return err
	}
}
