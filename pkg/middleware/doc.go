// Package middleware provides render interceptors for observability.
//
// Two interceptors are included:
//
//   - Prometheus: counters and histograms for render throughput, duration,
//     failures, blocked passes, and bytes written.
//   - OpenTelemetry: a span per render pass carrying the negotiated content
//     type, encoding, and outcome.
//
// Both wrap the streaming stage of a render pass and never alter its
// outcome; render errors pass through unchanged.
package middleware
