// Package config loads the viewstream.toml configuration used by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/viewstream-dev/viewstream/pkg/contenttype"
)

const (
	// FileName is the default configuration file name.
	FileName = "viewstream.toml"

	// DefaultListen is the default serve address.
	DefaultListen = "localhost:3000"

	// DefaultContentType is the content type hint applied when a route
	// declares none.
	DefaultContentType = ""

	// DefaultBufferSize is the render buffer size in bytes.
	DefaultBufferSize = 1024

	// DefaultMetricsPath is where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"
)

// ErrNoBucket is returned by Validate when export is configured without a
// bucket name.
var ErrNoBucket = errors.New("config: export requires a bucket")

// Config is the viewstream.toml schema.
type Config struct {
	// Listen is the address the serve command binds to.
	Listen string `toml:"listen"`

	// DefaultContentType is an optional content type hint for routes
	// without one, e.g. "text/html; charset=utf-8".
	DefaultContentType string `toml:"default_content_type"`

	// BufferSize is the render buffer size in bytes.
	BufferSize int `toml:"buffer_size"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `toml:"metrics"`

	// Tracing configures OpenTelemetry render tracing.
	Tracing TracingConfig `toml:"tracing"`

	// Export configures the export command.
	Export ExportConfig `toml:"export"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled exposes render metrics when true.
	Enabled bool `toml:"enabled"`

	// Path is the metrics endpoint path (default "/metrics").
	Path string `toml:"path"`
}

// TracingConfig configures OpenTelemetry render tracing.
type TracingConfig struct {
	// Enabled wraps renders in spans when true.
	Enabled bool `toml:"enabled"`

	// TracerName overrides the default tracer name.
	TracerName string `toml:"tracer_name"`
}

// ExportConfig configures static export to S3.
type ExportConfig struct {
	// Bucket is the destination S3 bucket.
	Bucket string `toml:"bucket"`

	// Prefix is the object key prefix, e.g. "public/".
	Prefix string `toml:"prefix"`

	// Region is the bucket's AWS region.
	Region string `toml:"region"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:             DefaultListen,
		DefaultContentType: DefaultContentType,
		BufferSize:         DefaultBufferSize,
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}

// Load reads the configuration from path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values without touching the filesystem.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("config: listen must not be empty")
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("config: buffer_size must be positive, got %d", c.BufferSize)
	}
	if c.DefaultContentType != "" {
		if _, err := contenttype.Parse(c.DefaultContentType); err != nil {
			return fmt.Errorf("config: default_content_type: %w", err)
		}
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return errors.New("config: metrics.path must not be empty when metrics are enabled")
	}
	return nil
}

// ValidateExport checks the fields the export command requires.
func (c *Config) ValidateExport() error {
	if c.Export.Bucket == "" {
		return ErrNoBucket
	}
	if c.Export.Region == "" {
		return errors.New("config: export requires a region")
	}
	return nil
}
