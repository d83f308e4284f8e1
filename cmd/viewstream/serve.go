package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/viewstream-dev/viewstream"
	"github.com/viewstream-dev/viewstream/internal/config"
	"github.com/viewstream-dev/viewstream/pkg/middleware"
	"github.com/viewstream-dev/viewstream/pkg/render"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Start an HTTP server streaming the demo views through the render
pipeline, with Prometheus metrics and optional OpenTelemetry tracing
per the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			var interceptors []render.Interceptor
			if cfg.Metrics.Enabled {
				interceptors = append(interceptors, middleware.Prometheus())
			}
			if cfg.Tracing.Enabled {
				var opts []middleware.OTelOption
				if cfg.Tracing.TracerName != "" {
					opts = append(opts, middleware.WithTracerName(cfg.Tracing.TracerName))
				}
				interceptors = append(interceptors, middleware.OpenTelemetry(opts...))
			}

			coord := render.New(
				render.WithBufferSize(cfg.BufferSize),
				render.WithLogger(logger),
				render.WithInterceptors(interceptors...),
			)

			serverOpts := []viewstream.ServerOption{
				viewstream.WithCoordinator(coord),
				viewstream.WithLogger(logger),
			}
			if cfg.DefaultContentType != "" {
				serverOpts = append(serverOpts, viewstream.WithDefaultContentType(cfg.DefaultContentType))
			}

			srv := viewstream.NewServer(serverOpts...)
			srv.Handle("/", homeView, viewstream.WithViewName("home"))
			srv.Handle("/status", statusView,
				viewstream.WithViewName("status"),
				viewstream.WithContentType("application/json"))
			if cfg.Metrics.Enabled {
				srv.HandleMetrics(cfg.Metrics.Path)
			}

			success("serving on http://%s", cfg.Listen)
			if cfg.Metrics.Enabled {
				info("metrics at %s", cfg.Metrics.Path)
			}
			return http.ListenAndServe(cfg.Listen, srv)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.FileName, "Path to the configuration file")

	return cmd
}
