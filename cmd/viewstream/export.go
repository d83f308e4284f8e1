package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/viewstream-dev/viewstream/internal/config"
	"github.com/viewstream-dev/viewstream/pkg/export"
	"github.com/viewstream-dev/viewstream/pkg/render"
)

func exportCmd() *cobra.Command {
	var configPath string
	var bucket string
	var region string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the demo views to S3",
		Long: `Render the demo views to static objects and upload them to the
configured S3 bucket. Credentials come from the standard AWS
environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Export.Bucket = bucket
			}
			if region != "" {
				cfg.Export.Region = region
			}
			if err := cfg.ValidateExport(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			client := s3.New(s3.Options{
				Region:      cfg.Export.Region,
				Credentials: envCredentials(),
			})

			pub := export.NewPublisher(client, cfg.Export.Bucket,
				export.WithPrefix(cfg.Export.Prefix),
				export.WithLogger(logger),
				export.WithCoordinator(render.New(
					render.WithBufferSize(cfg.BufferSize),
					render.WithLogger(logger),
				)),
			)

			pages := exportPages()
			if err := pub.PublishAll(cmd.Context(), pages); err != nil {
				return err
			}
			success("exported %d pages to s3://%s/%s", len(pages), cfg.Export.Bucket, cfg.Export.Prefix)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.FileName, "Path to the configuration file")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Override the configured bucket")
	cmd.Flags().StringVar(&region, "region", "", "Override the configured region")

	return cmd
}

// envCredentials resolves static credentials from the standard AWS
// environment variables.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		id := os.Getenv("AWS_ACCESS_KEY_ID")
		secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "viewstream-env",
		}, nil
	})
}
