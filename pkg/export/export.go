// Package export renders views to static objects in S3.
//
// Each page is rendered through the coordinator into an in-memory sink and
// uploaded with the negotiated content type. A failed render uploads
// nothing: the sink guard keeps partial output out of the staging buffer's
// flush path, and the publisher only uploads after a fully successful pass.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/viewstream-dev/viewstream/pkg/contenttype"
	"github.com/viewstream-dev/viewstream/pkg/render"
	"github.com/viewstream-dev/viewstream/pkg/stream"
)

// S3API is the subset of the S3 client the publisher uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Page is one exportable view.
type Page struct {
	// Key is the object key relative to the publisher prefix, e.g.
	// "index.html".
	Key string

	// ContentType is the optional content type hint; nil negotiates the
	// default "text/html; charset=utf-8".
	ContentType *contenttype.Spec

	// View produces the page body.
	View render.RenderFunc
}

// Publisher renders pages and uploads them to an S3 bucket.
//
// Example:
//
//	client := s3.NewFromConfig(cfg)
//	pub := export.NewPublisher(client, "my-site", export.WithPrefix("public/"))
//	err := pub.PublishAll(ctx, pages)
type Publisher struct {
	client S3API
	bucket string
	prefix string
	coord  *render.Coordinator
	logger *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPrefix sets the object key prefix, e.g. "public/".
func WithPrefix(prefix string) PublisherOption {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithCoordinator sets the render coordinator used for page bodies.
func WithCoordinator(coord *render.Coordinator) PublisherOption {
	return func(p *Publisher) {
		if coord != nil {
			p.coord = coord
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a Publisher uploading to the given bucket.
func NewPublisher(client S3API, bucket string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client: client,
		bucket: bucket,
		coord:  render.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish renders one page and uploads it. Nothing is uploaded when the
// render fails; the render error is returned unchanged.
func (p *Publisher) Publish(ctx context.Context, page Page) error {
	sink := stream.NewBufferSink()
	resp := render.NewSinkResponse(sink)

	info, err := p.coord.RenderView(ctx, page.Key, resp, page.ContentType, page.View)
	if err != nil {
		return err
	}

	key := p.prefix + page.Key
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(sink.Bytes()),
		ContentType: aws.String(info.ContentType),
	})
	if err != nil {
		return fmt.Errorf("export: put %s: %w", key, err)
	}

	p.logger.Info("page exported",
		slog.String("key", key),
		slog.String("content_type", info.ContentType),
		slog.Int("bytes", sink.Len()))
	return nil
}

// PublishAll publishes pages in order, stopping at the first failure.
// There is no retry; a failed page leaves earlier uploads in place.
func (p *Publisher) PublishAll(ctx context.Context, pages []Page) error {
	for _, page := range pages {
		if err := p.Publish(ctx, page); err != nil {
			return err
		}
	}
	return nil
}
