package export

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/viewstream-dev/viewstream/pkg/contenttype"
)

// fakeS3 records PutObject calls in memory.
type fakeS3 struct {
	puts []putCall
	err  error
}

type putCall struct {
	bucket      string
	key         string
	contentType string
	body        []byte
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, putCall{
		bucket:      *params.Bucket,
		key:         *params.Key,
		contentType: *params.ContentType,
		body:        body,
	})
	return &s3.PutObjectOutput{}, nil
}

func TestPublishUploadsRenderedPage(t *testing.T) {
	client := &fakeS3{}
	pub := NewPublisher(client, "my-site", WithPrefix("public/"))

	err := pub.Publish(context.Background(), Page{
		Key: "index.html",
		View: func(w *bufio.Writer) error {
			_, err := w.WriteString("<h1>home</h1>")
			return err
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(client.puts) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(client.puts))
	}
	put := client.puts[0]
	if put.bucket != "my-site" || put.key != "public/index.html" {
		t.Errorf("got bucket=%q key=%q", put.bucket, put.key)
	}
	if put.contentType != "text/html; charset=utf-8" {
		t.Errorf("got content type %q", put.contentType)
	}
	if string(put.body) != "<h1>home</h1>" {
		t.Errorf("got body %q", put.body)
	}
}

func TestPublishContentTypeHint(t *testing.T) {
	client := &fakeS3{}
	pub := NewPublisher(client, "my-site")

	spec, err := contenttype.Parse("application/json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = pub.Publish(context.Background(), Page{
		Key:         "data.json",
		ContentType: &spec,
		View: func(w *bufio.Writer) error {
			_, err := w.WriteString(`{"ok":true}`)
			return err
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.puts[0].contentType != "application/json; charset=utf-8" {
		t.Errorf("got content type %q", client.puts[0].contentType)
	}
}

func TestPublishFailedRenderUploadsNothing(t *testing.T) {
	client := &fakeS3{}
	pub := NewPublisher(client, "my-site")
	boom := errors.New("view exploded")

	err := pub.Publish(context.Background(), Page{
		Key: "broken.html",
		View: func(w *bufio.Writer) error {
			w.WriteString("partial")
			return boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("render error should be returned unchanged, got %v", err)
	}
	if len(client.puts) != 0 {
		t.Fatalf("failed render must upload nothing, got %d uploads", len(client.puts))
	}
}

func TestPublishAllStopsAtFirstFailure(t *testing.T) {
	client := &fakeS3{}
	pub := NewPublisher(client, "my-site")
	boom := errors.New("view exploded")

	ok := func(w *bufio.Writer) error {
		_, err := w.WriteString("fine")
		return err
	}
	bad := func(w *bufio.Writer) error { return boom }

	err := pub.PublishAll(context.Background(), []Page{
		{Key: "a.html", View: ok},
		{Key: "b.html", View: bad},
		{Key: "c.html", View: ok},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if len(client.puts) != 1 || client.puts[0].key != "a.html" {
		t.Fatalf("expected only a.html uploaded, got %+v", client.puts)
	}
}

func TestPublishUploadFailureWrapped(t *testing.T) {
	boom := errors.New("s3 down")
	client := &fakeS3{err: boom}
	pub := NewPublisher(client, "my-site")

	err := pub.Publish(context.Background(), Page{
		Key: "index.html",
		View: func(w *bufio.Writer) error {
			_, err := w.WriteString("content")
			return err
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("upload error should be wrapped, got %v", err)
	}
}
