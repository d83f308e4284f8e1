package contenttype

import (
	"errors"
	"testing"
)

func TestParseBare(t *testing.T) {
	spec, err := Parse("text/html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.MediaType() != "text/html" {
		t.Errorf("got media type %q, want %q", spec.MediaType(), "text/html")
	}
	if len(spec.Params()) != 0 {
		t.Errorf("expected no params, got %v", spec.Params())
	}
}

func TestParseWithCharset(t *testing.T) {
	spec, err := Parse("Text/Plain; Charset=UTF-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.MediaType() != "text/plain" {
		t.Errorf("media type should be lowercased, got %q", spec.MediaType())
	}
	cs, ok := spec.Charset()
	if !ok {
		t.Fatal("charset parameter should be present")
	}
	if cs != "UTF-16" {
		t.Errorf("charset value should keep its case, got %q", cs)
	}
}

func TestParsePreservesParamOrder(t *testing.T) {
	spec, err := Parse("multipart/form-data; boundary=xyz; charset=utf-8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	params := spec.Params()
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if params[0].Name != "boundary" || params[1].Name != "charset" {
		t.Errorf("param order not preserved: %v", params)
	}
}

func TestParseQuotedValue(t *testing.T) {
	spec, err := Parse(`multipart/form-data; boundary="with space"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := spec.Param("boundary")
	if v != "with space" {
		t.Errorf("got %q, want %q", v, "with space")
	}
	if spec.String() != `multipart/form-data; boundary="with space"` {
		t.Errorf("quoting lost on serialize: %q", spec.String())
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty value should return ErrEmpty, got %v", err)
	}
	if _, err := Parse("   ; charset=utf-8"); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank media type should return ErrEmpty, got %v", err)
	}
	if _, err := Parse("text/html; charset"); err == nil {
		t.Error("parameter without value should fail")
	}
}

func TestWithCharsetAppends(t *testing.T) {
	spec := New("application/json")
	out := spec.WithCharset("utf-8")
	if out.String() != "application/json; charset=utf-8" {
		t.Errorf("got %q", out.String())
	}
}

func TestWithCharsetReplacesInPlace(t *testing.T) {
	spec, err := Parse("text/plain; charset=ascii; format=flowed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := spec.WithCharset("utf-8")
	if out.String() != "text/plain; charset=utf-8; format=flowed" {
		t.Errorf("charset should be replaced in position, got %q", out.String())
	}
}

func TestWithCharsetDoesNotMutateReceiver(t *testing.T) {
	spec, err := Parse("text/plain; charset=ascii")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := spec.String()

	_ = spec.WithCharset("utf-16")

	if spec.String() != before {
		t.Errorf("receiver mutated: was %q, now %q", before, spec.String())
	}
	cs, _ := spec.Charset()
	if cs != "ascii" {
		t.Errorf("original charset changed to %q", cs)
	}
}

func TestStringRoundTrip(t *testing.T) {
	in := "text/html; charset=utf-8; version=5"
	spec, err := Parse(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.String() != in {
		t.Errorf("round trip changed value: got %q, want %q", spec.String(), in)
	}
}
