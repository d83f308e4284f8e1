package negotiate

import (
	"errors"
	"testing"

	"github.com/viewstream-dev/viewstream/pkg/charset"
	"github.com/viewstream-dev/viewstream/pkg/contenttype"
)

func TestNegotiateAbsent(t *testing.T) {
	header, enc, err := Negotiate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "text/html; charset=utf-8" {
		t.Errorf("got header %q, want %q", header, "text/html; charset=utf-8")
	}
	if enc.Name() != charset.UTF8.Name() {
		t.Errorf("got encoding %q, want utf-8", enc.Name())
	}
}

func TestNegotiateNoCharset(t *testing.T) {
	spec, err := contenttype.Parse("application/json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header, enc, err := Negotiate(&spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "application/json; charset=utf-8" {
		t.Errorf("got header %q", header)
	}
	if enc.Name() != "utf-8" {
		t.Errorf("got encoding %q, want utf-8", enc.Name())
	}
}

func TestNegotiateUTF16(t *testing.T) {
	spec, err := contenttype.Parse("text/plain; charset=utf-16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header, enc, err := Negotiate(&spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name() != "utf-16le" || !enc.LittleEndian() {
		t.Errorf("got encoding %q, want little-endian utf-16", enc.Name())
	}
	// The caller's charset spelling is preserved in the header.
	if header != "text/plain; charset=utf-16" {
		t.Errorf("got header %q, want caller charset preserved", header)
	}
}

func TestNegotiateUnknownCharset(t *testing.T) {
	spec, err := contenttype.Parse("text/plain; charset=bogus-enc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header, _, err := Negotiate(&spec)
	if err == nil {
		t.Fatal("expected error for unknown charset")
	}
	var unknown *charset.UnknownEncodingError
	if !errors.As(err, &unknown) || unknown.Name != "bogus-enc" {
		t.Errorf("expected UnknownEncodingError carrying the name, got %v", err)
	}
	if header != "" {
		t.Errorf("no header should be produced on failure, got %q", header)
	}
}

func TestNegotiateDoesNotMutateInput(t *testing.T) {
	spec, err := contenttype.Parse("application/xml; version=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := spec.String()

	header, _, err := Negotiate(&spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "application/xml; version=1; charset=utf-8" {
		t.Errorf("got header %q", header)
	}
	if spec.String() != before {
		t.Errorf("input spec mutated: was %q, now %q", before, spec.String())
	}
	if _, ok := spec.Charset(); ok {
		t.Error("input spec gained a charset parameter")
	}
}

func TestNegotiateSerializesSpecNotRawString(t *testing.T) {
	// Odd spacing and casing in the caller string must not leak into the header.
	spec, err := contenttype.Parse("Text/HTML ;  charset=UTF-8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	header, _, err := Negotiate(&spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if header != "text/html; charset=UTF-8" {
		t.Errorf("got header %q", header)
	}
}
