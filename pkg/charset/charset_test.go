package charset

import (
	"bytes"
	"errors"
	"testing"
)

func TestLookupUTF8(t *testing.T) {
	for _, name := range []string{"utf-8", "UTF-8", "Utf-8"} {
		enc, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): unexpected error: %v", name, err)
		}
		if enc.Name() != "utf-8" {
			t.Errorf("Lookup(%q): got name %q, want utf-8", name, enc.Name())
		}
		if enc.LittleEndian() {
			t.Errorf("Lookup(%q): utf-8 should not report little endian", name)
		}
	}
}

func TestLookupUTF16(t *testing.T) {
	for _, name := range []string{"utf-16", "UTF-16", "utf-16le", "UTF-16LE"} {
		enc, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): unexpected error: %v", name, err)
		}
		if enc.Name() != "utf-16le" {
			t.Errorf("Lookup(%q): got name %q, want utf-16le", name, enc.Name())
		}
		if !enc.LittleEndian() {
			t.Errorf("Lookup(%q): should be little endian", name)
		}
	}
}

func TestLookupIndexFallback(t *testing.T) {
	enc, err := Lookup("iso-8859-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.IsZero() {
		t.Fatal("resolved encoding should not be zero")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("bogus-enc")
	if err == nil {
		t.Fatal("expected error for unknown encoding")
	}
	var unknown *UnknownEncodingError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownEncodingError, got %T", err)
	}
	if unknown.Name != "bogus-enc" {
		t.Errorf("error should carry the offending name, got %q", unknown.Name)
	}
}

func TestUTF8EncodesWithoutPreamble(t *testing.T) {
	out, err := UTF8.NewEncoder().Bytes([]byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, []byte("hello")) {
		t.Errorf("got % x, want plain ascii bytes", out)
	}
}

func TestUTF16LEEncodesWithoutPreamble(t *testing.T) {
	out, err := UTF16LE.NewEncoder().Bytes([]byte("hi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{'h', 0x00, 'i', 0x00}
	if !bytes.Equal(out, want) {
		t.Errorf("got % x, want % x", out, want)
	}
}

func TestRoundTripASCII(t *testing.T) {
	const text = "The quick brown fox jumps over the lazy dog 0123456789"
	for _, name := range []string{"utf-8", "utf-16", "iso-8859-1", "windows-1252"} {
		enc, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): unexpected error: %v", name, err)
		}
		encoded, err := enc.NewEncoder().Bytes([]byte(text))
		if err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		decoded, err := enc.NewDecoder().Bytes(encoded)
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if string(decoded) != text {
			t.Errorf("%s: round trip changed text: got %q", name, decoded)
		}
	}
}
