// Package charset resolves charset names from content type parameters into
// concrete text encodings.
//
// Two encodings are privileged and matched by name before any table lookup:
// UTF-8 and little-endian UTF-16, both without a byte order mark. Every other
// name goes through the WHATWG encoding index. Response bodies written through
// these encodings therefore never start with a preamble.
package charset

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies a text encoding by canonical name and byte order.
// The zero value is invalid; obtain instances from the package variables
// or Lookup.
type Encoding struct {
	name         string
	littleEndian bool
	impl         encoding.Encoding
}

// Privileged encodings, resolved without consulting the encoding index.
var (
	// UTF8 is UTF-8 without a byte order mark.
	UTF8 = Encoding{name: "utf-8", impl: unicode.UTF8}

	// UTF16LE is little-endian UTF-16 without a byte order mark.
	UTF16LE = Encoding{
		name:         "utf-16le",
		littleEndian: true,
		impl:         unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	}
)

// Name returns the canonical encoding name, e.g. "utf-8".
func (e Encoding) Name() string { return e.name }

// LittleEndian reports whether the encoding is explicitly little-endian.
func (e Encoding) LittleEndian() bool { return e.littleEndian }

// EmitsBOM reports whether encoded output starts with a byte order mark.
// Both privileged encodings and all index-resolved encodings used here
// encode without one.
func (e Encoding) EmitsBOM() bool { return false }

// IsZero reports whether e is the invalid zero value.
func (e Encoding) IsZero() bool { return e.impl == nil }

// NewEncoder returns a transformer from UTF-8 text to encoded bytes.
func (e Encoding) NewEncoder() *encoding.Encoder { return e.impl.NewEncoder() }

// NewDecoder returns a transformer from encoded bytes to UTF-8 text.
func (e Encoding) NewDecoder() *encoding.Decoder { return e.impl.NewDecoder() }

// UnknownEncodingError is returned by Lookup when a charset name cannot be
// resolved to any known encoding.
type UnknownEncodingError struct {
	Name string
}

func (e *UnknownEncodingError) Error() string {
	return fmt.Sprintf("charset: unknown encoding %q", e.Name)
}

// Lookup resolves a charset name to an Encoding. Names matching the
// privileged UTF-8 and UTF-16 encodings are handled case-insensitively
// before falling back to the WHATWG index. Unresolvable names yield an
// *UnknownEncodingError.
func Lookup(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8":
		return UTF8, nil
	case "utf-16", "utf-16le":
		return UTF16LE, nil
	}

	impl, err := htmlindex.Get(name)
	if err != nil {
		return Encoding{}, &UnknownEncodingError{Name: name}
	}

	canonical, err := htmlindex.Name(impl)
	if err != nil {
		canonical = strings.ToLower(name)
	}
	return Encoding{name: canonical, impl: impl}, nil
}
