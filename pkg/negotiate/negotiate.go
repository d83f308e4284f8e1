// Package negotiate derives the final Content-Type header value and body
// encoding from an optional caller-supplied content type hint.
//
// Negotiation is a pure computation: it touches no response state and writes
// no bytes, so it can run (and fail) before anything is committed to the wire.
package negotiate

import (
	"github.com/viewstream-dev/viewstream/pkg/charset"
	"github.com/viewstream-dev/viewstream/pkg/contenttype"
)

// DefaultMediaType is used when the caller supplies no content type hint.
const DefaultMediaType = contenttype.TextHTML

// Negotiate maps an optional requested content type to the header value to
// commit and the encoding to write the body with.
//
// Precedence:
//   - nil request: "text/html; charset=utf-8" and UTF-8.
//   - request without a charset parameter: the requested media type and
//     parameters plus charset=utf-8, and UTF-8. The argument is not modified.
//   - request with a charset parameter: UTF-8 and UTF-16 are matched
//     case-insensitively by name, anything else goes through the general
//     encoding lookup. Unresolvable names fail with
//     *charset.UnknownEncodingError and no header value is produced.
//
// The header value is always the full serialization of the negotiated spec,
// never the raw caller string.
func Negotiate(requested *contenttype.Spec) (string, charset.Encoding, error) {
	if requested == nil {
		spec := contenttype.New(DefaultMediaType).WithCharset(charset.UTF8.Name())
		return spec.String(), charset.UTF8, nil
	}

	name, ok := requested.Charset()
	if !ok {
		spec := requested.WithCharset(charset.UTF8.Name())
		return spec.String(), charset.UTF8, nil
	}

	enc, err := charset.Lookup(name)
	if err != nil {
		return "", charset.Encoding{}, err
	}
	return requested.String(), enc, nil
}
