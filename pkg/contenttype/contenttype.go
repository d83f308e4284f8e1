// Package contenttype parses and serializes Content-Type header values.
//
// A Spec is an immutable parsed media type with its ordered parameter list.
// Adjustments such as setting a charset produce a new Spec; the original is
// never modified, so a Spec received from a caller can be shared freely.
package contenttype

import (
	"errors"
	"fmt"
	"strings"
)

// Common media types produced by view rendering.
const (
	TextHTML        = "text/html"
	TextPlain       = "text/plain"
	TextCSS         = "text/css"
	ApplicationJSON = "application/json"
	ApplicationXML  = "application/xml"
	OctetStream     = "application/octet-stream"
)

// CharsetParam is the parameter name carrying the text encoding.
const CharsetParam = "charset"

// ErrEmpty is returned when parsing an empty content type value.
var ErrEmpty = errors.New("contenttype: empty value")

// Param is a single media type parameter.
type Param struct {
	Name  string
	Value string
}

// Spec is a parsed content type: a media type plus an ordered parameter list.
// The zero value is not a valid Spec; use New or Parse.
type Spec struct {
	mediaType string
	params    []Param
}

// New returns a Spec for the given media type with no parameters.
func New(mediaType string) Spec {
	return Spec{mediaType: strings.ToLower(strings.TrimSpace(mediaType))}
}

// Parse parses a Content-Type header value such as
// "text/html; charset=utf-8" into a Spec. Parameter names are lowercased;
// parameter values keep their case with surrounding quotes removed.
func Parse(value string) (Spec, error) {
	segments := strings.Split(value, ";")
	mediaType := strings.ToLower(strings.TrimSpace(segments[0]))
	if mediaType == "" {
		return Spec{}, ErrEmpty
	}

	spec := Spec{mediaType: mediaType}
	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		name, val, ok := strings.Cut(seg, "=")
		if !ok {
			return Spec{}, fmt.Errorf("contenttype: malformed parameter %q in %q", seg, value)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return Spec{}, fmt.Errorf("contenttype: empty parameter name in %q", value)
		}
		spec.params = append(spec.params, Param{Name: name, Value: unquote(strings.TrimSpace(val))})
	}
	return spec, nil
}

// MediaType returns the media type without parameters, e.g. "text/html".
func (s Spec) MediaType() string { return s.mediaType }

// Params returns a copy of the ordered parameter list.
func (s Spec) Params() []Param {
	if len(s.params) == 0 {
		return nil
	}
	out := make([]Param, len(s.params))
	copy(out, s.params)
	return out
}

// Param returns the value of the named parameter, if present.
func (s Spec) Param(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, p := range s.params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Charset returns the charset parameter value, if present.
func (s Spec) Charset() (string, bool) {
	return s.Param(CharsetParam)
}

// WithCharset returns a new Spec with the charset parameter set to name.
// An existing charset parameter is replaced in place; otherwise the
// parameter is appended. The receiver is left untouched.
func (s Spec) WithCharset(name string) Spec {
	return s.WithParam(CharsetParam, name)
}

// WithParam returns a new Spec with the named parameter set to value,
// replacing an existing parameter of the same name or appending a new one.
func (s Spec) WithParam(name, value string) Spec {
	name = strings.ToLower(name)
	params := make([]Param, len(s.params), len(s.params)+1)
	copy(params, s.params)

	replaced := false
	for i := range params {
		if params[i].Name == name {
			params[i].Value = value
			replaced = true
			break
		}
	}
	if !replaced {
		params = append(params, Param{Name: name, Value: value})
	}
	return Spec{mediaType: s.mediaType, params: params}
}

// String serializes the Spec as a Content-Type header value: the media type
// followed by every parameter in order. Parameter values containing token
// separators are quoted.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.mediaType)
	for _, p := range s.params {
		b.WriteString("; ")
		b.WriteString(p.Name)
		b.WriteByte('=')
		if needsQuoting(p.Value) {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(p.Value, `"`, `\"`))
			b.WriteByte('"')
		} else {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

// unquote strips one layer of surrounding double quotes and unescapes
// embedded quotes.
func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
		v = strings.ReplaceAll(v, `\"`, `"`)
	}
	return v
}

// needsQuoting reports whether a parameter value must be quoted when
// serialized. Token characters per RFC 7230 pass through bare.
func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0:
		default:
			return true
		}
	}
	return false
}
