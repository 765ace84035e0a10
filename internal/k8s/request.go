package k8s

import (
	"fmt"
	"net/url"
	"strings"
)

// Method is an HTTP verb accepted by the Kubernetes API.
type Method string

// Recognized request methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// Methods lists every recognized method.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch}

// Valid reports whether m is one of the recognized methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (m Method) String() string {
	return string(m)
}

// ParseMethod converts a case-insensitive verb to a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
	return m, nil
}

// QueryParam is one query string parameter. Order is kept as given.
type QueryParam struct {
	Name  string
	Value string
}

// ParseQueryParam splits a "name=value" pair. A pair without "=" has an
// empty value.
func ParseQueryParam(s string) (QueryParam, error) {
	name, value, _ := strings.Cut(s, "=")
	if name == "" {
		return QueryParam{}, fmt.Errorf("query entry %q has no name", s)
	}
	return QueryParam{Name: name, Value: value}, nil
}

// Request describes one API call. The zero value is not valid; Method must
// be set.
type Request struct {
	Method Method
	Path   string

	// Query parameters, encoded in order.
	Query []QueryParam

	// Body is sent as-is; nil sends an empty body.
	Body []byte

	// ContentType is sent as the Content-Type header when non-empty.
	ContentType string

	// ResponseSchema is the schema name the response body decodes into,
	// for example "io.k8s.api.core.v1.Pod". Empty decodes to a generic
	// JSON value.
	ResponseSchema string
}

// Validate checks the request for caller errors.
func (r Request) Validate() error {
	if !r.Method.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, string(r.Method))
	}
	return nil
}

// WithQuery returns a copy of r with an extra query parameter appended.
func (r Request) WithQuery(name, value string) Request {
	query := make([]QueryParam, 0, len(r.Query)+1)
	query = append(query, r.Query...)
	r.Query = append(query, QueryParam{Name: name, Value: value})
	return r
}

// encodeQuery encodes the query parameters in order. url.Values would sort
// them by key.
func (r Request) encodeQuery() string {
	if len(r.Query) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range r.Query {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// targetURL joins the server base URL, the request path and the query.
func (r Request) targetURL(base string) string {
	target := strings.TrimSuffix(base, "/") + r.Path
	if query := r.encodeQuery(); query != "" {
		separator := "?"
		if strings.Contains(r.Path, "?") {
			separator = "&"
		}
		target += separator + query
	}
	return target
}
