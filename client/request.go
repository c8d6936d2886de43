package client

import (
	"net/http"
	"net/url"
)

// Request describes one logical call. It is immutable once dispatched: the
// dispatcher reads it, never writes it, so the same descriptor can be
// re-issued verbatim on the refresh-retry and upgrade paths.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte

	// Stream requests a live byte-stream handle instead of a buffered
	// response; no status inspection or retry applies.
	Stream bool
	// NoAuth suppresses attaching any credential to the outbound request.
	NoAuth bool
	// JSON sets JSON content negotiation headers.
	JSON bool
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// encodedQuery serializes query parameters in repeat-key style (a=1&a=2);
// array values are never index-suffixed.
func (r *Request) encodedQuery() string {
	return r.Query.Encode()
}
