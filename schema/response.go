package schema

import "encoding/json"

// Response is the buffered outcome of a plain HTTP exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports whether the status code falls in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Status decodes the body as a status document, or nil when it is not one.
func (r *Response) Status() *Status {
	return ParseStatus(r.Body)
}

// Unmarshal decodes the JSON body into target.
func (r *Response) Unmarshal(target interface{}) error {
	return json.Unmarshal(r.Body, target)
}
