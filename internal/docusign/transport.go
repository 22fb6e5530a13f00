package docusign

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Transport is what the envelope and callback services need from the remote API.
// Non-2xx responses are returned as a Response, not an error; errors mean the request
// could not be completed at all.
type Transport interface {
	PostJSON(ctx context.Context, path string, body []byte, headers http.Header) (*Response, error)
	PostMultipart(ctx context.Context, path string, body []byte, headers http.Header) (*Response, error)
	Get(ctx context.Context, path string) (*Response, error)
	Put(ctx context.Context, path string, body []byte, headers http.Header) (*Response, error)
}

// Response is a completed API call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	fields map[string]json.RawMessage
}

// NewResponse wraps a status code and raw body.
func NewResponse(status int, body []byte) *Response {
	return &Response{StatusCode: status, Header: http.Header{}, Body: body}
}

// Success reports a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Field returns a top-level field of a JSON object body as a string. Strings are unquoted,
// other values are returned in their JSON form, and missing fields or non-object bodies
// yield "".
func (r *Response) Field(name string) string {
	if r.fields == nil {
		r.fields = map[string]json.RawMessage{}
		_ = json.Unmarshal(r.Body, &r.fields)
	}
	raw, ok := r.fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	v := strings.TrimSpace(string(raw))
	if v == "null" {
		return ""
	}
	return v
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}
