package model

import "github.com/goccy/go-json"

// Status is the outcome carried by a response envelope.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Response is the correlated result of handling one request.
// Error is set if and only if Status is StatusError.
type Response struct {
	Status    Status
	MessageID *string
	Error     string
	Fields    map[string]any
}

// MakeOk returns a success envelope. id is attached only when it is a
// non-empty string.
func MakeOk(id Value) *Response {
	r := &Response{Status: StatusOK}
	r.attach(id)
	return r
}

// MakeError returns an error envelope with the given message. id follows
// the same rule as in MakeOk.
func MakeError(message string, id Value) *Response {
	r := &Response{Status: StatusError, Error: message}
	r.attach(id)
	return r
}

func (r *Response) attach(id Value) {
	if s, ok := id.Str(); ok && s != "" {
		r.MessageID = &s
	}
}

// Correlate echoes id on the response when it is a string.
func (r *Response) Correlate(id Value) *Response {
	if s, ok := id.Str(); ok {
		r.MessageID = &s
	}
	return r
}

// With sets a handler-specific field. Envelope keys cannot be overridden.
func (r *Response) With(key string, value any) *Response {
	if r.Fields == nil {
		r.Fields = make(map[string]any)
	}
	r.Fields[key] = value
	return r
}

// OK reports whether the envelope is a success.
func (r *Response) OK() bool {
	return r.Status == StatusOK
}

// MarshalJSON flattens the envelope into a single object.
func (r *Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		out[k] = v
	}
	out[KeyStatus] = r.Status
	delete(out, KeyError)
	delete(out, KeyMessageID)
	if r.Status == StatusError {
		out[KeyError] = r.Error
	}
	if r.MessageID != nil {
		out[KeyMessageID] = *r.MessageID
	}
	return json.Marshal(out)
}
