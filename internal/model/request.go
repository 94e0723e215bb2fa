package model

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrDecode is returned when an inbound frame is not JSON.
var ErrDecode = errors.New("malformed message")

// Request is one decoded inbound command.
type Request struct {
	fields map[string]any
}

// ParseRequest decodes the first JSON value in raw. Bytes after that value
// are ignored. A value that is valid JSON but not an object yields a
// Request with no fields, so it fails shape validation rather than decoding.
func ParseRequest(raw []byte) (*Request, error) {
	var v any
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	m, _ := v.(map[string]any)
	return &Request{fields: m}, nil
}

// NewRequest builds a Request from already-decoded fields.
func NewRequest(fields map[string]any) *Request {
	return &Request{fields: fields}
}

// Field returns the named field, or a missing Value.
func (r *Request) Field(name string) Value {
	if r == nil || r.fields == nil {
		return Missing()
	}
	v, ok := r.fields[name]
	if !ok {
		return Missing()
	}
	return ValueOf(v)
}

// Type returns the request-type tag if it is a string.
func (r *Request) Type() (string, bool) {
	return r.Field(KeyRequestType).Str()
}

// MessageID returns the raw correlation id field.
func (r *Request) MessageID() Value {
	return r.Field(KeyMessageID)
}
