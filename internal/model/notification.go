package model

import "github.com/goccy/go-json"

// Notification is an unsolicited state-change update. It carries no
// correlation id and is not modified after construction.
type Notification struct {
	Type   string
	Fields map[string]any
}

// NewNotification builds a notification of the given update-type.
func NewNotification(updateType string, fields map[string]any) Notification {
	return Notification{Type: updateType, Fields: fields}
}

// MarshalJSON flattens the notification into a single object.
func (n Notification) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Fields)+1)
	for k, v := range n.Fields {
		out[k] = v
	}
	out[KeyUpdateType] = n.Type
	return json.Marshal(out)
}

