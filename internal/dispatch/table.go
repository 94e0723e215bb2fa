package dispatch

import (
	"sort"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

// Handler implements one request type. Returning nil is a contract
// violation that the dispatcher reports as "no response given".
type Handler interface {
	Handle(req *model.Request) *model.Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req *model.Request) *model.Response

// Handle calls f(req).
func (f HandlerFunc) Handle(req *model.Request) *model.Response {
	return f(req)
}

// Table maps a case-sensitive request-type to its handler. It is built
// once and never modified afterwards.
type Table struct {
	handlers map[string]Handler
}

// NewTable copies handlers into an immutable table.
func NewTable(handlers map[string]Handler) Table {
	m := make(map[string]Handler, len(handlers))
	for k, h := range handlers {
		if h != nil {
			m[k] = h
		}
	}
	return Table{handlers: m}
}

// Lookup returns the handler registered for requestType.
func (t Table) Lookup(requestType string) (Handler, bool) {
	h, ok := t.handlers[requestType]
	return h, ok
}

// Types returns the registered request types in sorted order.
func (t Table) Types() []string {
	out := make([]string, 0, len(t.handlers))
	for k := range t.handlers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
