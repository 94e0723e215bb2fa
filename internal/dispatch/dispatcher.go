package dispatch

import (
	"log/slog"
	"sync/atomic"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

// Error messages returned by the dispatcher itself.
const (
	MsgTypeNotSpecified  = "message type not specified"
	MsgTypeNotRecognized = "message type not recognized"
	MsgNoResponse        = "no response given"
)

// Outbox receives the envelopes produced by Dispatch.
type Outbox interface {
	Push(resp *model.Response)
}

// Stats contains dispatcher counters.
type Stats struct {
	Received     int64 `json:"received"`
	DecodeErrors int64 `json:"decode_errors"`
	Unknown      int64 `json:"unknown"`
	Responses    int64 `json:"responses"`
	Errors       int64 `json:"errors"`
}

// Dispatcher routes decoded requests to handlers. It is safe for
// concurrent use; each connection calls Dispatch from its read loop.
type Dispatcher struct {
	table  Table
	logger *slog.Logger

	received     atomic.Int64
	decodeErrors atomic.Int64
	unknown      atomic.Int64
	responses    atomic.Int64
	errors       atomic.Int64
}

// New creates a dispatcher over table.
func New(table Table, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		table:  table,
		logger: logger.With("component", "dispatch"),
	}
}

// Dispatch handles one inbound frame. It reports whether the frame was
// decoded; when it returns false nothing was pushed to out.
func (d *Dispatcher) Dispatch(raw []byte, out Outbox) bool {
	d.received.Add(1)

	req, err := model.ParseRequest(raw)
	if err != nil {
		d.decodeErrors.Add(1)
		d.logger.Debug("dropping undecodable message", "error", err, "bytes", len(raw))
		return false
	}

	d.push(out, d.route(req))
	return true
}

// route resolves req to an envelope. It never returns nil.
func (d *Dispatcher) route(req *model.Request) *model.Response {
	id := req.MessageID()

	requestType, ok := req.Type()
	if !ok {
		d.logger.Debug("request type not specified", "kind", req.Field(model.KeyRequestType).Kind().String())
		return model.MakeError(MsgTypeNotSpecified, id).Correlate(id)
	}

	h, ok := d.table.Lookup(requestType)
	if !ok {
		d.unknown.Add(1)
		d.logger.Debug("unknown request type", "request_type", requestType)
		return model.MakeError(MsgTypeNotRecognized, id).Correlate(id)
	}

	resp := d.invoke(requestType, h, req)
	if resp == nil {
		return model.MakeError(MsgNoResponse, id).Correlate(id)
	}
	return resp.Correlate(id)
}

// invoke calls the handler, converting a panic into a missing response.
func (d *Dispatcher) invoke(requestType string, h Handler, req *model.Request) (resp *model.Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked", "request_type", requestType, "panic", r)
			resp = nil
		}
	}()
	return h.Handle(req)
}

func (d *Dispatcher) push(out Outbox, resp *model.Response) {
	d.responses.Add(1)
	if !resp.OK() {
		d.errors.Add(1)
	}
	out.Push(resp)
}

// Stats returns the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Received:     d.received.Load(),
		DecodeErrors: d.decodeErrors.Load(),
		Unknown:      d.unknown.Load(),
		Responses:    d.responses.Load(),
		Errors:       d.errors.Load(),
	}
}
