package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sKeLeTr0n/OBSRemote/internal/dispatch"
	"github.com/sKeLeTr0n/OBSRemote/internal/model"
	"github.com/sKeLeTr0n/OBSRemote/internal/queue"
)

// Session handles a single WebSocket connection. Only the write loop
// writes to conn.
type Session struct {
	id         string
	conn       *websocket.Conn
	dispatcher *dispatch.Dispatcher
	opts       Options
	logger     *slog.Logger

	responses *queue.Queue[*model.Response]
	updates   *queue.Queue[[]byte] // encoded notifications

	done      chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, d *dispatch.Dispatcher, opts Options, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:         id,
		conn:       conn,
		dispatcher: d,
		opts:       opts,
		logger:     logger.With("session", id),
		responses:  queue.New[*model.Response](8),
		updates:    queue.New[[]byte](16),
		done:       make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Notify queues an encoded notification for this session.
func (s *Session) Notify(frame []byte) {
	select {
	case <-s.done:
		return
	default:
	}
	s.updates.Push(frame)
}

// Run starts the write loop and blocks in the read loop until the
// connection drops.
func (s *Session) Run() {
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop()
	}()

	s.readLoop()
	s.Close()
	<-writerDone
}

// Close stops both loops and closes the socket. Safe to call repeatedly.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// closeGracefully sends a close frame before closing.
func (s *Session) closeGracefully() {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.opts.WriteTimeout))
	s.Close()
}

func (s *Session) readLoop() {
	s.conn.SetReadLimit(s.opts.ReadLimit)
	s.extendReadDeadline()
	s.conn.SetPongHandler(func(string) error {
		s.extendReadDeadline()
		return nil
	})

	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				s.logger.Warn("read error", "error", err)
			}
			return
		}
		s.extendReadDeadline()

		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		s.dispatcher.Dispatch(data, s.responses)
	}
}

func (s *Session) extendReadDeadline() {
	_ = s.conn.SetReadDeadline(time.Now().Add(2 * s.opts.PingInterval))
}

// writeLoop sends responses, then notifications, whenever either queue
// signals. Pings keep idle connections alive.
func (s *Session) writeLoop() {
	ping := time.NewTicker(s.opts.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-s.responses.Ready():
		case <-s.updates.Ready():
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.opts.WriteTimeout)); err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}
			continue
		}

		if err := s.flush(); err != nil {
			s.logger.Debug("write failed", "error", err)
			s.Close()
			return
		}
	}
}

func (s *Session) flush() error {
	for _, resp := range s.responses.Drain(0) {
		data, err := json.Marshal(resp)
		if err != nil {
			s.logger.Error("failed to encode response", "error", err)
			continue
		}
		if err := s.write(data); err != nil {
			return err
		}
	}
	for _, frame := range s.updates.Drain(0) {
		if err := s.write(frame); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) write(data []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
