// Package ws serves the remote-control protocol over WebSocket.
//
// Each connection is a Session: a read loop that hands frames to the
// dispatcher and a write loop that owns every write to the socket. The
// Hub drains the shared update queue and fans notifications out to every
// session.
package ws

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/sKeLeTr0n/OBSRemote/internal/dispatch"
	"github.com/sKeLeTr0n/OBSRemote/internal/updates"
)

// Options configures the server.
type Options struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
	AllowedOrigins  []string // empty allows every origin

	PingInterval  time.Duration
	WriteTimeout  time.Duration
	ReadLimit     int64
	FlushInterval time.Duration // hub drain cadence when no signal arrives

	ShutdownTimeout time.Duration
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Addr:            ":4444",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		PingInterval:    30 * time.Second,
		WriteTimeout:    5 * time.Second,
		ReadLimit:       64 << 10,
		FlushInterval:   50 * time.Millisecond,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server manages WebSocket connections.
type Server struct {
	opts       Options
	dispatcher *dispatch.Dispatcher
	updates    *updates.Queue
	hub        *Hub
	upgrader   websocket.Upgrader
	engine     *gin.Engine
	logger     *slog.Logger
}

// NewServer creates a server that routes requests through d and
// broadcasts everything pushed onto q.
func NewServer(opts Options, d *dispatch.Dispatcher, q *updates.Queue, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultOptions()
	if opts.PingInterval <= 0 {
		opts.PingInterval = def.PingInterval
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = def.WriteTimeout
	}
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = def.ReadLimit
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = def.FlushInterval
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = def.ShutdownTimeout
	}

	s := &Server{
		opts:       opts,
		dispatcher: d,
		updates:    q,
		logger:     logger.With("component", "ws"),
	}
	s.hub = NewHub(q, opts.FlushInterval, s.logger)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  opts.ReadBufferSize,
		WriteBufferSize: opts.WriteBufferSize,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler serving /ws and /healthz.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the broadcast hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and runs the hub. On cancellation it
// stops accepting, closes every session and waits for the hub to exit.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return s.hub.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		s.hub.CloseAll()
		return err
	})

	return g.Wait()
}

// ServeWS upgrades the request and runs the session until it closes.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := newSession(conn, s.dispatcher, s.opts, s.logger)
	s.hub.Register(sess)
	defer s.hub.Unregister(sess)

	sess.logger.Info("connection opened", "remote", r.RemoteAddr)
	sess.Run()
	sess.logger.Info("connection closed")
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
