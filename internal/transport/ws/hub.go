package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/sKeLeTr0n/OBSRemote/internal/updates"
)

// Hub tracks live sessions and broadcasts the update queue to them.
type Hub struct {
	updates       *updates.Queue
	flushInterval time.Duration
	logger        *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	broadcast int64 // notifications sent, guarded by mu
}

// HubStats is a snapshot of hub counters.
type HubStats struct {
	Sessions  int   `json:"sessions"`
	Broadcast int64 `json:"broadcast"`
}

// NewHub creates a hub draining q.
func NewHub(q *updates.Queue, flushInterval time.Duration, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		updates:       q,
		flushInterval: flushInterval,
		logger:        logger.With("component", "hub"),
		sessions:      make(map[string]*Session),
	}
}

func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID()] = s
}

func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.ID())
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) Stats() HubStats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HubStats{Sessions: len(h.sessions), Broadcast: h.broadcast}
}

// Run drains the update queue whenever it signals, and on every flush
// tick, until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.updates.Ready():
		case <-ticker.C:
		}
		h.flush()
	}
}

// flush sends every queued notification to every session, in queue order.
// Notifications queued while nobody is connected are discarded.
func (h *Hub) flush() {
	batch := h.updates.Drain(0)
	if len(batch) == 0 {
		return
	}

	frames := make([][]byte, 0, len(batch))
	for _, n := range batch {
		data, err := json.Marshal(n)
		if err != nil {
			h.logger.Error("failed to encode notification", "update_type", n.Type, "error", err)
			continue
		}
		frames = append(frames, data)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		for _, f := range frames {
			s.Notify(f)
		}
	}
	h.broadcast += int64(len(frames))
}

// CloseAll sends a close frame to every session and closes it.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		s.closeGracefully()
	}
}
