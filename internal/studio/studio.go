package studio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
	"github.com/sKeLeTr0n/OBSRemote/internal/repo"
)

// Errors
var (
	ErrSceneExists   = errors.New("scene already exists")
	ErrSceneNotFound = errors.New("scene not found")
	ErrLastScene     = errors.New("cannot remove the last scene")
	ErrSourceExists  = errors.New("source already exists")
	ErrSourceMissing = errors.New("source not found")
)

// DefaultSceneName names the scene created when nothing else is configured.
const DefaultSceneName = "Scene"

// Listener receives state-change events.
type Listener interface {
	StreamStarting(previewOnly bool)
	StreamStopping(previewOnly bool)
	StreamStatus(stats model.StreamStats)
	ScenesSwitching(sceneName string)
	ScenesChanged()
	SourceOrderChanged()
	SourcesAddedOrRemoved()
	SourceChanged(sourceName string, source model.Source)
	MicVolumeChanged(level float64, muted, final bool)
	DesktopVolumeChanged(level float64, muted, final bool)
}

// Config configures the studio.
type Config struct {
	StatusInterval time.Duration // StreamStatus cadence while streaming
	FPS            int
	BitrateKbps    int
	Scenes         []model.Scene // seed used when the store is empty
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		StatusInterval: 2 * time.Second,
		FPS:            30,
		BitrateKbps:    2500,
	}
}

// Studio implements the domain layer.
type Studio struct {
	cfg      Config
	logger   *slog.Logger
	store    repo.Repository
	listener Listener
	now      func() time.Time

	// Scene lock
	sceneMu sync.RWMutex
	scenes  []model.Scene
	current int

	// Mixer and stream state
	mu          sync.Mutex
	volumes     model.Volumes
	streaming   bool
	previewOnly bool
	startedAt   time.Time

	saveMu sync.Mutex // taken before sceneMu
}

// New restores the studio from store, or seeds it from cfg.Scenes when the
// store is empty. store may be nil for a memory-only studio.
func New(cfg Config, store repo.Repository, listener Listener, logger *slog.Logger) (*Studio, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if listener == nil {
		listener = nopListener{}
	}
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultConfig().FPS
	}
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = DefaultConfig().StatusInterval
	}

	s := &Studio{
		cfg:      cfg,
		logger:   logger.With("component", "studio"),
		store:    store,
		listener: listener,
		now:      time.Now,
		volumes:  model.Volumes{MicVolume: 1, DesktopVolume: 1},
	}

	var loaded *repo.Collection
	if store != nil {
		var err error
		if loaded, err = store.LoadCollection(); err != nil {
			return nil, err
		}
	}

	if loaded != nil && len(loaded.Scenes) > 0 {
		s.scenes = cloneScenes(loaded.Scenes)
		s.current = indexOf(s.scenes, loaded.Current)
		s.volumes = loaded.Volumes
		s.logger.Info("scene collection restored", "scenes", len(s.scenes), "current", s.scenes[s.current].Name)
		return s, nil
	}

	s.scenes = cloneScenes(cfg.Scenes)
	if len(s.scenes) == 0 {
		s.scenes = []model.Scene{{Name: DefaultSceneName, Sources: []model.Source{}}}
	}
	s.logger.Info("scene collection seeded", "scenes", len(s.scenes))
	s.persist()
	return s, nil
}

// SetListener replaces the event listener. Call it before serving.
func (s *Studio) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	s.listener = l
}

// Run emits StreamStatus on every status tick while a stream is active.
// It returns when ctx is cancelled.
func (s *Studio) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if stats, ok := s.StreamStats(); ok {
				s.listener.StreamStatus(stats)
			}
		}
	}
}

// persist saves a snapshot of the collection. Must be called without
// holding sceneMu or mu. saveMu is held from snapshot to save so saves
// land in the order their snapshots were taken.
func (s *Studio) persist() {
	if s.store == nil {
		return
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.sceneMu.RLock()
	c := &repo.Collection{
		Scenes:  cloneScenes(s.scenes),
		Current: s.scenes[s.current].Name,
	}
	s.mu.Lock()
	c.Volumes = s.volumes
	s.mu.Unlock()
	s.sceneMu.RUnlock()

	if err := s.store.SaveCollection(c); err != nil {
		s.logger.Error("failed to save scene collection", "error", err)
	}
}

func cloneScenes(in []model.Scene) []model.Scene {
	out := make([]model.Scene, len(in))
	for i, sc := range in {
		out[i] = cloneScene(sc)
	}
	return out
}

func cloneScene(sc model.Scene) model.Scene {
	sources := make([]model.Source, len(sc.Sources))
	copy(sources, sc.Sources)
	return model.Scene{Name: sc.Name, Sources: sources}
}

func indexOf(scenes []model.Scene, name string) int {
	for i, sc := range scenes {
		if sc.Name == name {
			return i
		}
	}
	return 0
}

type nopListener struct{}

func (nopListener) StreamStarting(bool)                      {}
func (nopListener) StreamStopping(bool)                      {}
func (nopListener) StreamStatus(model.StreamStats)           {}
func (nopListener) ScenesSwitching(string)                   {}
func (nopListener) ScenesChanged()                           {}
func (nopListener) SourceOrderChanged()                      {}
func (nopListener) SourcesAddedOrRemoved()                   {}
func (nopListener) SourceChanged(string, model.Source)       {}
func (nopListener) MicVolumeChanged(float64, bool, bool)     {}
func (nopListener) DesktopVolumeChanged(float64, bool, bool) {}
