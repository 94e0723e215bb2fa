package main

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/sKeLeTr0n/OBSRemote/config"
	"github.com/sKeLeTr0n/OBSRemote/internal/model"
	"github.com/sKeLeTr0n/OBSRemote/internal/studio"
	"github.com/sKeLeTr0n/OBSRemote/internal/updates"
)

func TestOnReload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := studio.DefaultConfig()
	cfg.Scenes = []model.Scene{{Name: "Intro", Sources: []model.Source{{Name: "Logo"}}}}
	st, err := studio.New(cfg, nil, nil, logger)
	if err != nil {
		t.Fatalf("studio.New() error = %v", err)
	}
	q := updates.NewQueue()
	st.SetListener(updates.NewNotifier(q, st))

	level := new(slog.LevelVar)
	next := &config.Config{
		Log: config.LogConfig{Level: "debug", Format: "text"},
		Studio: config.StudioConfig{Scenes: []model.Scene{
			{Name: "Intro", Sources: []model.Source{{Name: "Logo"}, {Name: "Music"}}},
			{Name: "Live"},
		}},
	}

	onReload(level, st, logger)(next)

	if level.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want %v", level.Level(), slog.LevelDebug)
	}

	batch := q.Drain(0)
	types := make([]string, len(batch))
	for i, n := range batch {
		types[i] = n.Type
	}
	want := []string{updates.TypeRepopulateSources, updates.TypeScenesChanged}
	if !reflect.DeepEqual(types, want) {
		t.Fatalf("update types = %v, want %v", types, want)
	}
	sources, _ := batch[0].Fields["sources"].([]model.Source)
	if len(sources) != 2 || sources[1].Name != "Music" {
		t.Errorf("RepopulateSources sources = %v, want Logo and Music", batch[0].Fields["sources"])
	}
}

func TestOnReload_NoScenesKeepsCollection(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := studio.New(studio.DefaultConfig(), nil, nil, logger)
	if err != nil {
		t.Fatalf("studio.New() error = %v", err)
	}
	q := updates.NewQueue()
	st.SetListener(updates.NewNotifier(q, st))

	onReload(new(slog.LevelVar), st, logger)(&config.Config{Log: config.LogConfig{Level: "warn"}})

	if n := q.Len(); n != 0 {
		t.Errorf("queued %d updates, want 0", n)
	}
	st.ViewScenes(func(v model.SceneView) {
		if got := v.Current().Name; got != studio.DefaultSceneName {
			t.Errorf("current = %q, want %q", got, studio.DefaultSceneName)
		}
	})
}
