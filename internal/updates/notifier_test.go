package updates

import (
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

type staticScenes struct {
	mu    sync.RWMutex
	scene model.Scene
}

type staticView struct{ scene model.Scene }

func (v staticView) Current() model.Scene  { return v.scene }
func (v staticView) Scenes() []model.Scene { return []model.Scene{v.scene} }

func (s *staticScenes) ViewScenes(fn func(model.SceneView)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(staticView{scene: s.scene})
}

func newTestNotifier() (*Notifier, *Queue) {
	q := NewQueue()
	scenes := &staticScenes{scene: model.Scene{
		Name: "Live",
		Sources: []model.Source{
			{Name: "Camera", CX: 1280, CY: 720, Render: true},
			{Name: "Overlay"},
		},
	}}
	return NewNotifier(q, scenes), q
}

func popJSON(t *testing.T, q *Queue) map[string]any {
	t.Helper()
	n, ok := q.Pop()
	if !ok {
		t.Fatal("update queue is empty")
	}
	data, err := n.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestNotifier_Builders(t *testing.T) {
	n, q := newTestNotifier()

	n.StreamStarting(true)
	n.StreamStopping(false)
	n.ScenesSwitching("Live")
	n.ScenesChanged()
	n.MicVolumeChanged(0.25, true, false)
	n.DesktopVolumeChanged(0.75, false, true)

	tests := []struct {
		updateType string
		fields     map[string]any
	}{
		{TypeStreamStarting, map[string]any{"preview-only": true}},
		{TypeStreamStopping, map[string]any{"preview-only": false}},
		{TypeSwitchScenes, map[string]any{"scene-name": "Live"}},
		{TypeScenesChanged, nil},
		{TypeVolumeChanged, map[string]any{"channel": "microphone", "volume": 0.25, "muted": true, "finalValue": false}},
		{TypeVolumeChanged, map[string]any{"channel": "desktop", "volume": 0.75, "muted": false, "finalValue": true}},
	}
	for i, tt := range tests {
		m := popJSON(t, q)
		if m["update-type"] != tt.updateType {
			t.Errorf("update %d: update-type = %v, want %s", i, m["update-type"], tt.updateType)
		}
		if len(m) != len(tt.fields)+1 {
			t.Errorf("update %d: %d keys, want %d: %v", i, len(m), len(tt.fields)+1, m)
		}
		for k, v := range tt.fields {
			if m[k] != v {
				t.Errorf("update %d: %s = %v, want %v", i, k, m[k], v)
			}
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("expected queue to be empty")
	}
}

func TestNotifier_StreamStatus(t *testing.T) {
	n, q := newTestNotifier()
	n.StreamStatus(model.StreamStats{
		Streaming:        true,
		BytesPerSec:      312500,
		Strain:           1.5,
		TotalStreamTime:  60000,
		NumTotalFrames:   1800,
		NumDroppedFrames: 2,
		FPS:              30,
	})

	m := popJSON(t, q)
	want := map[string]any{
		"update-type":        TypeStreamStatus,
		"streaming":          true,
		"preview-only":       false,
		"bytes-per-sec":      312500.0,
		"strain":             1.5,
		"total-stream-time":  60000.0,
		"num-total-frames":   1800.0,
		"num-dropped-frames": 2.0,
		"fps":                30.0,
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s = %v, want %v", k, m[k], v)
		}
	}
}

func TestNotifier_SourceLists(t *testing.T) {
	n, q := newTestNotifier()

	n.SourceOrderChanged()
	m := popJSON(t, q)
	names, _ := m["sources"].([]any)
	if len(names) != 2 || names[0] != "Camera" || names[1] != "Overlay" {
		t.Errorf("SourceOrderChanged sources = %v, want [Camera Overlay]", m["sources"])
	}

	n.SourcesAddedOrRemoved()
	m = popJSON(t, q)
	if m["update-type"] != TypeRepopulateSources {
		t.Errorf("update-type = %v, want %s", m["update-type"], TypeRepopulateSources)
	}
	sources, _ := m["sources"].([]any)
	if len(sources) != 2 {
		t.Fatalf("sources = %v, want 2 entries", m["sources"])
	}
	first, _ := sources[0].(map[string]any)
	if first["name"] != "Camera" || first["cx"] != 1280.0 || first["render"] != true {
		t.Errorf("first source = %v", first)
	}

	n.SourceChanged("Overlay", model.Source{Name: "Overlay", X: 5})
	m = popJSON(t, q)
	if m["source-name"] != "Overlay" {
		t.Errorf("source-name = %v, want Overlay", m["source-name"])
	}
	src, _ := m["source"].(map[string]any)
	if src["x"] != 5.0 {
		t.Errorf("source.x = %v, want 5", src["x"])
	}
}

func TestNotifier_ConcurrentProducers(t *testing.T) {
	n, q := newTestNotifier()

	const producers = 10
	const perProducer = 200
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if i%2 == 0 {
					n.SourceOrderChanged()
				} else {
					n.MicVolumeChanged(0.5, false, false)
				}
			}
		}()
	}
	wg.Wait()

	got := len(q.Drain(0))
	if got != producers*perProducer {
		t.Errorf("drained %d notifications, want %d", got, producers*perProducer)
	}
}
