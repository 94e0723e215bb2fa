// Package updates builds the unsolicited state-change notifications and
// pushes them onto the shared update queue.
package updates

import (
	"github.com/sKeLeTr0n/OBSRemote/internal/model"
	"github.com/sKeLeTr0n/OBSRemote/internal/queue"
)

// Update types.
const (
	TypeStreamStarting     = "StreamStarting"
	TypeStreamStopping     = "StreamStopping"
	TypeStreamStatus       = "StreamStatus"
	TypeSwitchScenes       = "SwitchScenes"
	TypeScenesChanged      = "ScenesChanged"
	TypeSourceOrderChanged = "SourceOrderChanged"
	TypeRepopulateSources  = "RepopulateSources"
	TypeSourceChanged      = "SourceChanged"
	TypeVolumeChanged      = "VolumeChanged"
)

// Queue is the update queue shared by every producer.
type Queue = queue.Queue[model.Notification]

// NewQueue creates an empty update queue.
func NewQueue() *Queue {
	return queue.New[model.Notification](64)
}

// SceneViewer gives read access to the scene graph under the domain's
// scene lock.
type SceneViewer interface {
	ViewScenes(fn func(model.SceneView))
}

// Notifier turns domain events into notifications. Its methods may be
// called from any goroutine, but never while the caller holds the scene
// write lock.
type Notifier struct {
	queue  *Queue
	scenes SceneViewer
}

// NewNotifier creates a notifier that pushes onto q.
func NewNotifier(q *Queue, scenes SceneViewer) *Notifier {
	return &Notifier{queue: q, scenes: scenes}
}

// push is the only place the queue lock is taken; the body is complete
// before it is called.
func (n *Notifier) push(updateType string, fields map[string]any) {
	n.queue.Push(model.NewNotification(updateType, fields))
}

func (n *Notifier) StreamStarting(previewOnly bool) {
	n.push(TypeStreamStarting, map[string]any{"preview-only": previewOnly})
}

func (n *Notifier) StreamStopping(previewOnly bool) {
	n.push(TypeStreamStopping, map[string]any{"preview-only": previewOnly})
}

func (n *Notifier) StreamStatus(s model.StreamStats) {
	n.push(TypeStreamStatus, map[string]any{
		"streaming":          s.Streaming,
		"preview-only":       s.PreviewOnly,
		"bytes-per-sec":      s.BytesPerSec,
		"strain":             s.Strain,
		"total-stream-time":  s.TotalStreamTime,
		"num-total-frames":   s.NumTotalFrames,
		"num-dropped-frames": s.NumDroppedFrames,
		"fps":                s.FPS,
	})
}

func (n *Notifier) ScenesSwitching(sceneName string) {
	n.push(TypeSwitchScenes, map[string]any{"scene-name": sceneName})
}

func (n *Notifier) ScenesChanged() {
	n.push(TypeScenesChanged, nil)
}

// SourceOrderChanged reports the current scene's source names in order.
func (n *Notifier) SourceOrderChanged() {
	var names []string
	n.scenes.ViewScenes(func(v model.SceneView) {
		names = v.Current().SourceNames()
	})
	n.push(TypeSourceOrderChanged, map[string]any{"sources": names})
}

// SourcesAddedOrRemoved reports the current scene's full source list.
func (n *Notifier) SourcesAddedOrRemoved() {
	var sources []model.Source
	n.scenes.ViewScenes(func(v model.SceneView) {
		cur := v.Current().Sources
		sources = make([]model.Source, len(cur))
		copy(sources, cur)
	})
	n.push(TypeRepopulateSources, map[string]any{"sources": sources})
}

func (n *Notifier) SourceChanged(sourceName string, source model.Source) {
	n.push(TypeSourceChanged, map[string]any{
		"source-name": sourceName,
		"source":      source,
	})
}

func (n *Notifier) MicVolumeChanged(level float64, muted, final bool) {
	n.volumeChanged(model.ChannelMicrophone, level, muted, final)
}

func (n *Notifier) DesktopVolumeChanged(level float64, muted, final bool) {
	n.volumeChanged(model.ChannelDesktop, level, muted, final)
}

func (n *Notifier) volumeChanged(channel model.Channel, level float64, muted, final bool) {
	n.push(TypeVolumeChanged, map[string]any{
		"channel":    string(channel),
		"volume":     level,
		"muted":      muted,
		"finalValue": final,
	})
}
