package api

import "github.com/sKeLeTr0n/OBSRemote/internal/model"

// Studio is the domain layer the handlers read and command. It owns its
// own locking; handlers never hold a domain lock outside ViewScenes.
type Studio interface {
	// ViewScenes calls fn with the scene read lock held and releases it
	// on every exit path.
	ViewScenes(fn func(model.SceneView))

	SetActiveScene(name string)
	SetSourceOrder(names []string)
	SetSourceVisible(name string, visible bool)
	SetItemPositionAndSize(name string, x, y, cx, cy float64)

	ToggleDesktopMute()
	ToggleMicMute()
	SetDesktopVolume(level float64, final bool)
	SetMicVolume(level float64, final bool)
	Volumes() model.Volumes

	StartStopStream()
	StartStopPreview()
	Streaming() bool
	PreviewOnly() bool
}
