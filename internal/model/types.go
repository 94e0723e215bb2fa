// Package model holds the wire types of the remote control protocol:
// inbound requests, response envelopes, unsolicited notifications and the
// scene graph shapes they carry.
package model

// Wire keys shared by requests, responses and notifications.
const (
	KeyRequestType = "request-type"
	KeyMessageID   = "message-id"
	KeyStatus      = "status"
	KeyError       = "error"
	KeyUpdateType  = "update-type"
)

// Source is one item of a scene as reported to clients.
type Source struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Render bool    `json:"render"`
}

// Scene is a named, ordered list of sources.
type Scene struct {
	Name    string   `json:"name"`
	Sources []Source `json:"sources"`
}

// SourceNames returns the names of the scene's sources in order.
func (s Scene) SourceNames() []string {
	names := make([]string, 0, len(s.Sources))
	for _, src := range s.Sources {
		names = append(names, src.Name)
	}
	return names
}

// Channel identifies one of the two mixer channels.
type Channel string

const (
	ChannelDesktop    Channel = "desktop"
	ChannelMicrophone Channel = "microphone"
)

// Volumes is a snapshot of both mixer channels.
type Volumes struct {
	MicVolume     float64
	MicMuted      bool
	DesktopVolume float64
	DesktopMuted  bool
}

// StreamStats is the periodic encoder report carried by StreamStatus updates.
type StreamStats struct {
	Streaming        bool
	PreviewOnly      bool
	BytesPerSec      uint32
	Strain           float64
	TotalStreamTime  uint32 // milliseconds
	NumTotalFrames   uint32
	NumDroppedFrames uint32
	FPS              uint32
}

// SceneView is read access to the scene graph. It is only valid inside the
// callback it is handed to, while the scene lock is held.
type SceneView interface {
	Current() Scene
	Scenes() []Scene
}
