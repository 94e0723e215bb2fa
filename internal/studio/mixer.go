package studio

import "github.com/sKeLeTr0n/OBSRemote/internal/model"

// Volumes returns a snapshot of both mixer channels.
func (s *Studio) Volumes() model.Volumes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volumes
}

func (s *Studio) ToggleDesktopMute() {
	s.mu.Lock()
	s.volumes.DesktopMuted = !s.volumes.DesktopMuted
	v := s.volumes
	s.mu.Unlock()

	s.listener.DesktopVolumeChanged(v.DesktopVolume, v.DesktopMuted, true)
	s.persist()
}

func (s *Studio) ToggleMicMute() {
	s.mu.Lock()
	s.volumes.MicMuted = !s.volumes.MicMuted
	v := s.volumes
	s.mu.Unlock()

	s.listener.MicVolumeChanged(v.MicVolume, v.MicMuted, true)
	s.persist()
}

// SetDesktopVolume sets the desktop level. Only final values are saved;
// intermediate values arrive while a fader is being dragged.
func (s *Studio) SetDesktopVolume(level float64, final bool) {
	s.mu.Lock()
	s.volumes.DesktopVolume = level
	v := s.volumes
	s.mu.Unlock()

	s.listener.DesktopVolumeChanged(v.DesktopVolume, v.DesktopMuted, final)
	if final {
		s.persist()
	}
}

// SetMicVolume sets the microphone level, saving only final values.
func (s *Studio) SetMicVolume(level float64, final bool) {
	s.mu.Lock()
	s.volumes.MicVolume = level
	v := s.volumes
	s.mu.Unlock()

	s.listener.MicVolumeChanged(v.MicVolume, v.MicMuted, final)
	if final {
		s.persist()
	}
}
