package studio

import (
	"math"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

func (s *Studio) Streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaming
}

func (s *Studio) PreviewOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewOnly
}

// StartStopStream starts a live stream, or stops whatever is running.
func (s *Studio) StartStopStream() {
	s.startStop(false)
}

// StartStopPreview starts a preview-only session, or stops whatever is
// running.
func (s *Studio) StartStopPreview() {
	s.startStop(true)
}

func (s *Studio) startStop(previewOnly bool) {
	s.mu.Lock()
	starting := !s.streaming
	if starting {
		s.streaming = true
		s.previewOnly = previewOnly
		s.startedAt = s.now()
	} else {
		s.streaming = false
		previewOnly = s.previewOnly
	}
	s.mu.Unlock()

	if starting {
		s.logger.Info("stream starting", "preview_only", previewOnly)
		s.listener.StreamStarting(previewOnly)
	} else {
		s.logger.Info("stream stopping", "preview_only", previewOnly)
		s.listener.StreamStopping(previewOnly)
	}
}

// StreamStats reports encoder statistics for the running stream. It
// returns false when nothing is streaming.
func (s *Studio) StreamStats() (model.StreamStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.streaming {
		return model.StreamStats{}, false
	}

	elapsed := s.now().Sub(s.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	fps := uint32(s.cfg.FPS)
	stats := model.StreamStats{
		Streaming:       true,
		PreviewOnly:     s.previewOnly,
		TotalStreamTime: clampUint32(elapsed.Milliseconds()),
		NumTotalFrames:  clampUint32(int64(elapsed.Seconds() * float64(fps))),
		FPS:             fps,
	}
	if !s.previewOnly {
		stats.BytesPerSec = clampUint32(int64(s.cfg.BitrateKbps) * 1000 / 8)
	}
	return stats, true
}

func clampUint32(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
