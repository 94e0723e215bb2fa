package api

import (
	"strings"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

const (
	errNoChannel      = "Channel not specified."
	errInvalidChannel = "Invalid channel specified."
	errNoVolume       = "Volume not specified."
	errVolumeNaN      = "Volume not number."
	errNoFinal        = "Final not specified."
	errFinalNotBool   = "Final is not a boolean."
)

// parseChannel matches desktop or microphone case-insensitively. On
// failure it returns the error message to send.
func parseChannel(v model.Value) (model.Channel, string) {
	name, found := v.Str()
	if !found {
		return "", errNoChannel
	}
	switch {
	case strings.EqualFold(name, string(model.ChannelDesktop)):
		return model.ChannelDesktop, ""
	case strings.EqualFold(name, string(model.ChannelMicrophone)):
		return model.ChannelMicrophone, ""
	}
	return "", errInvalidChannel
}

func (h *handlers) toggleMute(req *model.Request) *model.Response {
	channel, msg := parseChannel(req.Field("channel"))
	if msg != "" {
		return fail(msg)
	}
	if channel == model.ChannelDesktop {
		h.studio.ToggleDesktopMute()
	} else {
		h.studio.ToggleMicMute()
	}
	return ok()
}

func (h *handlers) getVolumes(_ *model.Request) *model.Response {
	v := h.studio.Volumes()
	return ok().
		With("mic-volume", v.MicVolume).
		With("mic-muted", v.MicMuted).
		With("desktop-volume", v.DesktopVolume).
		With("desktop-muted", v.DesktopMuted)
}

func (h *handlers) setVolume(req *model.Request) *model.Response {
	volume := req.Field("volume")
	if !volume.Present() {
		return fail(errNoVolume)
	}
	level, isNumber := volume.Number()
	if !isNumber {
		return fail(errVolumeNaN)
	}
	level = clamp(level)

	final := req.Field("final")
	if !final.Present() {
		return fail(errNoFinal)
	}
	isFinal, isBool := final.Bool()
	if !isBool {
		return fail(errFinalNotBool)
	}

	channel, msg := parseChannel(req.Field("channel"))
	if msg != "" {
		return fail(msg)
	}
	if channel == model.ChannelDesktop {
		h.studio.SetDesktopVolume(level, isFinal)
	} else {
		h.studio.SetMicVolume(level, isFinal)
	}
	return ok()
}

func clamp(level float64) float64 {
	return min(1.0, max(0.0, level))
}
