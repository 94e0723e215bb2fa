package api

import "github.com/sKeLeTr0n/OBSRemote/internal/model"

func (h *handlers) getStreamingStatus(_ *model.Request) *model.Response {
	return ok().
		With("streaming", h.studio.Streaming()).
		With("preview-only", h.studio.PreviewOnly())
}

func (h *handlers) startStopStreaming(req *model.Request) *model.Response {
	if preview, _ := req.Field("preview-only").Bool(); preview {
		h.studio.StartStopPreview()
	} else {
		h.studio.StartStopStream()
	}
	return ok()
}
