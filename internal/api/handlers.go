// Package api implements the command handler set of the remote control
// protocol and the table that routes request types to it.
package api

import (
	"github.com/sKeLeTr0n/OBSRemote/internal/dispatch"
	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

// Request types.
const (
	ReqGetVersion                  = "GetVersion"
	ReqGetCurrentScene             = "GetCurrentScene"
	ReqGetSceneList                = "GetSceneList"
	ReqSetCurrentScene             = "SetCurrentScene"
	ReqSetSourcesOrder             = "SetSourcesOrder"
	ReqSetSourceRender             = "SetSourceRender"
	ReqSetSceneItemPositionAndSize = "SetSceneItemPositionAndSize"
	ReqGetStreamingStatus          = "GetStreamingStatus"
	ReqStartStopStreaming          = "StartStopStreaming"
	ReqToggleMute                  = "ToggleMute"
	ReqGetVolumes                  = "GetVolumes"
	ReqSetVolume                   = "SetVolume"
)

type handlers struct {
	studio Studio
}

// NewTable returns the handler table for every supported request type.
func NewTable(studio Studio) dispatch.Table {
	h := &handlers{studio: studio}
	return dispatch.NewTable(map[string]dispatch.Handler{
		ReqGetVersion:                  dispatch.HandlerFunc(h.getVersion),
		ReqGetCurrentScene:             dispatch.HandlerFunc(h.getCurrentScene),
		ReqGetSceneList:                dispatch.HandlerFunc(h.getSceneList),
		ReqSetCurrentScene:             dispatch.HandlerFunc(h.setCurrentScene),
		ReqSetSourcesOrder:             dispatch.HandlerFunc(h.setSourcesOrder),
		ReqSetSourceRender:             dispatch.HandlerFunc(h.setSourceRender),
		ReqSetSceneItemPositionAndSize: dispatch.HandlerFunc(h.setSceneItemPositionAndSize),
		ReqGetStreamingStatus:          dispatch.HandlerFunc(h.getStreamingStatus),
		ReqStartStopStreaming:          dispatch.HandlerFunc(h.startStopStreaming),
		ReqToggleMute:                  dispatch.HandlerFunc(h.toggleMute),
		ReqGetVolumes:                  dispatch.HandlerFunc(h.getVolumes),
		ReqSetVolume:                   dispatch.HandlerFunc(h.setVolume),
	})
}

func ok() *model.Response {
	return model.MakeOk(model.Missing())
}

func fail(msg string) *model.Response {
	return model.MakeError(msg, model.Missing())
}
