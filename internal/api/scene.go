package api

import (
	"github.com/sKeLeTr0n/OBSRemote/internal/model"
	"github.com/sKeLeTr0n/OBSRemote/internal/version"
)

const (
	errNoSource   = "No source specified"
	errNoRender   = "No render specified"
	errNoItem     = "No item specified"
	errNoPosition = "Position not specified."
	errNoSize     = "Size not specified."
)

func (h *handlers) getVersion(_ *model.Request) *model.Response {
	return ok().With("version", version.Protocol)
}

func (h *handlers) getCurrentScene(_ *model.Request) *model.Response {
	resp := ok()
	h.studio.ViewScenes(func(v model.SceneView) {
		scene := v.Current()
		resp.With("name", scene.Name).With("sources", sourcesOf(scene))
	})
	return resp
}

func (h *handlers) getSceneList(_ *model.Request) *model.Response {
	resp := ok()
	h.studio.ViewScenes(func(v model.SceneView) {
		scenes := v.Scenes()
		out := make([]model.Scene, 0, len(scenes))
		for _, s := range scenes {
			out = append(out, model.Scene{Name: s.Name, Sources: sourcesOf(s)})
		}
		resp.With("current-scene", v.Current().Name).With("scenes", out)
	})
	return resp
}

// sourcesOf never returns nil so an empty scene encodes as [].
func sourcesOf(s model.Scene) []model.Source {
	out := make([]model.Source, len(s.Sources))
	copy(out, s.Sources)
	return out
}

func (h *handlers) setCurrentScene(req *model.Request) *model.Response {
	if name, found := req.Field("scene-name").Str(); found {
		h.studio.SetActiveScene(name)
	}
	return ok()
}

func (h *handlers) setSourcesOrder(req *model.Request) *model.Response {
	if names, found := req.Field("scene-names").Strings(); found {
		h.studio.SetSourceOrder(names)
	}
	return ok()
}

func (h *handlers) setSourceRender(req *model.Request) *model.Response {
	source, found := req.Field("source").Str()
	if !found {
		return fail(errNoSource)
	}
	render, found := req.Field("render").Bool()
	if !found {
		return fail(errNoRender)
	}
	h.studio.SetSourceVisible(source, render)
	return ok()
}

func (h *handlers) setSceneItemPositionAndSize(req *model.Request) *model.Response {
	item, found := req.Field("item").Str()
	if !found {
		return fail(errNoItem)
	}
	x, okX := req.Field("x").Number()
	y, okY := req.Field("y").Number()
	if !okX || !okY {
		return fail(errNoPosition)
	}
	cx, okCX := req.Field("cx").Number()
	cy, okCY := req.Field("cy").Number()
	if !okCX || !okCY {
		return fail(errNoSize)
	}
	h.studio.SetItemPositionAndSize(item, x, y, cx, cy)
	return ok()
}
