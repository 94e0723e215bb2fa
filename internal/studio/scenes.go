package studio

import (
	"errors"
	"fmt"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

type view struct{ s *Studio }

func (v view) Current() model.Scene {
	return cloneScene(v.s.scenes[v.s.current])
}

func (v view) Scenes() []model.Scene {
	return cloneScenes(v.s.scenes)
}

// ViewScenes calls fn with the scene read lock held.
func (s *Studio) ViewScenes(fn func(model.SceneView)) {
	s.sceneMu.RLock()
	defer s.sceneMu.RUnlock()
	fn(view{s: s})
}

// SetActiveScene switches to the named scene. Unknown names and the
// already-active scene are ignored.
func (s *Studio) SetActiveScene(name string) {
	s.sceneMu.Lock()
	i := s.findScene(name)
	if i < 0 || i == s.current {
		s.sceneMu.Unlock()
		return
	}
	s.current = i
	s.sceneMu.Unlock()

	s.logger.Debug("scene switched", "scene", name)
	s.listener.ScenesSwitching(name)
	s.persist()
}

// SetSourceOrder reorders the active scene's sources. Named sources move
// to the front in the given order; unknown names are ignored and the rest
// keep their relative order.
func (s *Studio) SetSourceOrder(names []string) {
	s.sceneMu.Lock()
	scene := &s.scenes[s.current]
	used := make([]bool, len(scene.Sources))
	ordered := make([]model.Source, 0, len(scene.Sources))
	for _, name := range names {
		for j, src := range scene.Sources {
			if !used[j] && src.Name == name {
				used[j] = true
				ordered = append(ordered, src)
				break
			}
		}
	}
	for j, src := range scene.Sources {
		if !used[j] {
			ordered = append(ordered, src)
		}
	}
	changed := false
	for j := range ordered {
		if ordered[j].Name != scene.Sources[j].Name {
			changed = true
			break
		}
	}
	scene.Sources = ordered
	s.sceneMu.Unlock()

	if !changed {
		return
	}
	s.listener.SourceOrderChanged()
	s.persist()
}

// SetSourceVisible sets the render flag of a source in the active scene.
func (s *Studio) SetSourceVisible(name string, visible bool) {
	s.updateSource(name, func(src *model.Source) {
		src.Render = visible
	})
}

// SetItemPositionAndSize moves and resizes a source in the active scene.
func (s *Studio) SetItemPositionAndSize(name string, x, y, cx, cy float64) {
	s.updateSource(name, func(src *model.Source) {
		src.X, src.Y, src.CX, src.CY = x, y, cx, cy
	})
}

func (s *Studio) updateSource(name string, fn func(src *model.Source)) {
	s.sceneMu.Lock()
	scene := &s.scenes[s.current]
	j := findSource(*scene, name)
	if j < 0 {
		s.sceneMu.Unlock()
		return
	}
	before := scene.Sources[j]
	fn(&scene.Sources[j])
	after := scene.Sources[j]
	s.sceneMu.Unlock()

	if before == after {
		return
	}
	s.listener.SourceChanged(name, after)
	s.persist()
}

// AddScene appends an empty scene.
func (s *Studio) AddScene(name string) error {
	s.sceneMu.Lock()
	if s.findScene(name) >= 0 {
		s.sceneMu.Unlock()
		return fmt.Errorf("%w: %s", ErrSceneExists, name)
	}
	s.scenes = append(s.scenes, model.Scene{Name: name, Sources: []model.Source{}})
	s.sceneMu.Unlock()

	s.listener.ScenesChanged()
	s.persist()
	return nil
}

// RemoveScene deletes a scene. Removing the active scene switches to the
// first remaining one.
func (s *Studio) RemoveScene(name string) error {
	s.sceneMu.Lock()
	i := s.findScene(name)
	if i < 0 {
		s.sceneMu.Unlock()
		return fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	if len(s.scenes) == 1 {
		s.sceneMu.Unlock()
		return ErrLastScene
	}
	wasCurrent := i == s.current
	s.scenes = append(s.scenes[:i], s.scenes[i+1:]...)
	switch {
	case wasCurrent:
		s.current = 0
	case i < s.current:
		s.current--
	}
	currentName := s.scenes[s.current].Name
	s.sceneMu.Unlock()

	s.listener.ScenesChanged()
	if wasCurrent {
		s.listener.ScenesSwitching(currentName)
	}
	s.persist()
	return nil
}

// AddSource appends a source to the named scene. Changes to the active
// scene are reported as SourcesAddedOrRemoved, others as ScenesChanged.
func (s *Studio) AddSource(sceneName string, src model.Source) error {
	s.sceneMu.Lock()
	i := s.findScene(sceneName)
	if i < 0 {
		s.sceneMu.Unlock()
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneName)
	}
	scene := &s.scenes[i]
	if findSource(*scene, src.Name) >= 0 {
		s.sceneMu.Unlock()
		return fmt.Errorf("%w: %s", ErrSourceExists, src.Name)
	}
	scene.Sources = append(scene.Sources, src)
	active := i == s.current
	s.sceneMu.Unlock()

	s.sourcesChanged(active)
	return nil
}

// RemoveSource deletes a source from the named scene.
func (s *Studio) RemoveSource(sceneName, name string) error {
	s.sceneMu.Lock()
	i := s.findScene(sceneName)
	if i < 0 {
		s.sceneMu.Unlock()
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneName)
	}
	scene := &s.scenes[i]
	j := findSource(*scene, name)
	if j < 0 {
		s.sceneMu.Unlock()
		return fmt.Errorf("%w: %s", ErrSourceMissing, name)
	}
	scene.Sources = append(scene.Sources[:j], scene.Sources[j+1:]...)
	active := i == s.current
	s.sceneMu.Unlock()

	s.sourcesChanged(active)
	return nil
}

func (s *Studio) sourcesChanged(active bool) {
	if active {
		s.listener.SourcesAddedOrRemoved()
	} else {
		s.listener.ScenesChanged()
	}
	s.persist()
}

// SyncScenes reconciles the collection with want by name. Missing scenes
// and sources are added, scenes and sources not in want are removed.
// Existing sources keep their layout. An empty want is ignored.
func (s *Studio) SyncScenes(want []model.Scene) error {
	if len(want) == 0 {
		return nil
	}

	wanted := make(map[string]model.Scene, len(want))
	for _, sc := range want {
		wanted[sc.Name] = sc
	}

	// Add first so removing never empties the collection.
	for _, sc := range want {
		if err := s.AddScene(sc.Name); err != nil && !errors.Is(err, ErrSceneExists) {
			return err
		}
		for _, src := range sc.Sources {
			if err := s.AddSource(sc.Name, src); err != nil && !errors.Is(err, ErrSourceExists) {
				return err
			}
		}
	}

	var current []model.Scene
	s.ViewScenes(func(v model.SceneView) { current = v.Scenes() })

	for _, sc := range current {
		target, ok := wanted[sc.Name]
		if !ok {
			if err := s.RemoveScene(sc.Name); err != nil && !errors.Is(err, ErrSceneNotFound) {
				return err
			}
			continue
		}
		keep := make(map[string]bool, len(target.Sources))
		for _, src := range target.Sources {
			keep[src.Name] = true
		}
		for _, src := range sc.Sources {
			if keep[src.Name] {
				continue
			}
			if err := s.RemoveSource(sc.Name, src.Name); err != nil && !errors.Is(err, ErrSourceMissing) {
				return err
			}
		}
	}
	return nil
}

// findScene must be called with sceneMu held.
func (s *Studio) findScene(name string) int {
	for i, sc := range s.scenes {
		if sc.Name == name {
			return i
		}
	}
	return -1
}

func findSource(scene model.Scene, name string) int {
	for j, src := range scene.Sources {
		if src.Name == name {
			return j
		}
	}
	return -1
}
