// Package repo persists the studio's scene collection and mixer settings.
package repo

import "github.com/sKeLeTr0n/OBSRemote/internal/model"

// Collection is everything the studio restores on startup.
type Collection struct {
	Scenes  []model.Scene
	Current string
	Volumes model.Volumes
}

type Repository interface {
	// LoadCollection returns the stored collection.
	// Returns nil, nil if nothing has been saved yet.
	LoadCollection() (*Collection, error)

	// SaveCollection replaces the stored collection.
	SaveCollection(c *Collection) error

	// Close closes the repository connection.
	Close() error
}
