package repo

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo opens (or creates) the database at path. ":memory:" gives a
// private in-memory database.
func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &SQLiteRepo{db: db}
	if err := r.init(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scenes (
		position INTEGER PRIMARY KEY,
		name     TEXT NOT NULL UNIQUE
	);`,
	`CREATE TABLE IF NOT EXISTS sources (
		scene    TEXT NOT NULL,
		position INTEGER NOT NULL,
		name     TEXT NOT NULL,
		x        REAL NOT NULL DEFAULT 0,
		y        REAL NOT NULL DEFAULT 0,
		cx       REAL NOT NULL DEFAULT 0,
		cy       REAL NOT NULL DEFAULT 0,
		render   INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (scene, position)
	);`,
	`CREATE TABLE IF NOT EXISTS state (
		id             INTEGER PRIMARY KEY CHECK (id = 1),
		current_scene  TEXT NOT NULL,
		mic_volume     REAL NOT NULL,
		mic_muted      INTEGER NOT NULL,
		desktop_volume REAL NOT NULL,
		desktop_muted  INTEGER NOT NULL
	);`,
}

func (r *SQLiteRepo) init() error {
	for _, query := range schema {
		if _, err := r.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepo) LoadCollection() (*Collection, error) {
	var c Collection
	err := r.db.QueryRow(`SELECT current_scene, mic_volume, mic_muted, desktop_volume, desktop_muted FROM state WHERE id = 1`).
		Scan(&c.Current, &c.Volumes.MicVolume, &c.Volumes.MicMuted, &c.Volumes.DesktopVolume, &c.Volumes.DesktopMuted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	rows, err := r.db.Query(`SELECT name FROM scenes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	index := make(map[string]int)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan scene: %w", err)
		}
		index[name] = len(c.Scenes)
		c.Scenes = append(c.Scenes, model.Scene{Name: name, Sources: []model.Source{}})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}

	rows, err = r.db.Query(`SELECT scene, name, x, y, cx, cy, render FROM sources ORDER BY scene, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var scene string
		var s model.Source
		if err := rows.Scan(&scene, &s.Name, &s.X, &s.Y, &s.CX, &s.CY, &s.Render); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		i, ok := index[scene]
		if !ok {
			continue
		}
		c.Scenes[i].Sources = append(c.Scenes[i].Sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	return &c, nil
}

func (r *SQLiteRepo) SaveCollection(c *Collection) (err error) {
	if c == nil {
		return errors.New("nil collection")
	}
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM sources`, `DELETE FROM scenes`} {
		if _, err = tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear collection: %w", err)
		}
	}
	for i, scene := range c.Scenes {
		if _, err = tx.Exec(`INSERT INTO scenes(position, name) VALUES(?, ?)`, i, scene.Name); err != nil {
			return fmt.Errorf("failed to save scene %q: %w", scene.Name, err)
		}
		for j, s := range scene.Sources {
			_, err = tx.Exec(`INSERT INTO sources(scene, position, name, x, y, cx, cy, render) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
				scene.Name, j, s.Name, s.X, s.Y, s.CX, s.CY, s.Render)
			if err != nil {
				return fmt.Errorf("failed to save source %q: %w", s.Name, err)
			}
		}
	}
	v := c.Volumes
	_, err = tx.Exec(`INSERT INTO state(id, current_scene, mic_volume, mic_muted, desktop_volume, desktop_muted)
		VALUES(1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_scene=excluded.current_scene,
			mic_volume=excluded.mic_volume,
			mic_muted=excluded.mic_muted,
			desktop_volume=excluded.desktop_volume,
			desktop_muted=excluded.desktop_muted;`,
		c.Current, v.MicVolume, v.MicMuted, v.DesktopVolume, v.DesktopMuted)
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}
