package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"designmap-cli/internal/model"
)

const (
	dbFileName = "db.json"

	// StateKey is the single key the whole snapshot lives under, kept for
	// compatibility with exports of the original browser tool.
	StateKey = "design-map-state-v1"
)

// DB is the persisted snapshot: the lesson metadata plus the ordered activity
// list. It is the sole source of truth for editing; the UI is a projection.
type DB struct {
	Meta       model.Meta       `json:"meta"`
	Activities []model.Activity `json:"activities"`
}

// FindActivity returns a pointer into Activities, or nil.
func (db *DB) FindActivity(id int) *model.Activity {
	for i := range db.Activities {
		if db.Activities[i].ID == id {
			return &db.Activities[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot. Background work (async exports)
// must read from its own copy: the UI loop keeps mutating the live record list.
func (db *DB) Clone() *DB {
	c := &DB{
		Meta:       db.Meta,
		Activities: make([]model.Activity, len(db.Activities)),
	}
	copy(c.Activities, db.Activities)
	return c
}

func NewDB() *DB {
	return &DB{
		Meta:       model.Meta{TechIntegration: model.TechIntegrationDefault},
		Activities: []model.Activity{},
	}
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .designmap directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".designmap")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".designmap"), nil
}

func (s Store) Ensure() error {
	if s.Dir == "" {
		return errors.New("store dir not set")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string { return filepath.Join(s.Dir, dbFileName) }

// Load reads the snapshot from the SQLite state, importing a legacy db.json
// once if the state is empty. A missing store loads as an empty snapshot.
func (s Store) Load() (*DB, error) {
	return s.LoadSQLite(context.Background())
}

// Save persists the full snapshot. Called after every mutating edit;
// last-write-wins, no conflict detection.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

// LoadJSON reads a snapshot from an arbitrary JSON file (exports, fixtures).
func LoadJSON(path string) (*DB, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(b)
}

// SaveJSON writes the snapshot to a JSON file via rename for atomicity.
func SaveJSON(path string, db *DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func decodeSnapshot(b []byte) (*DB, error) {
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if db.Activities == nil {
		db.Activities = []model.Activity{}
	}
	if db.Meta.TechIntegration == "" {
		db.Meta.TechIntegration = model.TechIntegrationDefault
	}
	return &db, nil
}

// SeedIfEmpty appends one blank activity to a fresh store, matching the
// startup lifecycle: if no snapshot exists, one blank activity is seeded.
func SeedIfEmpty(db *DB) bool {
	if len(db.Activities) > 0 {
		return false
	}
	db.Activities = append(db.Activities, model.NewActivity(1))
	return true
}
