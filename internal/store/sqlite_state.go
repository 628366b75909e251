package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const stateDBFileName = "state.sqlite"

func (s Store) sqlitePath() string { return filepath.Join(s.Dir, stateDBFileName) }

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a CLI runs beside the TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`)
	return err
}

// LoadSQLite loads the snapshot from the state db. If no snapshot row exists
// but a legacy db.json does, the file is imported once and then removed from
// the load path (the sqlite state becomes authoritative).
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT v FROM state WHERE k = ?`, StateKey).Scan(&raw)
	switch {
	case err == nil:
		return decodeSnapshot([]byte(raw))
	case errors.Is(err, sql.ErrNoRows):
		// One-time import from db.json if present.
		if b, readErr := os.ReadFile(s.dbPath()); readErr == nil && len(b) > 0 {
			legacy, decErr := decodeSnapshot(b)
			if decErr != nil {
				return nil, decErr
			}
			if saveErr := s.SaveSQLite(ctx, legacy); saveErr != nil {
				return nil, saveErr
			}
			return legacy, nil
		}
		return NewDB(), nil
	default:
		return nil, err
	}
}

func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO state(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		StateKey, string(raw), time.Now().UTC().UnixMilli())
	return err
}

// Reset drops the snapshot row, returning the store to its fresh state.
func (s Store) Reset(ctx context.Context) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := db.ExecContext(ctx, `DELETE FROM state WHERE k = ?`, StateKey); err != nil {
		return err
	}
	// Legacy file would be re-imported on the next load; remove it too.
	if err := os.Remove(s.dbPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
