package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName = "sqlite3"

	// SnapshotKey is the fixed slot the application state persists
	// under. There is only one tenant and no versioning.
	SnapshotKey = "agentdesk-state"
)

// ErrNotFound indicates the requested slot has never been written.
var ErrNotFound = errors.New("snapshot not found")

// Slot is a SQLite-backed key-value store holding serialized state
// snapshots.
type Slot struct {
	db   *sql.DB
	path string
}

// Open bootstraps the snapshot database. An empty dir selects the
// default location under the user config dir.
func Open(ctx context.Context, dir string) (*Slot, error) {
	path, err := resolveDBPath(dir)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	slot := &Slot{db: db, path: path}
	if err := slot.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return slot, nil
}

// Close releases DB resources.
func (s *Slot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Slot) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func resolveDBPath(dir string) (string, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil || base == "" {
			base = os.Getenv("HOME")
			if base == "" {
				return "", fmt.Errorf("cannot resolve data dir: %w", err)
			}
		}
		dir = filepath.Join(base, "agentdesk")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create db dir: %w", err)
	}
	return filepath.Join(dir, "agentdesk.db"), nil
}

func (s *Slot) migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS snapshots (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Save upserts the value for a key.
func (s *Slot) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the value for a key, or ErrNotFound.
func (s *Slot) Load(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return []byte(value), nil
}

// SaveSnapshot writes the application state under the fixed slot key.
// It satisfies the store's Persister interface.
func (s *Slot) SaveSnapshot(data []byte) error {
	return s.Save(context.Background(), SnapshotKey, data)
}

// LoadSnapshot reads the application state from the fixed slot key.
func (s *Slot) LoadSnapshot() ([]byte, error) {
	return s.Load(context.Background(), SnapshotKey)
}
