package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrProjectLocked means another editor session holds the project's
// optimistic lock; the save is refused and nothing local is discarded.
var ErrProjectLocked = errors.New("project locked by another session")

// lockTTL is how long a stale lock is honored before being stolen.
const lockTTL = 10 * time.Minute

// ProjectInfo is an index row: the catalog the project picker lists.
type ProjectInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	LockedBy  string
}

// Component is a catalog entry for a draggable component definition.
type Component struct {
	ID       string
	Name     string
	Type     string
	Category string
	Duration float64
	Defaults map[string]any
}

func (s Store) indexPath() string {
	return filepath.Join(s.Dir, "index.sqlite")
}

func (s Store) openIndex(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.indexPath())
	if err != nil {
		return nil, err
	}
	if err := migrateIndex(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrateIndex(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			locked_by TEXT NOT NULL DEFAULT '',
			locked_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS components (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			duration REAL NOT NULL DEFAULT 5,
			defaults TEXT NOT NULL DEFAULT '{}'
		)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate index: %w", err)
		}
	}
	return nil
}

func (s Store) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	db, err := s.openIndex(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, created_at, updated_at, locked_by FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProjectInfo
	for rows.Next() {
		var p ProjectInfo
		var created, updated string
		if err := rows.Scan(&p.ID, &p.Name, &created, &updated, &p.LockedBy); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, created)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s Store) touchProjectIndex(id, name string) error {
	ctx := context.Background()
	db, err := s.openIndex(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.ExecContext(ctx, `
		INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		id, name, now, now)
	return err
}

func (s Store) removeProjectIndex(id string) error {
	ctx := context.Background()
	db, err := s.openIndex(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

// AcquireLock marks the project as being edited by sessionID. A live lock
// held by a different session refuses the acquire; stale locks are stolen.
func (s Store) AcquireLock(ctx context.Context, projectID, sessionID string) error {
	db, err := s.openIndex(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var lockedBy, lockedAt string
	err = db.QueryRowContext(ctx, `SELECT locked_by, locked_at FROM projects WHERE id = ?`, projectID).Scan(&lockedBy, &lockedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if lockedBy != "" && lockedBy != sessionID {
		if at, perr := time.Parse(time.RFC3339, lockedAt); perr == nil && time.Since(at) < lockTTL {
			return ErrProjectLocked
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.ExecContext(ctx, `
		INSERT INTO projects (id, name, created_at, updated_at, locked_by, locked_at)
		VALUES (?, '', ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET locked_by = excluded.locked_by, locked_at = excluded.locked_at`,
		projectID, now, now, sessionID, now)
	return err
}

func (s Store) ReleaseLock(ctx context.Context, projectID, sessionID string) error {
	db, err := s.openIndex(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `UPDATE projects SET locked_by = '', locked_at = '' WHERE id = ? AND locked_by = ?`, projectID, sessionID)
	return err
}

// ListComponents returns the component catalog, seeding the built-in set on
// first use.
func (s Store) ListComponents(ctx context.Context) ([]Component, error) {
	db, err := s.openIndex(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := seedComponents(ctx, db); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT id, name, type, category, duration, defaults FROM components ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Component
	for rows.Next() {
		var c Component
		var defaults string
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Category, &c.Duration, &defaults); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(defaults), &c.Defaults); err != nil {
			c.Defaults = map[string]any{}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func seedComponents(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM components`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, c := range builtinComponents() {
		defaults, err := json.Marshal(c.Defaults)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, `
			INSERT INTO components (id, name, type, category, duration, defaults) VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Type, c.Category, c.Duration, string(defaults)); err != nil {
			return err
		}
	}
	return nil
}
