// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// =============================================================================
// TYPES
// =============================================================================

// Action says what happened to the file.
type Action string

const (
	ActionLoad Action = "load"
	ActionSave Action = "save"
)

// Entry is one history row.
type Entry struct {
	ID       string
	Slot     int
	Path     string
	Encoding string
	Action   Action
	At       time.Time
}

// ErrNotFound is returned when no entry matches.
var ErrNotFound = errors.New("history entry not found")

// =============================================================================
// STORE
// =============================================================================

// Store is the SQLite-backed history log. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS recent_files (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		id        TEXT NOT NULL UNIQUE,
		slot      INTEGER NOT NULL,
		path      TEXT NOT NULL,
		encoding  TEXT NOT NULL,
		action    TEXT NOT NULL,
		at        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_recent_slot ON recent_files(slot, seq DESC);
	CREATE INDEX IF NOT EXISTS idx_recent_path ON recent_files(path);
	`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends e, assigning ID and At when unset, and returns the stored
// entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Path == "" {
		return Entry{}, fmt.Errorf("record history: empty path")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = s.now()
	}
	e.At = e.At.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recent_files (id, slot, path, encoding, action, at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Slot, e.Path, e.Encoding, string(e.Action), e.At.Format(time.RFC3339Nano))
	if err != nil {
		return Entry{}, fmt.Errorf("record history: %w", err)
	}
	return e, nil
}

// Last returns the newest entry for slot.
func (s *Store) Last(ctx context.Context, slot int) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slot, path, encoding, action, at FROM recent_files
		 WHERE slot = ? ORDER BY seq DESC LIMIT 1`, slot)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("last history entry: %w", err)
	}
	return e, nil
}

// Recent returns the newest entry per distinct path, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slot, path, encoding, action, at FROM recent_files
		 WHERE seq IN (SELECT MAX(seq) FROM recent_files GROUP BY path)
		 ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("recent history: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Forget removes every entry for path.
func (s *Store) Forget(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forget history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e      Entry
		action string
		at     string
	)
	if err := sc.Scan(&e.ID, &e.Slot, &e.Path, &e.Encoding, &action, &at); err != nil {
		return Entry{}, err
	}
	e.Action = Action(action)
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Entry{}, fmt.Errorf("parse time %q: %w", at, err)
	}
	e.At = t
	return e, nil
}
