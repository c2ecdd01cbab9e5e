// Package tablestore persists compiled scan tables in a SQLite database,
// so a generated lexer's tables survive process restarts instead of being
// rebuilt on every run. Tables are keyed by name; every save is stamped
// with a fresh build id.
package tablestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lexforge/automata/scantable"
)

var ErrNotFound = errors.New("tablestore: table not found")

const schema = `
CREATE TABLE IF NOT EXISTS scan_tables (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	states     INTEGER NOT NULL,
	table_json BLOB NOT NULL,
	created_at TEXT NOT NULL
);`

// Store is a SQLite-backed collection of compiled scan tables.
type Store struct {
	db *sql.DB
}

// Entry describes one stored table.
type Entry struct {
	ID        string
	Name      string
	States    int
	CreatedAt time.Time
}

// Open opens the store at path, creating the database and schema if
// needed. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores fm under name, replacing any previous table with that name,
// and returns the build id assigned to this save.
func (s *Store) Save(ctx context.Context, name string, fm *scantable.FastMachine) (string, error) {
	data, err := json.Marshal(fm.Snapshot())
	if err != nil {
		return "", fmt.Errorf("encode table: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scan_tables (id, name, states, table_json, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			states = excluded.states,
			table_json = excluded.table_json,
			created_at = excluded.created_at`,
		id, name, fm.StateCount(), data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save table: %w", err)
	}

	slog.Info("saved scan table",
		"name", name,
		"id", id,
		"states", fm.StateCount(),
	)
	return id, nil
}

// Load retrieves the table stored under name.
func (s *Store) Load(ctx context.Context, name string) (*scantable.FastMachine, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT table_json FROM scan_tables WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}

	var snap scantable.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode table %q: %w", name, err)
	}
	fm, err := scantable.FromSnapshot(&snap)
	if err != nil {
		return nil, fmt.Errorf("rebuild table %q: %w", name, err)
	}
	return fm, nil
}

// List returns all stored tables ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, states, created_at FROM scan_tables ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Name, &e.States, &created); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the table stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scan_tables WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
