// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     history
// Description: SQLite persistence for REPL inputs and their outcomes
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	gloxconfig "github.com/msto63/glox/foundation/core/config"
	gloxerror "github.com/msto63/glox/foundation/core/error"
)

// Entry is one evaluated REPL line
type Entry struct {
	ID          string    `json:"id" yaml:"id"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Source      string    `json:"source" yaml:"source"`
	Printed     string    `json:"printed,omitempty" yaml:"printed,omitempty"`
	Diagnostics []string  `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// HadError reports whether the entry produced diagnostics
func (e *Entry) HadError() bool {
	return len(e.Diagnostics) > 0
}

// Filter selects entries for List
type Filter struct {
	Limit      int  // 0 means no limit
	ErrorsOnly bool // only entries with diagnostics
}

// Store persists history entries
type Store interface {
	Add(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Clear(ctx context.Context) (int64, error)
	Prune(ctx context.Context, keep int) (int64, error)
	Close() error
}

// SQLiteStore implements Store on a SQLite database
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "~/.local/share/glox/history.db",
	}
}

// Open creates or opens the history database at cfg.Path
func Open(cfg Config) (*SQLiteStore, error) {
	cfg.Path = gloxconfig.ExpandHome(cfg.Path)
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, gloxerror.Wrap(err, "failed to create history directory").
			WithCode(gloxerror.CodeStorage).
			WithOperation("history.Open").
			WithDetail("path", cfg.Path)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to open history database").
			WithCode(gloxerror.CodeStorage).
			WithOperation("history.Open").
			WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, gloxerror.Wrap(err, "failed to initialize history schema").
			WithCode(gloxerror.CodeStorage).
			WithOperation("history.Open").
			WithDetail("path", cfg.Path)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp DATETIME NOT NULL,
		source TEXT NOT NULL,
		printed TEXT,
		diagnostics TEXT,
		had_error INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_entries_had_error ON entries(had_error);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add stores entry, assigning an ID and timestamp when missing
func (s *SQLiteStore) Add(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	var diagJSON []byte
	if len(entry.Diagnostics) > 0 {
		data, err := json.Marshal(entry.Diagnostics)
		if err != nil {
			return gloxerror.Wrap(err, "failed to encode diagnostics").
				WithCode(gloxerror.CodeStorage).
				WithOperation("history.Add")
		}
		diagJSON = data
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, timestamp, source, printed, diagnostics, had_error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, entry.Source, entry.Printed, string(diagJSON), entry.HadError())
	if err != nil {
		return gloxerror.Wrap(err, "failed to insert history entry").
			WithCode(gloxerror.CodeStorage).
			WithOperation("history.Add")
	}

	return nil
}

// List returns entries newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, source, printed, diagnostics FROM entries WHERE 1=1`
	var args []interface{}

	if filter.ErrorsOnly {
		query += " AND had_error = 1"
	}

	query += " ORDER BY seq DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to query history").
			WithCode(gloxerror.CodeStorage).
			WithOperation("history.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var printed, diagJSON sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Source, &printed, &diagJSON); err != nil {
			return nil, gloxerror.Wrap(err, "failed to scan history entry").
				WithCode(gloxerror.CodeStorage).
				WithOperation("history.List")
		}

		entry.Printed = printed.String
		if diagJSON.Valid && diagJSON.String != "" {
			if err := json.Unmarshal([]byte(diagJSON.String), &entry.Diagnostics); err != nil {
				return nil, gloxerror.Wrap(err, "failed to decode diagnostics").
					WithCode(gloxerror.CodeStorage).
					WithOperation("history.List")
			}
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, gloxerror.Wrap(err, "failed to clear history").
			WithCode(gloxerror.CodeStorage).
			WithOperation("history.Clear")
	}
	return result.RowsAffected()
}

// Prune keeps only the newest keep entries
func (s *SQLiteStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM entries WHERE seq NOT IN (
			SELECT seq FROM entries ORDER BY seq DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, gloxerror.Wrap(err, "failed to prune history").
			WithCode(gloxerror.CodeStorage).
			WithOperation("history.Prune").
			WithDetail("keep", keep)
	}
	return result.RowsAffected()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
