// ============================================================================
// Raft - Expression Language Front End
// ============================================================================
//
// Package:     history
// Description: SQLite-backed store for interactive prompt entries
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/raft/foundation/core/error"
)

// Entry is one submitted prompt line and its outcome
type Entry struct {
	ID        string
	SessionID string
	Timestamp time.Time
	Source    string
	Output    string
	Error     string
	OK        bool
}

// Filter narrows a List query
type Filter struct {
	SessionID string
	Since     time.Time
	Limit     int
}

// Store persists prompt history
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (and creates if needed) the history database
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, mdwerror.New("history path is empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("history.NewSQLiteStore")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, dbError(err, "failed to create directory", "history.NewSQLiteStore")
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database", "history.NewSQLiteStore")
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			source TEXT NOT NULL,
			output TEXT,
			error TEXT,
			ok INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
		CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return dbError(err, "failed to create schema", "history.initSchema")
	}
	return nil
}

// Record stores a single entry, assigning ID and timestamp when missing
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return mdwerror.New("nil history entry").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("history.Record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, session_id, timestamp, source, output, error, ok)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Timestamp.UTC(), entry.Source, entry.Output, entry.Error, entry.OK)
	if err != nil {
		return dbError(err, "failed to insert history entry", "history.Record")
	}
	return nil
}

// List returns entries newest first; entries with equal timestamps come
// back in reverse insertion order
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, session_id, timestamp, source, output, error, ok FROM entries WHERE 1=1`
	var args []interface{}

	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query history", "history.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var output, errText sql.NullString

		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Timestamp, &entry.Source,
			&output, &errText, &entry.OK); err != nil {
			return nil, dbError(err, "failed to scan history entry", "history.List")
		}
		entry.Output = output.String
		entry.Error = errText.String
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read history", "history.List")
	}

	return entries, nil
}

// Prune removes entries older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune history", "history.Prune")
	}

	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dbError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeDatabaseError).
		WithOperation(operation)
}
