// Package store provides a SQLite-backed activity history for DocuChat.
// Every document ingest and every answered question is recorded so that
// operators can audit what was indexed and what was asked across server
// restarts.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register "sqlite" driver
)

// IngestRecord is one persisted document ingest.
type IngestRecord struct {
	// DocumentName is the logical name the document was indexed under.
	DocumentName string
	// ChunksProduced is how many chunks the document split into.
	ChunksProduced int
	// ChunksWritten is how many chunks were actually written to the index.
	ChunksWritten int
	// Duration is how long the ingest took.
	Duration time.Duration
	// CreatedAt is when the record was persisted.
	CreatedAt time.Time
}

// QuestionRecord is one persisted answered question.
type QuestionRecord struct {
	// Question is the user's question text.
	Question string
	// Sources are the document names the answer was grounded on.
	Sources []string
	// CreatedAt is when the record was persisted.
	CreatedAt time.Time
}

// HistoryStore persists ingest and question activity. Implementations
// must be safe for concurrent use.
type HistoryStore interface {
	// RecordIngest persists a single document ingest.
	RecordIngest(ctx context.Context, rec IngestRecord) error
	// RecordQuestion persists a single answered question.
	RecordQuestion(ctx context.Context, rec QuestionRecord) error
	// RecentIngests returns the most recent n ingests, newest-first.
	RecentIngests(ctx context.Context, n int) ([]IngestRecord, error)
	// RecentQuestions returns the most recent n questions, newest-first.
	RecentQuestions(ctx context.Context, n int) ([]QuestionRecord, error)
	// Close releases any resources held by the store.
	Close() error
}

// SQLiteStore is a HistoryStore backed by a local SQLite database.
type SQLiteStore struct {
	// db is the underlying database connection pool.
	db *sql.DB
}

// DefaultDBPath returns the default path for the history database.
// It resolves to ~/.docuchat/history.db, creating the directory if needed.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("store: could not determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".docuchat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("store: could not create %s: %w", dir, err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens (or creates) a SQLiteStore at the given path and runs the schema
// migration. Use ":memory:" for an in-memory database in tests.
func Open(path string) (*SQLiteStore, error) {
	// WAL mode improves concurrent read performance and is safe for single-host use.
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// Limit to a single writer connection to avoid SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the schema if it does not already exist.
func (s *SQLiteStore) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS ingests (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    document_name   TEXT    NOT NULL,
    chunks_produced INTEGER NOT NULL,
    chunks_written  INTEGER NOT NULL,
    duration_ms     INTEGER NOT NULL,
    created_at      INTEGER NOT NULL  -- Unix timestamp (seconds)
);
CREATE INDEX IF NOT EXISTS idx_ingests_created
    ON ingests (created_at);

CREATE TABLE IF NOT EXISTS questions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    question   TEXT    NOT NULL,
    sources    TEXT    NOT NULL,  -- newline-separated document names
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_questions_created
    ON questions (created_at);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// RecordIngest persists a single document ingest.
func (s *SQLiteStore) RecordIngest(ctx context.Context, rec IngestRecord) error {
	const q = `INSERT INTO ingests (document_name, chunks_produced, chunks_written, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		rec.DocumentName, rec.ChunksProduced, rec.ChunksWritten,
		rec.Duration.Milliseconds(), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store: record ingest: %w", err)
	}
	return nil
}

// RecordQuestion persists a single answered question.
func (s *SQLiteStore) RecordQuestion(ctx context.Context, rec QuestionRecord) error {
	const q = `INSERT INTO questions (question, sources, created_at) VALUES (?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		rec.Question, strings.Join(rec.Sources, "\n"), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store: record question: %w", err)
	}
	return nil
}

// RecentIngests returns the most recent n ingests, newest-first.
func (s *SQLiteStore) RecentIngests(ctx context.Context, n int) ([]IngestRecord, error) {
	const q = `
SELECT document_name, chunks_produced, chunks_written, duration_ms, created_at
FROM   ingests
ORDER  BY created_at DESC, id DESC
LIMIT  ?`

	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("store: recent ingests: %w", err)
	}
	defer rows.Close()

	var recs []IngestRecord
	for rows.Next() {
		var rec IngestRecord
		var durMS, ts int64
		if err := rows.Scan(&rec.DocumentName, &rec.ChunksProduced, &rec.ChunksWritten, &durMS, &ts); err != nil {
			return nil, fmt.Errorf("store: recent ingests scan: %w", err)
		}
		rec.Duration = time.Duration(durMS) * time.Millisecond
		rec.CreatedAt = time.Unix(ts, 0)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: recent ingests rows: %w", err)
	}
	return recs, nil
}

// RecentQuestions returns the most recent n questions, newest-first.
func (s *SQLiteStore) RecentQuestions(ctx context.Context, n int) ([]QuestionRecord, error) {
	const q = `
SELECT question, sources, created_at
FROM   questions
ORDER  BY created_at DESC, id DESC
LIMIT  ?`

	rows, err := s.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("store: recent questions: %w", err)
	}
	defer rows.Close()

	var recs []QuestionRecord
	for rows.Next() {
		var rec QuestionRecord
		var sources string
		var ts int64
		if err := rows.Scan(&rec.Question, &sources, &ts); err != nil {
			return nil, fmt.Errorf("store: recent questions scan: %w", err)
		}
		if sources != "" {
			rec.Sources = strings.Split(sources, "\n")
		}
		rec.CreatedAt = time.Unix(ts, 0)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: recent questions rows: %w", err)
	}
	return recs, nil
}

// Close releases the database connection pool.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return nil
}
