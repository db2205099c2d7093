// Package storage persists accepted and rejected records to SQLite so runs
// can be queried and re-analyzed after the fact.
package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jonesrussell/painminer/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS accepted (
	id               TEXT PRIMARY KEY,
	thread_title     TEXT NOT NULL,
	body             TEXT NOT NULL,
	url              TEXT NOT NULL,
	type             TEXT NOT NULL,
	category         TEXT NOT NULL,
	pain_score       REAL NOT NULL,
	reason           TEXT NOT NULL,
	pre_rank_score   REAL NOT NULL,
	pre_rank_signals TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rejected (
	id           TEXT PRIMARY KEY,
	thread_title TEXT NOT NULL,
	reason       TEXT NOT NULL,
	score        REAL NOT NULL,
	body_preview TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_accepted_category ON accepted(category);
`

// Store wraps the SQLite database holding run output.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at path, creating the schema if
// needed.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// WriteAccepted upserts one accepted record. Re-runs over the same comment
// replace the earlier row rather than duplicating it.
func (s *Store) WriteAccepted(rec domain.AcceptedRecord) error {
	const q = `INSERT OR REPLACE INTO accepted
		(id, thread_title, body, url, type, category, pain_score, reason, pre_rank_score, pre_rank_signals)
		VALUES (:id, :thread_title, :body, :url, :type, :category, :pain_score, :reason, :pre_rank_score, :pre_rank_signals)`
	if _, err := s.db.NamedExec(q, rec); err != nil {
		return fmt.Errorf("insert accepted record %s: %w", rec.ID, err)
	}
	return nil
}

// WriteRejected upserts one rejection audit row.
func (s *Store) WriteRejected(rec domain.RejectedRecord) error {
	const q = `INSERT OR REPLACE INTO rejected
		(id, thread_title, reason, score, body_preview)
		VALUES (:id, :thread_title, :reason, :score, :body_preview)`
	if _, err := s.db.NamedExec(q, rec); err != nil {
		return fmt.Errorf("insert rejected record %s: %w", rec.ID, err)
	}
	return nil
}

// Accepted returns all stored accepted records, highest pain score first.
func (s *Store) Accepted() ([]domain.AcceptedRecord, error) {
	var recs []domain.AcceptedRecord
	if err := s.db.Select(&recs, `SELECT * FROM accepted ORDER BY pain_score DESC, id`); err != nil {
		return nil, fmt.Errorf("query accepted records: %w", err)
	}
	return recs, nil
}

// CategoryCounts returns how many accepted records each category holds.
func (s *Store) CategoryCounts() (map[domain.Category]int, error) {
	rows, err := s.db.Queryx(`SELECT category, COUNT(*) AS n FROM accepted GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("query category counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Category]int)
	for rows.Next() {
		var category domain.Category
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[category] = n
	}
	return counts, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
