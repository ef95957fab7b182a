// Package history keeps per-run stat summaries in a local SQLite database so
// repeated performance runs can be compared later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/taskmeter/taskmeter/packages/stats"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL,
	samples INTEGER NOT NULL,
	min REAL NOT NULL,
	max REAL NOT NULL,
	mean REAL NOT NULL,
	stdev REAL NOT NULL
)`

// Run is one stored stat summary
type Run struct {
	ID         int64
	Label      string
	RecordedAt time.Time
	Stats      stats.Stats
}

// Store persists run summaries
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// Open opens (and if needed initializes) the database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history database: %w", err)
	}

	return &Store{db: db, queryTimeout: 30 * time.Second}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores one labelled stat summary
func (s *Store) RecordRun(label string, st stats.Stats) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (label, recorded_at, samples, min, max, mean, stdev)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		label, time.Now().UTC(), st.Samples, st.Min, st.Max, st.Mean, st.StdDev)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Runs returns all stored runs, oldest first
func (s *Store) Runs() ([]Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, recorded_at, samples, min, max, mean, stdev
		 FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Label, &r.RecordedAt,
			&r.Stats.Samples, &r.Stats.Min, &r.Stats.Max, &r.Stats.Mean, &r.Stats.StdDev); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}
