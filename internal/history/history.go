// Package history archives audit runs in a local SQLite database so scores
// can be compared across time on the same host.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/winposture/winposture/internal/report"
)

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 20

// Entry is the summary row for one recorded run.
type Entry struct {
	ID        int64
	Hostname  string
	Timestamp string
	Score     int
	Findings  int
}

// Store is the run archive, backed by modernc.org/sqlite (pure Go, no CGO).
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens or creates the archive database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		hostname  TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		score     INTEGER NOT NULL,
		findings  INTEGER NOT NULL DEFAULT 0,
		report    TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_host ON runs(hostname);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a finished report and returns the new run id. The report
// timestamp doubles as the run timestamp, so re-recording the same report
// is visible rather than silently deduplicated.
func (s *Store) Record(ctx context.Context, r *report.Report) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (hostname, timestamp, score, findings, report)
		 VALUES (?, ?, ?, ?, ?)`,
		r.System.Hostname, r.System.TimestampUTC, r.Score, len(r.Findings), string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// List returns run summaries, newest first. A non-positive limit applies
// DefaultListLimit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hostname, timestamp, score, findings
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Hostname, &e.Timestamp, &e.Score, &e.Findings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get loads the stored report for one run.
func (s *Store) Get(ctx context.Context, id int64) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %d: %w", id, err)
	}

	var r report.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("parse stored report: %w", err)
	}
	return &r, nil
}
