package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one recorded analysis run.
type Run struct {
	ID             string
	Input          string
	WindowSize     int
	CellSizeMeters float64
	Rows           int
	Cols           int
	Strategy       string // "sequential" or "chunked"
	TileRows       int
	TileCols       int
	Duration       time.Duration
	RugosityMin    float64
	RugosityMean   float64
	RugosityMax    float64
	CreatedAt      time.Time
}

// RunStore manages persistence for analysis runs.
type RunStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the run history database at path.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			window_size INTEGER NOT NULL,
			cell_size_m DOUBLE NOT NULL,
			rows INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			strategy TEXT NOT NULL,
			tile_rows INTEGER NOT NULL,
			tile_cols INTEGER NOT NULL,
			duration_ms BIGINT NOT NULL,
			rugosity_min DOUBLE NOT NULL,
			rugosity_mean DOUBLE NOT NULL,
			rugosity_max DOUBLE NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &RunStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *RunStore) Close() error { return s.db.Close() }

// RecordRun inserts one run, assigning an ID and timestamp if unset.
func (s *RunStore) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (
			run_id, input, window_size, cell_size_m, rows, cols,
			strategy, tile_rows, tile_cols, duration_ms,
			rugosity_min, rugosity_mean, rugosity_max, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.WindowSize, run.CellSizeMeters, run.Rows, run.Cols,
		run.Strategy, run.TileRows, run.TileCols, run.Duration.Milliseconds(),
		run.RugosityMin, run.RugosityMean, run.RugosityMax, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means
// a default of 50.
func (s *RunStore) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT run_id, input, window_size, cell_size_m, rows, cols,
		       strategy, tile_rows, tile_cols, duration_ms,
		       rugosity_min, rugosity_mean, rugosity_max, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(
			&r.ID, &r.Input, &r.WindowSize, &r.CellSizeMeters, &r.Rows, &r.Cols,
			&r.Strategy, &r.TileRows, &r.TileCols, &durationMS,
			&r.RugosityMin, &r.RugosityMean, &r.RugosityMax, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
