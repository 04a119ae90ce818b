package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bkyoung/diffsplit/internal/store"
	_ "github.com/mattn/go-sqlite3"
)

// Store implements the store.Store interface using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}

	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables and indexes if they don't exist.
func (s *Store) createSchema() error {
	schema := `
	-- Metadata about each split run
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		target_dir TEXT NOT NULL,
		strip_mode TEXT NOT NULL,
		masked INTEGER NOT NULL DEFAULT 0,
		skip_header INTEGER NOT NULL DEFAULT 0
	);

	-- Per-file artifacts emitted by a run
	CREATE TABLE IF NOT EXISTS artifacts (
		artifact_id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		path TEXT NOT NULL,
		line_count INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	-- Binary file markers diverted from splitting
	CREATE TABLE IF NOT EXISTS binary_markers (
		marker_id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		marker TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_run ON artifacts(run_id);
	CREATE INDEX IF NOT EXISTS idx_binary_markers_run ON binary_markers(run_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

// CreateRun saves a run record.
func (s *Store) CreateRun(ctx context.Context, run store.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, timestamp, target_dir, strip_mode, masked, skip_header)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Timestamp.Unix(), run.TargetDir, run.StripMode,
		boolToInt(run.Masked), boolToInt(run.SkipHeader))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, timestamp, target_dir, strip_mode, masked, skip_header
		 FROM runs WHERE run_id = ?`, runID)

	var run store.Run
	var ts int64
	var masked, skipHeader int
	if err := row.Scan(&run.RunID, &ts, &run.TargetDir, &run.StripMode, &masked, &skipHeader); err != nil {
		return store.Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	run.Timestamp = time.Unix(ts, 0).UTC()
	run.Masked = masked != 0
	run.SkipHeader = skipHeader != 0
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, timestamp, target_dir, strip_mode, masked, skip_header
		 FROM runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var run store.Run
		var ts int64
		var masked, skipHeader int
		if err := rows.Scan(&run.RunID, &ts, &run.TargetDir, &run.StripMode, &masked, &skipHeader); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp = time.Unix(ts, 0).UTC()
		run.Masked = masked != 0
		run.SkipHeader = skipHeader != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveArtifact records one emitted per-file diff.
func (s *Store) SaveArtifact(ctx context.Context, artifact store.Artifact) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (run_id, path, line_count) VALUES (?, ?, ?)`,
		artifact.RunID, artifact.Path, artifact.LineCount)
	if err != nil {
		return fmt.Errorf("insert artifact: %w", err)
	}
	return nil
}

// ListArtifacts returns a run's artifacts in insertion order.
func (s *Store) ListArtifacts(ctx context.Context, runID string) ([]store.Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, path, line_count FROM artifacts WHERE run_id = ? ORDER BY artifact_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []store.Artifact
	for rows.Next() {
		var a store.Artifact
		if err := rows.Scan(&a.RunID, &a.Path, &a.LineCount); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// SaveBinaryMarker records one diverted binary marker line.
func (s *Store) SaveBinaryMarker(ctx context.Context, runID, marker string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO binary_markers (run_id, marker) VALUES (?, ?)`, runID, marker)
	if err != nil {
		return fmt.Errorf("insert binary marker: %w", err)
	}
	return nil
}

// ListBinaryMarkers returns a run's binary markers in insertion order.
func (s *Store) ListBinaryMarkers(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT marker FROM binary_markers WHERE run_id = ? ORDER BY marker_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list binary markers: %w", err)
	}
	defer rows.Close()

	var markers []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan binary marker: %w", err)
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
