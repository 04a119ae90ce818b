package store

import (
	"context"
	"time"
)

// Store defines the persistence layer for split manifests: which runs
// happened, what each run emitted, and which binary files it diverted.
type Store interface {
	// Run management
	CreateRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, runID string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Artifact persistence
	SaveArtifact(ctx context.Context, artifact Artifact) error
	ListArtifacts(ctx context.Context, runID string) ([]Artifact, error)

	// Binary markers
	SaveBinaryMarker(ctx context.Context, runID, marker string) error
	ListBinaryMarkers(ctx context.Context, runID string) ([]string, error)

	// Utility
	Close() error
}

// Run represents a single split execution.
type Run struct {
	RunID      string
	Timestamp  time.Time
	TargetDir  string
	StripMode  string
	Masked     bool
	SkipHeader bool
}

// Artifact records one emitted per-file diff.
type Artifact struct {
	RunID     string
	Path      string
	LineCount int
}
