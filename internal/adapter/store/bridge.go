package store

import (
	"context"

	"github.com/bkyoung/diffsplit/internal/store"
	"github.com/bkyoung/diffsplit/internal/usecase/split"
)

// Bridge decorates a split.Sink so that everything the sink writes is also
// recorded in a manifest store under one run. This keeps the split service
// unaware of persistence: the manifest rides along on the sink port.
type Bridge struct {
	sink  split.Sink
	store store.Store
	runID string
}

// NewBridge registers the run in the store and returns a sink that
// delegates to inner while recording each write.
func NewBridge(ctx context.Context, inner split.Sink, st store.Store, run store.Run) (*Bridge, error) {
	if err := st.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	return &Bridge{sink: inner, store: st, runID: run.RunID}, nil
}

// RunID returns the manifest run this bridge records under.
func (b *Bridge) RunID() string {
	return b.runID
}

// WriteRecord writes through to the inner sink, then records the artifact.
func (b *Bridge) WriteRecord(ctx context.Context, relPath string, lines []string) error {
	if err := b.sink.WriteRecord(ctx, relPath, lines); err != nil {
		return err
	}
	return b.store.SaveArtifact(ctx, store.Artifact{
		RunID:     b.runID,
		Path:      relPath,
		LineCount: len(lines),
	})
}

// WriteBinaryList writes through to the inner sink, then records each
// marker.
func (b *Bridge) WriteBinaryList(ctx context.Context, markers []string) error {
	if err := b.sink.WriteBinaryList(ctx, markers); err != nil {
		return err
	}
	for _, marker := range markers {
		if err := b.store.SaveBinaryMarker(ctx, b.runID, marker); err != nil {
			return err
		}
	}
	return nil
}
