package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/diffsplit/internal/adapter/store/sqlite"
	"github.com/bkyoung/diffsplit/internal/store"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRun(id string) store.Run {
	return store.Run{
		RunID:      id,
		Timestamp:  time.Date(2025, 10, 21, 14, 30, 52, 0, time.UTC),
		TargetDir:  "out",
		StripMode:  "auto",
		Masked:     true,
		SkipHeader: false,
	}
}

func TestCreateAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := testRun("run-1")
	require.NoError(t, s.CreateRun(ctx, run))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "missing")
	assert.Error(t, err)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := testRun("run-old")
	older.Timestamp = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testRun("run-new")

	require.NoError(t, s.CreateRun(ctx, older))
	require.NoError(t, s.CreateRun(ctx, newer))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-new", runs[0].RunID)
	assert.Equal(t, "run-old", runs[1].RunID)

	limited, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSaveAndListArtifacts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRun(ctx, testRun("run-1")))

	artifacts := []store.Artifact{
		{RunID: "run-1", Path: "dir/one.txt", LineCount: 8},
		{RunID: "run-1", Path: "two.txt", LineCount: 6},
	}
	for _, a := range artifacts {
		require.NoError(t, s.SaveArtifact(ctx, a))
	}

	got, err := s.ListArtifacts(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, artifacts, got)

	empty, err := s.ListArtifacts(ctx, "run-other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSaveAndListBinaryMarkers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRun(ctx, testRun("run-1")))
	require.NoError(t, s.SaveBinaryMarker(ctx, "run-1", "Binary files a/x and b/x differ"))
	require.NoError(t, s.SaveBinaryMarker(ctx, "run-1", "Binary files a/y and b/y differ"))

	markers, err := s.ListBinaryMarkers(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Binary files a/x and b/x differ",
		"Binary files a/y and b/y differ",
	}, markers)
}
