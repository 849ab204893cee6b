package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/parametric-facade/internal/facade"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "facade.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func evaluate(t *testing.T, attractors ...facade.Attractor) facade.Result {
	t.Helper()
	f, err := facade.Configure(4, 3, 1)
	require.NoError(t, err)
	for _, a := range attractors {
		f, err = f.AddAttractor(a.X, a.Y, a.Strength, a.Radius)
		require.NoError(t, err)
	}
	return f.Evaluate()
}

func TestOpen_AppliesMigrations(t *testing.T) {
	s := openTestStore(t)

	version, dirty, err := s.MigrateVersion()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(2), version)

	// A second MigrateUp is a no-op.
	require.NoError(t, s.MigrateUp())
}

func TestRecordAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	res := evaluate(t, facade.Attractor{X: 2, Y: 1.5, Strength: 1, Radius: 2})
	run := &Run{Name: "small", CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Result: res}
	require.NoError(t, s.RecordRun(ctx, run))
	require.NotEmpty(t, run.ID)
	assert.Equal(t, 12, run.Summary.PanelCount)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "small", got.Name)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, run.Summary, got.Summary)
	if diff := cmp.Diff(res, got.Result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordRun_NoAttractors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := &Run{ID: "empty", Name: "empty", Result: evaluate(t)}
	require.NoError(t, s.RecordRun(ctx, run))
	assert.False(t, run.CreatedAt.IsZero())

	got, err := s.GetRun(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got.Result.Attractors)
	assert.Len(t, got.Result.Panels, 12)
	assert.Equal(t, 0, got.Summary.AffectedPanels)
}

func TestRecordRun_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordRun(ctx, &Run{ID: "dup", Result: evaluate(t)}))
	err := s.RecordRun(ctx, &Run{ID: "dup", Result: evaluate(t)})
	assert.Error(t, err)

	// The failed insert must not leave extra panels behind.
	got, err := s.GetRun(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, got.Result.Panels, 12)
}

func TestGetRun_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrRunNotFound), "expected ErrRunNotFound, got %v", err)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		run := &Run{
			Name:      name,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Result:    evaluate(t, facade.Attractor{X: 1, Y: 1, Strength: 0.5, Radius: 1}),
		}
		require.NoError(t, s.RecordRun(ctx, run))
	}

	all, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	names := []string{all[0].Name, all[1].Name, all[2].Name}
	assert.Equal(t, []string{"third", "second", "first"}, names)
	assert.Equal(t, 1, all[0].AttractorCount)
	assert.Equal(t, 4, all[0].Grid.Cols)
	assert.Equal(t, 3, all[0].Grid.Rows)
	assert.Equal(t, "smoothstep", all[0].Falloff)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, "third", limited[0].Name)
}
