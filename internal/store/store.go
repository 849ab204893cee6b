// Package store archives facade runs in SQLite so earlier configurations and
// their panel data can be listed and reloaded.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/parametric-facade/internal/facade"
)

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = errors.New("facade run not found")

// Store wraps the archive database.
type Store struct {
	*sql.DB
}

// Run is one archived evaluation.
type Run struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Result    facade.Result
	Summary   facade.Summary
}

// RunSummary is the listing form of a Run, without panels.
type RunSummary struct {
	ID             string
	Name           string
	CreatedAt      time.Time
	Grid           facade.Grid
	Falloff        string
	AttractorCount int
	Summary        facade.Summary
}

// Open opens (or creates) the archive at path and applies pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	s := &Store{db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// RecordRun persists run and its panels in a single transaction. An empty
// ID is replaced with a new UUID and a zero CreatedAt with the current time;
// both are written back to run. The summary is recomputed from the panels.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run == nil {
		return fmt.Errorf("nil run")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.Summary = facade.Summarize(run.Result.Panels)

	attractors := run.Result.Attractors
	if attractors == nil {
		attractors = []facade.Attractor{}
	}
	attractorsJSON, err := json.Marshal(attractors)
	if err != nil {
		return fmt.Errorf("failed to encode attractors: %w", err)
	}

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	g := run.Result.Grid
	sum := run.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO facade_runs (
			run_id, name, created_unix_nanos, width, height, grid_size, grid_cols, grid_rows,
			falloff, attractors_json, panel_count, affected_panels,
			mean_influence, min_influence, max_influence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.CreatedAt.UnixNano(), g.Width, g.Height, g.GridSize, g.Cols, g.Rows,
		run.Result.FalloffName, string(attractorsJSON), sum.PanelCount, sum.AffectedPanels,
		sum.MeanInfluence, sum.MinInfluence, sum.MaxInfluence,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO facade_panels (run_id, row_idx, col_idx, x, y, influence, rotation, scale, opacity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare panel insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range run.Result.Panels {
		if _, err := stmt.ExecContext(ctx, run.ID, p.Row, p.Col, p.X, p.Y, p.Influence, p.Rotation, p.Scale, p.Opacity); err != nil {
			return fmt.Errorf("failed to insert panel (%d,%d): %w", p.Row, p.Col, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

const runColumns = `run_id, name, created_unix_nanos, width, height, grid_size, grid_cols, grid_rows,
	falloff, attractors_json, panel_count, affected_panels,
	mean_influence, min_influence, max_influence`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunSummary, []facade.Attractor, error) {
	var (
		rs             RunSummary
		createdNanos   int64
		attractorsJSON string
	)
	err := row.Scan(
		&rs.ID, &rs.Name, &createdNanos,
		&rs.Grid.Width, &rs.Grid.Height, &rs.Grid.GridSize, &rs.Grid.Cols, &rs.Grid.Rows,
		&rs.Falloff, &attractorsJSON, &rs.Summary.PanelCount, &rs.Summary.AffectedPanels,
		&rs.Summary.MeanInfluence, &rs.Summary.MinInfluence, &rs.Summary.MaxInfluence,
	)
	if err != nil {
		return nil, nil, err
	}
	var attractors []facade.Attractor
	if err := json.Unmarshal([]byte(attractorsJSON), &attractors); err != nil {
		return nil, nil, fmt.Errorf("failed to decode attractors for run %s: %w", rs.ID, err)
	}
	rs.CreatedAt = time.Unix(0, createdNanos).UTC()
	rs.AttractorCount = len(attractors)
	return &rs, attractors, nil
}

// GetRun loads a run with its panels in row-major order.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.QueryRowContext(ctx, `SELECT `+runColumns+` FROM facade_runs WHERE run_id = ?`, id)
	rs, attractors, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	rows, err := s.QueryContext(ctx, `
		SELECT row_idx, col_idx, x, y, influence, rotation, scale, opacity
		FROM facade_panels WHERE run_id = ?
		ORDER BY row_idx, col_idx`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query panels for run %s: %w", id, err)
	}
	defer rows.Close()

	panels := make([]facade.Panel, 0, rs.Summary.PanelCount)
	for rows.Next() {
		var p facade.Panel
		if err := rows.Scan(&p.Row, &p.Col, &p.X, &p.Y, &p.Influence, &p.Rotation, &p.Scale, &p.Opacity); err != nil {
			return nil, fmt.Errorf("failed to scan panel: %w", err)
		}
		panels = append(panels, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Run{
		ID:        rs.ID,
		Name:      rs.Name,
		CreatedAt: rs.CreatedAt,
		Result: facade.Result{
			Grid:        rs.Grid,
			FalloffName: rs.Falloff,
			Attractors:  attractors,
			Panels:      panels,
		},
		Summary: rs.Summary,
	}, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.QueryContext(ctx, `SELECT `+runColumns+` FROM facade_runs
		ORDER BY created_unix_nanos DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		rs, _, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rs)
	}
	return out, rows.Err()
}
