// Package export serialises evaluated facades to the JSON document consumed
// by downstream BIM tooling (Revit, Rhino).
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/parametric-facade/internal/facade"
	"github.com/banshee-data/parametric-facade/internal/fsutil"
	"github.com/banshee-data/parametric-facade/internal/monitoring"
	"github.com/banshee-data/parametric-facade/internal/version"
)

// Document is the top-level export object. Panels are in row-major order.
type Document struct {
	Metadata   Metadata           `json:"metadata"`
	Config     Config             `json:"config"`
	Attractors []facade.Attractor `json:"attractors"`
	Panels     []facade.Panel     `json:"panels"`
}

// Metadata describes the run that produced the document.
type Metadata struct {
	RunID            string    `json:"run_id"`
	Name             string    `json:"name,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
	GeneratorVersion string    `json:"generator_version"`
	Falloff          string    `json:"falloff"`
	TotalPanels      int       `json:"total_panels"`
}

// Config mirrors the facade grid. Cols and Rows are informational; importers
// can recompute them from the extents.
type Config struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	GridSize float64 `json:"grid_size"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
}

// NewDocument wraps an evaluation result. A fresh run id is generated when
// runID is empty.
func NewDocument(res facade.Result, name, runID string, generatedAt time.Time) Document {
	if runID == "" {
		runID = uuid.NewString()
	}
	attractors := res.Attractors
	if attractors == nil {
		attractors = []facade.Attractor{}
	}
	panels := res.Panels
	if panels == nil {
		panels = []facade.Panel{}
	}
	return Document{
		Metadata: Metadata{
			RunID:            runID,
			Name:             name,
			GeneratedAt:      generatedAt.UTC(),
			GeneratorVersion: version.String(),
			Falloff:          res.FalloffName,
			TotalPanels:      len(panels),
		},
		Config: Config{
			Width:    res.Grid.Width,
			Height:   res.Grid.Height,
			GridSize: res.Grid.GridSize,
			Cols:     res.Grid.Cols,
			Rows:     res.Grid.Rows,
		},
		Attractors: attractors,
		Panels:     panels,
	}
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode facade document: %w", err)
	}
	return nil
}

// Decode reads a document and checks that metadata.total_panels agrees with
// the panel list.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode facade document: %w", err)
	}
	if doc.Metadata.TotalPanels != len(doc.Panels) {
		return nil, fmt.Errorf("total_panels is %d but document has %d panels", doc.Metadata.TotalPanels, len(doc.Panels))
	}
	if want := doc.Config.Cols * doc.Config.Rows; want != len(doc.Panels) {
		return nil, fmt.Errorf("grid %dx%d expects %d panels, document has %d", doc.Config.Cols, doc.Config.Rows, want, len(doc.Panels))
	}
	return &doc, nil
}

// WriteFile encodes doc to path through fsys and logs the artefact.
func WriteFile(fsys fsutil.FileSystem, path string, doc Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}
	n, err := fsutil.WriteTo(fsys, path, &buf)
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	monitoring.LogArtefact("json", path, n)
	return nil
}
