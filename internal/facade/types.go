package facade

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// Validation errors. Callers match them with errors.Is; the wrapped message
// names the offending value.
var (
	ErrInvalidConfiguration = errors.New("invalid facade configuration")
	ErrInvalidAttractor     = errors.New("invalid attractor")
)

// Attribute ranges produced by the influence mapping.
const (
	MaxRotationDegrees = 45.0
	MinScale           = 0.5
	MaxScale           = 1.0
	MinOpacity         = 0.3
	MaxOpacity         = 1.0
)

// Grid describes the facade plane and its panel resolution.
// Cols and Rows are derived from the extents and never set directly.
type Grid struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	GridSize float64 `json:"grid_size"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
}

// PanelCount is Cols*Rows.
func (g Grid) PanelCount() int {
	return g.Cols * g.Rows
}

// Center returns the centre of panel (row, col) in facade-plane coordinates.
// The first panel centre sits at (GridSize/2, GridSize/2).
func (g Grid) Center(row, col int) r2.Vec {
	return r2.Vec{
		X: (float64(col) + 0.5) * g.GridSize,
		Y: (float64(row) + 0.5) * g.GridSize,
	}
}

// Attractor is a point whose influence decays to zero at Radius.
type Attractor struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Strength float64 `json:"strength"`
	Radius   float64 `json:"radius"`
}

// Position returns the attractor location as a vector.
func (a Attractor) Position() r2.Vec {
	return r2.Vec{X: a.X, Y: a.Y}
}

// Panel is one grid cell with its computed visual attributes.
// Rotation is in degrees; Scale and Opacity are unitless.
type Panel struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Influence float64 `json:"influence"`
	Rotation  float64 `json:"rotation"`
	Scale     float64 `json:"scale"`
	Opacity   float64 `json:"opacity"`
}

// Result bundles everything a rendering or export collaborator needs from a
// single evaluation.
type Result struct {
	Grid        Grid
	FalloffName string
	Attractors  []Attractor
	Panels      []Panel
}
