package facade

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// gridTolerance absorbs floating point error in width/grid_size so that
// exact multiples (0.3/0.1) floor to the expected count.
const gridTolerance = 1e-9

// MaxPanels bounds the number of panels a grid may hold, per axis and in
// total. Configure rejects anything larger.
const MaxPanels = 1 << 20

// Facade is an immutable facade configuration: the grid, the attractors in
// insertion order, and the falloff curve. The zero value is not usable;
// construct one with Configure.
type Facade struct {
	grid       Grid
	attractors []Attractor
	falloff    Falloff
}

// Configure builds the panel grid for a width x height plane with panel
// centres spaced gridSize apart. Columns and rows are
// floor(width/gridSize) and floor(height/gridSize); grids of more than
// MaxPanels panels are rejected.
func Configure(width, height, gridSize float64) (*Facade, error) {
	for _, v := range []struct {
		name  string
		value float64
	}{{"width", width}, {"height", height}, {"grid_size", gridSize}} {
		if !isFinite(v.value) || v.value <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive finite number, got %v", ErrInvalidConfiguration, v.name, v.value)
		}
	}
	if gridSize > width || gridSize > height {
		return nil, fmt.Errorf("%w: grid_size %v exceeds facade extents %vx%v", ErrInvalidConfiguration, gridSize, width, height)
	}

	// Counts stay in float64 until bounded; int conversion of a huge
	// quotient is implementation-defined.
	cols := math.Floor(width/gridSize + gridTolerance)
	rows := math.Floor(height/gridSize + gridTolerance)
	if cols > MaxPanels || rows > MaxPanels || cols*rows > MaxPanels {
		return nil, fmt.Errorf("%w: %vx%v grid at grid_size %v exceeds %d panels", ErrInvalidConfiguration, width, height, gridSize, MaxPanels)
	}

	grid := Grid{
		Width:    width,
		Height:   height,
		GridSize: gridSize,
		Cols:     int(cols),
		Rows:     int(rows),
	}
	return &Facade{grid: grid, falloff: Smoothstep}, nil
}

// Grid returns the grid description.
func (f *Facade) Grid() Grid {
	return f.grid
}

// Falloff returns the falloff curve in use.
func (f *Facade) Falloff() Falloff {
	return f.falloff
}

// Attractors returns a copy of the attractor list in insertion order.
func (f *Facade) Attractors() []Attractor {
	out := make([]Attractor, len(f.attractors))
	copy(out, f.attractors)
	return out
}

// AddAttractor returns a new Facade with the attractor appended. The
// receiver is left untouched, including on error. Strength is unbounded and
// the position may lie outside the plane; radius must be positive.
func (f *Facade) AddAttractor(x, y, strength, radius float64) (*Facade, error) {
	if !isFinite(radius) || radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be a positive finite number, got %v", ErrInvalidAttractor, radius)
	}
	if !isFinite(x) || !isFinite(y) || !isFinite(strength) {
		return nil, fmt.Errorf("%w: position and strength must be finite, got (%v, %v) strength %v", ErrInvalidAttractor, x, y, strength)
	}

	next := f.clone(1)
	next.attractors = append(next.attractors, Attractor{X: x, Y: y, Strength: strength, Radius: radius})
	return next, nil
}

// WithFalloff returns a copy of the facade that uses fn.
func (f *Facade) WithFalloff(fn Falloff) *Facade {
	next := f.clone(0)
	next.falloff = fn
	return next
}

func (f *Facade) clone(extra int) *Facade {
	attractors := make([]Attractor, len(f.attractors), len(f.attractors)+extra)
	copy(attractors, f.attractors)
	return &Facade{grid: f.grid, attractors: attractors, falloff: f.falloff}
}

// Contribution is the unclamped influence of a single attractor at p:
// zero at or beyond the radius, otherwise strength*falloff(1-d/radius).
func (f *Facade) Contribution(a Attractor, p r2.Vec) float64 {
	d := r2.Norm(r2.Sub(p, a.Position()))
	if d >= a.Radius {
		return 0
	}
	return a.Strength * f.falloff.Weight(1-d/a.Radius)
}

// InfluenceAt sums every attractor's contribution at (x, y) and clamps the
// total to [0,1].
func (f *Facade) InfluenceAt(x, y float64) float64 {
	return f.influence(r2.Vec{X: x, Y: y})
}

func (f *Facade) influence(p r2.Vec) float64 {
	var total float64
	for _, a := range f.attractors {
		total += f.Contribution(a, p)
	}
	return clamp01(total)
}

// ComputePanels evaluates every panel in row-major order (row ascending,
// then column ascending). Output depends only on the receiver.
func (f *Facade) ComputePanels() []Panel {
	panels := make([]Panel, 0, f.grid.PanelCount())
	for row := 0; row < f.grid.Rows; row++ {
		for col := 0; col < f.grid.Cols; col++ {
			c := f.grid.Center(row, col)
			v := f.influence(c)
			rotation, scale, opacity := Attributes(v)
			panels = append(panels, Panel{
				Row:       row,
				Col:       col,
				X:         c.X,
				Y:         c.Y,
				Influence: v,
				Rotation:  rotation,
				Scale:     scale,
				Opacity:   opacity,
			})
		}
	}
	return panels
}

// Evaluate computes the panels and bundles them with the grid and
// attractors for collaborators.
func (f *Facade) Evaluate() Result {
	return Result{
		Grid:        f.grid,
		FalloffName: f.falloff.Name,
		Attractors:  f.Attractors(),
		Panels:      f.ComputePanels(),
	}
}

// Attributes maps an influence value to rotation (degrees), scale and
// opacity. v is clamped to [0,1]; the three outputs are independent linear
// maps of it.
func Attributes(v float64) (rotation, scale, opacity float64) {
	v = clamp01(v)
	rotation = v * MaxRotationDegrees
	scale = MinScale + v*(MaxScale-MinScale)
	opacity = MinOpacity + v*(MaxOpacity-MinOpacity)
	return rotation, scale, opacity
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
