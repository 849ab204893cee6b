package render

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/parametric-facade/internal/facade"
	"github.com/banshee-data/parametric-facade/internal/fsutil"
	"github.com/banshee-data/parametric-facade/internal/monitoring"
)

// circleSegments is the polyline resolution of an attractor radius.
const circleSegments = 96

// NewPlot builds the facade figure: one polygon per panel, scaled and
// rotated about its centre, plus the optional attractor overlay.
func NewPlot(res facade.Result, o Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = "Width (m)"
	p.Y.Label.Text = "Height (m)"
	p.BackgroundColor = background

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	for _, panel := range res.Panels {
		poly, err := plotter.NewPolygon(panelOutline(panel, res.Grid.GridSize))
		if err != nil {
			return nil, fmt.Errorf("panel (%d,%d): %w", panel.Row, panel.Col, err)
		}
		poly.Color = panelFill(panel.Opacity)
		poly.LineStyle.Color = panelEdge
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}

	if o.ShowAttractors && len(res.Attractors) > 0 {
		if err := addAttractors(p, res); err != nil {
			return nil, err
		}
	}

	p.X.Min, p.X.Max = 0, res.Grid.Width
	p.Y.Min, p.Y.Max = 0, res.Grid.Height
	return p, nil
}

// panelOutline returns the four corners of a panel of side gridSize*scale
// rotated counter-clockwise by the panel rotation.
func panelOutline(panel facade.Panel, gridSize float64) plotter.XYs {
	half := gridSize * panel.Scale / 2
	sin, cos := math.Sincos(panel.Rotation * math.Pi / 180)
	corners := [4][2]float64{{-half, -half}, {half, -half}, {half, half}, {-half, half}}

	pts := make(plotter.XYs, len(corners))
	for i, c := range corners {
		pts[i] = plotter.XY{
			X: panel.X + c[0]*cos - c[1]*sin,
			Y: panel.Y + c[0]*sin + c[1]*cos,
		}
	}
	return pts
}

func addAttractors(p *plot.Plot, res facade.Result) error {
	var inside plotter.XYs
	for _, a := range res.Attractors {
		ring := make(plotter.XYs, circleSegments+1)
		for i := range ring {
			theta := 2 * math.Pi * float64(i) / circleSegments
			ring[i] = plotter.XY{X: a.X + a.Radius*math.Cos(theta), Y: a.Y + a.Radius*math.Sin(theta)}
		}
		line, err := plotter.NewLine(ring)
		if err != nil {
			return fmt.Errorf("attractor radius: %w", err)
		}
		line.Color = radiusColor
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(line)

		// Markers are not clipped by the canvas, so only plot those on the plane.
		if a.X >= 0 && a.X <= res.Grid.Width && a.Y >= 0 && a.Y <= res.Grid.Height {
			inside = append(inside, plotter.XY{X: a.X, Y: a.Y})
		}
	}
	if len(inside) == 0 {
		return nil
	}

	fill, err := plotter.NewScatter(inside)
	if err != nil {
		return fmt.Errorf("attractor markers: %w", err)
	}
	fill.GlyphStyle = draw.GlyphStyle{Color: attractorColor, Radius: vg.Points(5), Shape: draw.CircleGlyph{}}

	edge, err := plotter.NewScatter(inside)
	if err != nil {
		return fmt.Errorf("attractor markers: %w", err)
	}
	edge.GlyphStyle = draw.GlyphStyle{Color: attractorEdge, Radius: vg.Points(5), Shape: draw.RingGlyph{}}

	p.Add(fill, edge)
	p.Legend.Add("attractor", fill)
	p.Legend.Top = true
	return nil
}

// WritePNG renders the facade figure as PNG into w.
func WritePNG(w io.Writer, res facade.Result, o Options) error {
	wt, err := pngWriter(res, o)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

// SavePNG renders to path through fsys and logs the artefact.
func SavePNG(fsys fsutil.FileSystem, path string, res facade.Result, o Options) error {
	wt, err := pngWriter(res, o)
	if err != nil {
		return err
	}
	n, err := fsutil.WriteTo(fsys, path, wt)
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	monitoring.LogArtefact("png", path, n)
	return nil
}

func pngWriter(res facade.Result, o Options) (io.WriterTo, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	p, err := NewPlot(res, o)
	if err != nil {
		return nil, err
	}
	wt, err := p.WriterTo(vg.Length(o.WidthInches)*vg.Inch, vg.Length(o.HeightInches)*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return wt, nil
}
