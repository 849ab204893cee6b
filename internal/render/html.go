package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/parametric-facade/internal/facade"
	"github.com/banshee-data/parametric-facade/internal/fsutil"
	"github.com/banshee-data/parametric-facade/internal/monitoring"
)

// pixelsPerInch converts the figure size to the chart size in the page.
const pixelsPerInch = 75

// NewHeatmap builds a scatter chart of panel centres coloured by influence.
// The third value of each point is the influence; the visual map reads it.
func NewHeatmap(res facade.Result, o Options) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(res.Panels))
	for _, p := range res.Panels {
		data = append(data, opts.ScatterData{
			Name:  fmt.Sprintf("r%d c%d", p.Row, p.Col),
			Value: []interface{}{p.X, p.Y, p.Influence, p.Rotation, p.Scale, p.Opacity},
		})
	}

	symbol := symbolSize(res.Grid, o)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: o.Title,
			Width:     fmt.Sprintf("%dpx", int(o.WidthInches*pixelsPerInch)),
			Height:    fmt.Sprintf("%dpx", int(o.HeightInches*pixelsPerInch)),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    o.Title,
			Subtitle: fmt.Sprintf("%dx%d panels, grid %gm, %d attractors, falloff %s", res.Grid.Cols, res.Grid.Rows, res.Grid.GridSize, len(res.Attractors), res.FalloffName),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: res.Grid.Width, Name: "Width (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: res.Grid.Height, Name: "Height (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	scatter.AddSeries("influence", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: symbol}))

	if o.ShowAttractors && len(res.Attractors) > 0 {
		points := make([]opts.ScatterData, 0, len(res.Attractors))
		for i, a := range res.Attractors {
			points = append(points, opts.ScatterData{
				Name:   fmt.Sprintf("attractor %d (r=%g)", i, a.Radius),
				Value:  []interface{}{a.X, a.Y, 1, a.Strength, a.Radius},
				Symbol: "diamond",
			})
		}
		scatter.AddSeries("attractors", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 16}))
	}
	return scatter
}

// symbolSize is the marker size in pixels: 80% of one panel pitch along the
// tighter axis, so markers do not overlap on tall or wide facades.
func symbolSize(g facade.Grid, o Options) int {
	pitch := min(g.GridSize/g.Width*o.WidthInches, g.GridSize/g.Height*o.HeightInches)
	return max(int(pitch*pixelsPerInch*0.8), 3)
}

// WriteHTML renders the heatmap page into w.
func WriteHTML(w io.Writer, res facade.Result, o Options) error {
	if err := o.validate(); err != nil {
		return err
	}
	if err := NewHeatmap(res, o).Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// SaveHTML renders the heatmap page to path through fsys and logs the artefact.
func SaveHTML(fsys fsutil.FileSystem, path string, res facade.Result, o Options) error {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, res, o); err != nil {
		return err
	}
	n, err := fsutil.WriteTo(fsys, path, &buf)
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	monitoring.LogArtefact("html", path, n)
	return nil
}
