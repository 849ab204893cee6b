// Package render draws evaluated facades: a static PNG through gonum/plot
// and an interactive influence heatmap through go-echarts.
package render

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/parametric-facade/internal/config"
)

// Options controls both renderers.
type Options struct {
	Title          string
	ShowAttractors bool
	WidthInches    float64
	HeightInches   float64
}

// DefaultOptions is a 12x9 inch figure with attractors shown.
func DefaultOptions() Options {
	return Options{
		Title:          "Parametric Facade System with Curve Attractors",
		ShowAttractors: true,
		WidthInches:    config.DefaultPlotWidthInches,
		HeightInches:   config.DefaultPlotHeightInches,
	}
}

// OptionsFromConfig reads the render section of a facade config.
func OptionsFromConfig(cfg *config.FacadeConfig) Options {
	opts := DefaultOptions()
	opts.ShowAttractors = cfg.GetShowAttractors()
	opts.WidthInches = cfg.GetPlotWidthInches()
	opts.HeightInches = cfg.GetPlotHeightInches()
	return opts
}

func (o Options) validate() error {
	if o.WidthInches <= 0 || o.HeightInches <= 0 {
		return fmt.Errorf("image size must be positive, got %vx%v inches", o.WidthInches, o.HeightInches)
	}
	return nil
}

var (
	panelColor     = color.RGBA{R: 70, G: 130, B: 180, A: 255} // steel blue
	panelEdge      = color.White
	attractorColor = color.RGBA{R: 220, G: 20, B: 20, A: 255}
	attractorEdge  = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	radiusColor    = color.NRGBA{R: 255, G: 0, B: 0, A: 128}
	background     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	gridColor      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// panelFill applies opacity to the panel colour.
func panelFill(opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{R: panelColor.R, G: panelColor.G, B: panelColor.B, A: uint8(opacity*255 + 0.5)}
}

// viridis is the visual map ramp used by the HTML heatmap.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}
