package main

import (
	"fmt"
	"sort"

	"github.com/banshee-data/parametric-facade/internal/config"
)

type attractorDef struct {
	x, y, strength, radius float64
}

type preset struct {
	name       string
	gridSize   float64
	attractors []attractorDef
}

// Example facades on a 20m x 15m plane.
var presets = map[string]preset{
	"single": {
		name:       "facade_single_attractor",
		gridSize:   1.0,
		attractors: []attractorDef{{10, 7.5, 1.0, 8.0}},
	},
	"multiple": {
		name:     "facade_multiple_attractors",
		gridSize: 0.8,
		attractors: []attractorDef{
			{5, 5, 0.8, 6.0},
			{15, 10, 0.9, 7.0},
			{10, 12, 0.7, 5.0},
		},
	},
	"linear": {
		name:     "facade_linear_pattern",
		gridSize: 0.7,
		attractors: []attractorDef{
			{5, 7.5, 0.8, 4.0},
			{10, 7.5, 0.8, 4.0},
			{15, 7.5, 0.8, 4.0},
			{20, 7.5, 0.8, 4.0},
		},
	},
}

// presetOrder is the order "all" generates in.
var presetOrder = []string{"single", "multiple", "linear"}

func (p preset) config() *config.FacadeConfig {
	cfg := config.EmptyFacadeConfig()
	name := p.name
	width, height, grid := config.DefaultWidth, config.DefaultHeight, p.gridSize
	cfg.Name = &name
	cfg.Width = &width
	cfg.Height = &height
	cfg.GridSize = &grid
	for _, a := range p.attractors {
		strength, radius := a.strength, a.radius
		cfg.Attractors = append(cfg.Attractors, config.AttractorConfig{
			X: a.x, Y: a.y, Strength: &strength, Radius: &radius,
		})
	}
	return cfg
}

// presetConfigs resolves a -preset value to one or more configurations.
func presetConfigs(name string) ([]*config.FacadeConfig, error) {
	if name == "all" {
		out := make([]*config.FacadeConfig, 0, len(presetOrder))
		for _, n := range presetOrder {
			out = append(out, presets[n].config())
		}
		return out, nil
	}
	p, ok := presets[name]
	if !ok {
		known := make([]string, 0, len(presets))
		for n := range presets {
			known = append(known, n)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("unknown preset %q (want one of %v or all)", name, known)
	}
	return []*config.FacadeConfig{p.config()}, nil
}
