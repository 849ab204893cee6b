package facade

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate statistics over a panel slice.
type Summary struct {
	PanelCount     int     `json:"panel_count"`
	AffectedPanels int     `json:"affected_panels"` // panels with influence > 0
	MeanInfluence  float64 `json:"mean_influence"`
	MinInfluence   float64 `json:"min_influence"`
	MaxInfluence   float64 `json:"max_influence"`
}

// Summarize computes influence statistics. An empty slice yields a zero
// Summary.
func Summarize(panels []Panel) Summary {
	if len(panels) == 0 {
		return Summary{}
	}
	values := make([]float64, len(panels))
	affected := 0
	for i, p := range panels {
		values[i] = p.Influence
		if p.Influence > 0 {
			affected++
		}
	}
	return Summary{
		PanelCount:     len(panels),
		AffectedPanels: affected,
		MeanInfluence:  stat.Mean(values, nil),
		MinInfluence:   floats.Min(values),
		MaxInfluence:   floats.Max(values),
	}
}
