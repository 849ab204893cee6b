package facade

import (
	"fmt"
	"math"
)

// Falloff maps normalised closeness c in [0,1] (1 at the attractor, 0 at its
// radius) to a weight in [0,1]. Every curve satisfies f(0)=0, f(1)=1 and is
// non-decreasing on [0,1].
type Falloff struct {
	Name string
	fn   func(c float64) float64
}

// Weight evaluates the curve. c is clamped to [0,1] first.
func (f Falloff) Weight(c float64) float64 {
	c = clamp01(c)
	if f.fn == nil {
		return Smoothstep.fn(c)
	}
	return f.fn(c)
}

var (
	// Linear weights closeness directly.
	Linear = Falloff{Name: "linear", fn: func(c float64) float64 { return c }}

	// Smoothstep eases in and out: 3c²-2c³.
	Smoothstep = Falloff{Name: "smoothstep", fn: func(c float64) float64 { return c * c * (3 - 2*c) }}
)

// Power returns the curve c^exponent. Exponents above 1 concentrate the
// effect near the attractor, below 1 spread it out.
func Power(exponent float64) (Falloff, error) {
	if math.IsNaN(exponent) || math.IsInf(exponent, 0) || exponent <= 0 {
		return Falloff{}, fmt.Errorf("power falloff exponent must be positive, got %v", exponent)
	}
	return Falloff{
		Name: fmt.Sprintf("power(%g)", exponent),
		fn:   func(c float64) float64 { return math.Pow(c, exponent) },
	}, nil
}

// FalloffByName resolves a curve name as it appears in configuration files.
// exponent is only read for "power".
func FalloffByName(name string, exponent float64) (Falloff, error) {
	switch name {
	case "", "smoothstep":
		return Smoothstep, nil
	case "linear":
		return Linear, nil
	case "power":
		return Power(exponent)
	default:
		return Falloff{}, fmt.Errorf("unknown falloff %q", name)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
