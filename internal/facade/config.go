package facade

import (
	"fmt"

	"github.com/banshee-data/parametric-facade/internal/config"
)

// FromConfig builds a Facade from a loaded FacadeConfig: grid first, then
// the falloff curve, then the attractors in file order.
func FromConfig(cfg *config.FacadeConfig) (*Facade, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfiguration)
	}

	f, err := Configure(cfg.GetWidth(), cfg.GetHeight(), cfg.GetGridSize())
	if err != nil {
		return nil, err
	}

	falloff, err := FalloffByName(cfg.GetFalloff(), cfg.GetFalloffExponent())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	f = f.WithFalloff(falloff)

	for i, a := range cfg.Attractors {
		f, err = f.AddAttractor(a.X, a.Y, a.GetStrength(), a.GetRadius())
		if err != nil {
			return nil, fmt.Errorf("attractors[%d]: %w", i, err)
		}
	}
	return f, nil
}
