package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical facade defaults file.
const DefaultConfigPath = "config/facade.defaults.json"

// Defaults used when a field is omitted from the JSON file.
const (
	DefaultWidth            = 20.0
	DefaultHeight           = 15.0
	DefaultGridSize         = 1.0
	DefaultStrength         = 1.0
	DefaultRadius           = 10.0
	DefaultFalloff          = "smoothstep"
	DefaultFalloffExponent  = 2.0
	DefaultPlotWidthInches  = 12.0
	DefaultPlotHeightInches = 9.0
)

// FacadeConfig is the on-disk description of one facade run: plane extents,
// grid spacing, falloff curve, attractors and render preferences.
type FacadeConfig struct {
	Name     *string  `json:"name,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	GridSize *float64 `json:"grid_size,omitempty"`

	// Falloff curve: "smoothstep", "linear" or "power".
	Falloff         *string  `json:"falloff,omitempty"`
	FalloffExponent *float64 `json:"falloff_exponent,omitempty"` // only used by "power"

	Attractors []AttractorConfig `json:"attractors,omitempty"`

	// Render params
	ShowAttractors   *bool    `json:"show_attractors,omitempty"`
	PlotWidthInches  *float64 `json:"plot_width_inches,omitempty"`
	PlotHeightInches *float64 `json:"plot_height_inches,omitempty"`
}

// AttractorConfig is a single attractor entry. Position is required;
// strength and radius fall back to DefaultStrength and DefaultRadius.
type AttractorConfig struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Strength *float64 `json:"strength,omitempty"`
	Radius   *float64 `json:"radius,omitempty"`
}

// EmptyFacadeConfig returns a FacadeConfig with all fields unset.
func EmptyFacadeConfig() *FacadeConfig {
	return &FacadeConfig{}
}

// LoadFacadeConfig loads a FacadeConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
// Omitted fields keep their defaults via the Get* methods.
func LoadFacadeConfig(path string) (*FacadeConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseFacadeConfig(data)
	if err != nil {
		return nil, err
	}
	if cfg.Name == nil {
		base := filepath.Base(cleanPath)
		name := base[:len(base)-len(filepath.Ext(base))]
		cfg.Name = &name
	}
	return cfg, nil
}

// ParseFacadeConfig decodes and validates a FacadeConfig from raw JSON.
func ParseFacadeConfig(data []byte) (*FacadeConfig, error) {
	cfg := EmptyFacadeConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FindDefaultConfig returns the first existing copy of DefaultConfigPath in
// the current directory or its parents.
func FindDefaultConfig() (string, error) {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,       // from cmd/
		"../../" + DefaultConfigPath,    // from cmd/facade-gen/ or internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("cannot find %s - run from repository root", DefaultConfigPath)
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *FacadeConfig {
	path, err := FindDefaultConfig()
	if err != nil {
		panic(err.Error())
	}
	cfg, err := LoadFacadeConfig(path)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// Validate checks values that can be rejected without building the grid.
// Grid-level rules (grid_size against the extents, attractor radius) are
// enforced by the facade engine itself.
func (c *FacadeConfig) Validate() error {
	for name, v := range map[string]*float64{
		"width":              c.Width,
		"height":             c.Height,
		"grid_size":          c.GridSize,
		"falloff_exponent":   c.FalloffExponent,
		"plot_width_inches":  c.PlotWidthInches,
		"plot_height_inches": c.PlotHeightInches,
	} {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			return fmt.Errorf("%s must be a positive number, got %v", name, *v)
		}
	}

	if c.Falloff != nil {
		switch *c.Falloff {
		case "smoothstep", "linear", "power":
		default:
			return fmt.Errorf("unknown falloff %q", *c.Falloff)
		}
	}

	for i, a := range c.Attractors {
		if a.Radius != nil && *a.Radius <= 0 {
			return fmt.Errorf("attractors[%d]: radius must be positive, got %v", i, *a.Radius)
		}
	}
	return nil
}

// GetName returns the run name or "facade".
func (c *FacadeConfig) GetName() string {
	if c.Name == nil || *c.Name == "" {
		return "facade"
	}
	return *c.Name
}

// GetWidth returns the width value or the default.
func (c *FacadeConfig) GetWidth() float64 {
	if c.Width == nil {
		return DefaultWidth
	}
	return *c.Width
}

// GetHeight returns the height value or the default.
func (c *FacadeConfig) GetHeight() float64 {
	if c.Height == nil {
		return DefaultHeight
	}
	return *c.Height
}

// GetGridSize returns the grid_size value or the default.
func (c *FacadeConfig) GetGridSize() float64 {
	if c.GridSize == nil {
		return DefaultGridSize
	}
	return *c.GridSize
}

// GetFalloff returns the falloff curve name or the default.
func (c *FacadeConfig) GetFalloff() string {
	if c.Falloff == nil || *c.Falloff == "" {
		return DefaultFalloff
	}
	return *c.Falloff
}

// GetFalloffExponent returns the falloff_exponent value or the default.
func (c *FacadeConfig) GetFalloffExponent() float64 {
	if c.FalloffExponent == nil {
		return DefaultFalloffExponent
	}
	return *c.FalloffExponent
}

// GetShowAttractors returns the show_attractors value or the default.
func (c *FacadeConfig) GetShowAttractors() bool {
	if c.ShowAttractors == nil {
		return true
	}
	return *c.ShowAttractors
}

// GetPlotWidthInches returns the plot_width_inches value or the default.
func (c *FacadeConfig) GetPlotWidthInches() float64 {
	if c.PlotWidthInches == nil {
		return DefaultPlotWidthInches
	}
	return *c.PlotWidthInches
}

// GetPlotHeightInches returns the plot_height_inches value or the default.
func (c *FacadeConfig) GetPlotHeightInches() float64 {
	if c.PlotHeightInches == nil {
		return DefaultPlotHeightInches
	}
	return *c.PlotHeightInches
}

// GetStrength returns the attractor strength or the default.
func (a AttractorConfig) GetStrength() float64 {
	if a.Strength == nil {
		return DefaultStrength
	}
	return *a.Strength
}

// GetRadius returns the attractor radius or the default.
func (a AttractorConfig) GetRadius() float64 {
	if a.Radius == nil {
		return DefaultRadius
	}
	return *a.Radius
}
