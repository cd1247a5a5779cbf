// Package config holds the immutable run configuration for the
// terrain tools: defaults, overridden by a YAML file, overridden by
// command-line flags. No component reads ambient state; each takes
// the values it needs at construction.
package config

import "fmt"

// Coordinate modes.
const (
	ModeNormalized = "normalized" // unit square, relative elevation
	ModeUTM        = "utm"        // real projected meters
)

// Color modes.
const (
	ColorZones    = "zones"    // discrete zone table lookup
	ColorGradient = "gradient" // linear two-color gradient
)

// Z-scale defaults per coordinate mode. The two predecessor pipelines
// shipped different defaults; both are kept, keyed by mode.
const (
	DefaultZScaleNormalized = 0.3
	DefaultZScaleUTM        = 20.0
)

// Config is the full run configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Model   ModelConfig   `yaml:"model"`
	Color   ColorConfig   `yaml:"color"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig names the co-registered source rasters.
type InputConfig struct {
	DEM     string `yaml:"dem"`
	Zonemap string `yaml:"zonemap"`
}

// OutputConfig names the mesh files to produce.
type OutputConfig struct {
	OBJ string `yaml:"obj"`
	STL string `yaml:"stl"`
}

// ModelConfig controls geometry generation.
type ModelConfig struct {
	Mode       string  `yaml:"mode"`
	ZScale     float64 `yaml:"z_scale"`    // 0 selects the mode default
	Downsample int     `yaml:"downsample"` // stride >= 1
	Center     bool    `yaml:"center"`     // real-world mode: shift midpoint to origin
	// BaseThickness > 0 adds a flat bottom and walls for printing.
	BaseThickness float64 `yaml:"base_thickness"`
}

// ColorConfig selects and parameterizes the colorizer.
type ColorConfig struct {
	Mode string `yaml:"mode"`
	// Zones maps class ids to 8-bit RGB triples.
	Zones map[int][3]uint8 `yaml:"zones"`
	// DefaultZone, when set, colors unknown class ids instead of
	// failing the run.
	DefaultZone *[3]uint8      `yaml:"default_zone"`
	Gradient    GradientConfig `yaml:"gradient"`
}

// GradientConfig holds the two endpoint colors and optional explicit
// bounds; nil bounds mean the observed data extrema.
type GradientConfig struct {
	Low  [3]uint8 `yaml:"low"`
	High [3]uint8 `yaml:"high"`
	Min  *float64 `yaml:"min"`
	Max  *float64 `yaml:"max"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the configuration the original pipelines shipped
// with: normalized unit-square output, the five-zone color palette,
// full resolution.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			OBJ: "terrain_colored.obj",
			STL: "terrain_colored.stl",
		},
		Model: ModelConfig{
			Mode:       ModeNormalized,
			Downsample: 1,
			Center:     true,
		},
		Color: ColorConfig{
			Mode: ColorZones,
			Zones: map[int][3]uint8{
				0: {255, 140, 0}, // orange
				1: {255, 255, 0}, // yellow
				2: {0, 200, 0},   // green
				3: {255, 165, 0}, // light orange
				4: {200, 200, 0}, // yellow-green
			},
			Gradient: GradientConfig{
				Low:  [3]uint8{255, 0, 0},
				High: [3]uint8{0, 255, 0},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// EffectiveZScale resolves the configured vertical exaggeration,
// falling back to the mode's default when unset.
func (c *Config) EffectiveZScale() float64 {
	if c.Model.ZScale > 0 {
		return c.Model.ZScale
	}
	if c.Model.Mode == ModeUTM {
		return DefaultZScaleUTM
	}
	return DefaultZScaleNormalized
}

// Validate rejects configurations the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Input.DEM == "" {
		return fmt.Errorf("config: input.dem is required")
	}
	switch c.Model.Mode {
	case ModeNormalized, ModeUTM:
	default:
		return fmt.Errorf("config: unknown coordinate mode %q", c.Model.Mode)
	}
	switch c.Color.Mode {
	case ColorZones:
		if c.Input.Zonemap == "" {
			return fmt.Errorf("config: color mode %q requires input.zonemap", ColorZones)
		}
		if len(c.Color.Zones) == 0 && c.Color.DefaultZone == nil {
			return fmt.Errorf("config: color mode %q requires a zone table or default_zone", ColorZones)
		}
	case ColorGradient:
		if c.Color.Gradient.Min != nil && c.Color.Gradient.Max != nil &&
			*c.Color.Gradient.Min > *c.Color.Gradient.Max {
			return fmt.Errorf("config: gradient min %g exceeds max %g",
				*c.Color.Gradient.Min, *c.Color.Gradient.Max)
		}
	default:
		return fmt.Errorf("config: unknown color mode %q", c.Color.Mode)
	}
	if c.Model.Downsample < 1 {
		return fmt.Errorf("config: downsample stride must be >= 1, got %d", c.Model.Downsample)
	}
	if c.Model.ZScale < 0 {
		return fmt.Errorf("config: z_scale must not be negative, got %g", c.Model.ZScale)
	}
	if c.Model.BaseThickness < 0 {
		return fmt.Errorf("config: base_thickness must not be negative, got %g", c.Model.BaseThickness)
	}
	if c.Output.OBJ == "" && c.Output.STL == "" {
		return fmt.Errorf("config: at least one of output.obj or output.stl is required")
	}
	return nil
}
