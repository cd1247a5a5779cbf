package terrain

import "terrain-gen/internal/raster"

// RGB is a color with each channel in [0,1], the range the OBJ vertex
// color convention expects.
type RGB struct {
	R, G, B float64
}

// RGBFromBytes converts 8-bit channels to the [0,1] range.
func RGBFromBytes(r, g, b uint8) RGB {
	return RGB{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// Colorizer maps one valid DEM sample to one RGB color. The two
// implementations are selected by configuration and are the only
// color-mode dispatch in the pipeline.
type Colorizer interface {
	Colorize(row, col int, elev float64) (RGB, error)
}

// ZoneColorizer colors samples by discrete zone id lookup in a fixed
// table. The policy for undeclared ids is explicit: with a fallback
// color configured unknown zones take it, otherwise colorizing fails
// with *UnknownZoneError.
type ZoneColorizer struct {
	classes  *ClassGrid
	table    map[int]RGB
	fallback *RGB
}

// NewZoneColorizer builds a discrete colorizer over an aligned class
// grid. fallback may be nil to make unknown zone ids fatal.
func NewZoneColorizer(classes *ClassGrid, table map[int]RGB, fallback *RGB) *ZoneColorizer {
	return &ZoneColorizer{classes: classes, table: table, fallback: fallback}
}

func (z *ZoneColorizer) Colorize(row, col int, elev float64) (RGB, error) {
	id, ok := z.classes.At(row, col)
	if !ok {
		// Undefined cells are filtered out by the mesh builder before
		// colorizing; reaching one is an unknown zone by policy.
		return z.unknown(undefined, row, col)
	}
	if c, ok := z.table[id]; ok {
		return c, nil
	}
	return z.unknown(id, row, col)
}

func (z *ZoneColorizer) unknown(id, row, col int) (RGB, error) {
	if z.fallback != nil {
		return *z.fallback, nil
	}
	return RGB{}, &UnknownZoneError{Zone: id, Row: row, Col: col}
}

// GradientColorizer blends linearly between two endpoint colors based
// on where the sample sits inside [min, max], clamped. A constant
// grid (min == max) colors everything with the low endpoint.
type GradientColorizer struct {
	low, high RGB
	min, max  float64
}

// NewGradientColorizer builds a gradient with explicit bounds.
func NewGradientColorizer(low, high RGB, min, max float64) *GradientColorizer {
	return &GradientColorizer{low: low, high: high, min: min, max: max}
}

// GradientFromStats builds a gradient spanning the observed extrema of
// the dataset's valid samples.
func GradientFromStats(low, high RGB, s raster.Stats) *GradientColorizer {
	return NewGradientColorizer(low, high, s.Min, s.Max)
}

func (g *GradientColorizer) Colorize(row, col int, elev float64) (RGB, error) {
	span := g.max - g.min
	if span <= 0 {
		return g.low, nil
	}
	t := (elev - g.min) / span
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return RGB{
		R: g.low.R + (g.high.R-g.low.R)*t,
		G: g.low.G + (g.high.G-g.low.G)*t,
		B: g.low.B + (g.high.B-g.low.B)*t,
	}, nil
}
