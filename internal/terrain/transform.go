package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"terrain-gen/internal/raster"
)

// Transformer maps a grid cell plus its elevation sample to a 3D
// position. The vertical exaggeration factor scales Z only; X and Y
// spacing never depend on it.
type Transformer interface {
	Transform(row, col int, elev float64) mgl64.Vec3
}

// NormalizedTransformer places the grid inside the [-1,1] unit square
// with Z rising from 0 to ZScale across the elevation range.
type NormalizedTransformer struct {
	rows, cols int
	min        float64
	invRange   float64
	zScale     float64
}

// NewNormalizedTransformer derives the normalization constants from
// the grid shape and its valid-sample extrema.
func NewNormalizedTransformer(g *raster.Grid, s raster.Stats, zScale float64) *NormalizedTransformer {
	t := &NormalizedTransformer{
		rows:   g.Rows,
		cols:   g.Cols,
		min:    s.Min,
		zScale: zScale,
	}
	if r := s.Range(); r > 0 {
		t.invRange = 1 / r
	}
	return t
}

func (t *NormalizedTransformer) Transform(row, col int, elev float64) mgl64.Vec3 {
	x, y := -1.0, -1.0
	if t.cols > 1 {
		x = float64(col)/float64(t.cols-1)*2 - 1
	}
	if t.rows > 1 {
		y = float64(row)/float64(t.rows-1)*2 - 1
	}
	z := (elev - t.min) * t.invRange * t.zScale
	return mgl64.Vec3{x, y, z}
}

// UTMTransformer keeps real projected coordinates in meters. The sign
// of the pixel height is preserved, so on a north-up raster row 0 maps
// to the greatest Y and increasing rows move south. Centering shifts
// the whole model so the data's bounding-box midpoint sits at the
// origin; the offsets are fixed at construction and applied uniformly.
type UTMTransformer struct {
	gt         [6]float64
	cx, cy, cz float64
	zScale     float64
}

// NewUTMTransformer builds the real-world transform, optionally
// centered on the midpoint of the grid extent and elevation range.
func NewUTMTransformer(g *raster.Grid, s raster.Stats, zScale float64, center bool) *UTMTransformer {
	t := &UTMTransformer{gt: g.GeoTransform, zScale: zScale}
	if center {
		t.cx = (g.WorldX(0) + g.WorldX(g.Cols-1)) / 2
		t.cy = (g.WorldY(0) + g.WorldY(g.Rows-1)) / 2
		t.cz = (s.Min + s.Max) / 2
	}
	return t
}

func (t *UTMTransformer) Transform(row, col int, elev float64) mgl64.Vec3 {
	x := t.gt[0] + float64(col)*t.gt[1] - t.cx
	y := t.gt[3] + float64(row)*t.gt[5] - t.cy
	z := (elev - t.cz) * t.zScale
	return mgl64.Vec3{x, y, z}
}
