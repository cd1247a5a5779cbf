package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrain-gen/internal/raster"
)

func demGrid(t *testing.T, rows, cols int, data []float64) *raster.Grid {
	t.Helper()
	g, err := raster.New(rows, cols, data)
	require.NoError(t, err)
	return g
}

func TestNormalizedCorners(t *testing.T) {
	g := demGrid(t, 3, 5, make([]float64, 15))
	tr := NewNormalizedTransformer(g, raster.Stats{Min: 0, Max: 10, Valid: 15}, 1)

	p := tr.Transform(0, 0, 0)
	assert.Equal(t, -1.0, p.X())
	assert.Equal(t, -1.0, p.Y())
	assert.Equal(t, 0.0, p.Z())

	p = tr.Transform(2, 4, 10)
	assert.Equal(t, 1.0, p.X())
	assert.Equal(t, 1.0, p.Y())
	assert.Equal(t, 1.0, p.Z())

	p = tr.Transform(1, 2, 5)
	assert.Equal(t, 0.0, p.X())
	assert.Equal(t, 0.0, p.Y())
	assert.Equal(t, 0.5, p.Z())
}

func TestNormalizedConstantElevation(t *testing.T) {
	g := demGrid(t, 2, 2, []float64{7, 7, 7, 7})
	tr := NewNormalizedTransformer(g, g.Stats(), 5)

	// Flat data must not fault and sits at z = 0.
	assert.Equal(t, 0.0, tr.Transform(0, 0, 7).Z())
}

func TestZScaleOnlyAffectsZ(t *testing.T) {
	g := demGrid(t, 4, 4, make([]float64, 16))
	stats := raster.Stats{Min: 100, Max: 300, Valid: 16}
	const k = 2.5

	base := NewNormalizedTransformer(g, stats, 1)
	scaled := NewNormalizedTransformer(g, stats, k)

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			elev := 100 + float64(r*4+c)*10
			p, q := base.Transform(r, c, elev), scaled.Transform(r, c, elev)
			// X and Y are bit-for-bit identical, Z scales by k.
			assert.Equal(t, p.X(), q.X())
			assert.Equal(t, p.Y(), q.Y())
			assert.Equal(t, p.Z()*k, q.Z())
		}
	}
}

func TestUTMZScaleOnlyAffectsZ(t *testing.T) {
	g := demGrid(t, 3, 3, make([]float64, 9))
	g.GeoTransform = [6]float64{500000, 10, 0, 4200000, 0, -10}
	stats := raster.Stats{Min: 100, Max: 200, Valid: 9}
	const k = 4.0

	base := NewUTMTransformer(g, stats, 1, true)
	scaled := NewUTMTransformer(g, stats, k, true)

	p, q := base.Transform(1, 2, 175), scaled.Transform(1, 2, 175)
	assert.Equal(t, p.X(), q.X())
	assert.Equal(t, p.Y(), q.Y())
	assert.Equal(t, p.Z()*k, q.Z())
}

func TestUTMNorthUpOrientation(t *testing.T) {
	// North-up raster: origin (0,0), pixel (1,-1). Row 0 is the
	// northernmost row and must map to the strictly greatest Y.
	g := demGrid(t, 4, 4, make([]float64, 16))
	g.GeoTransform = [6]float64{0, 1, 0, 0, 0, -1}
	tr := NewUTMTransformer(g, raster.Stats{Min: 0, Max: 1, Valid: 16}, 1, false)

	top := tr.Transform(0, 0, 0)
	bottom := tr.Transform(g.Rows-1, 0, 0)
	assert.Greater(t, top.Y(), bottom.Y())

	// East stays east.
	west := tr.Transform(0, 0, 0)
	east := tr.Transform(0, g.Cols-1, 0)
	assert.Greater(t, east.X(), west.X())
}

func TestUTMAbsoluteCoordinates(t *testing.T) {
	g := demGrid(t, 2, 2, make([]float64, 4))
	g.GeoTransform = [6]float64{500000, 10, 0, 4200000, 0, -10}
	tr := NewUTMTransformer(g, raster.Stats{Min: 0, Max: 1, Valid: 4}, 1, false)

	p := tr.Transform(1, 1, 50)
	assert.Equal(t, 500010.0, p.X())
	assert.Equal(t, 4199990.0, p.Y())
	assert.Equal(t, 50.0, p.Z())
}

func TestUTMCentering(t *testing.T) {
	g := demGrid(t, 3, 3, make([]float64, 9))
	g.GeoTransform = [6]float64{100, 10, 0, 200, 0, -10}
	stats := raster.Stats{Min: 40, Max: 60, Valid: 9}
	tr := NewUTMTransformer(g, stats, 1, true)

	// The grid midpoint lands on the origin, elevation midpoint on z=0.
	p := tr.Transform(1, 1, 50)
	assert.Equal(t, 0.0, p.X())
	assert.Equal(t, 0.0, p.Y())
	assert.Equal(t, 0.0, p.Z())

	// Orientation survives centering.
	assert.Greater(t, tr.Transform(0, 0, 50).Y(), tr.Transform(2, 0, 50).Y())
}
