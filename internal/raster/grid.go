// Package raster loads and models single-band gridded datasets.
package raster

import (
	"fmt"
	"math"
)

// Grid holds a single raster band in memory together with its
// georeferencing metadata. Samples are stored row-major.
type Grid struct {
	Rows, Cols int

	// GeoTransform uses the GDAL affine layout:
	// [originX, pixelWidth, rotationX, originY, rotationY, pixelHeight].
	// pixelHeight is negative for north-up rasters.
	GeoTransform [6]float64

	NoData    float64
	HasNoData bool

	data []float64
}

// Stats summarizes the valid samples of a grid.
type Stats struct {
	Min, Max float64
	Valid    int
}

// Range returns the elevation span covered by the valid samples.
func (s Stats) Range() float64 {
	return s.Max - s.Min
}

// New builds a grid around an existing row-major sample buffer.
// The geotransform defaults to a north-up unit grid at the origin.
func New(rows, cols int, data []float64) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid shape %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("grid data length %d does not match shape %dx%d", len(data), rows, cols)
	}
	return &Grid{
		Rows:         rows,
		Cols:         cols,
		GeoTransform: [6]float64{0, 1, 0, 0, 0, -1},
		data:         data,
	}, nil
}

// SetNoData marks a sentinel value as invalid.
func (g *Grid) SetNoData(v float64) {
	g.NoData = v
	g.HasNoData = true
}

// At returns the sample at (row, col). It panics on out-of-range
// indices; callers derive loop bounds from Rows and Cols.
func (g *Grid) At(row, col int) float64 {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		panic(fmt.Sprintf("raster: index (%d,%d) out of range for %dx%d grid", row, col, g.Rows, g.Cols))
	}
	return g.data[row*g.Cols+col]
}

// Set overwrites the sample at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		panic(fmt.Sprintf("raster: index (%d,%d) out of range for %dx%d grid", row, col, g.Rows, g.Cols))
	}
	g.data[row*g.Cols+col] = v
}

// Valid reports whether the sample at (row, col) is a measurement
// rather than the nodata sentinel. NaN samples are never valid.
func (g *Grid) Valid(row, col int) bool {
	v := g.At(row, col)
	if math.IsNaN(v) {
		return false
	}
	return !g.HasNoData || v != g.NoData
}

// WorldX returns the projected X coordinate of the left edge of a column.
func (g *Grid) WorldX(col int) float64 {
	return g.GeoTransform[0] + float64(col)*g.GeoTransform[1]
}

// WorldY returns the projected Y coordinate of the top edge of a row.
func (g *Grid) WorldY(row int) float64 {
	return g.GeoTransform[3] + float64(row)*g.GeoTransform[5]
}

// CellCenter returns the projected coordinates of a cell's midpoint.
func (g *Grid) CellCenter(row, col int) (x, y float64) {
	x = g.GeoTransform[0] + (float64(col)+0.5)*g.GeoTransform[1]
	y = g.GeoTransform[3] + (float64(row)+0.5)*g.GeoTransform[5]
	return x, y
}

// PixelAt inverts the geotransform, returning the pixel containing the
// projected point (x, y). ok is false when the point lies outside the
// grid or the geotransform is degenerate.
func (g *Grid) PixelAt(x, y float64) (row, col int, ok bool) {
	gt := g.GeoTransform
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if det == 0 {
		return 0, 0, false
	}
	px := ((x-gt[0])*gt[5] - (y-gt[3])*gt[2]) / det
	py := ((y-gt[3])*gt[1] - (x-gt[0])*gt[4]) / det
	col = int(math.Floor(px))
	row = int(math.Floor(py))
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// Downsample returns a new grid keeping every stride-th sample along
// both axes. The pixel size grows by the same factor so the grid keeps
// covering the same extent. A stride of 1 returns a copy.
func (g *Grid) Downsample(stride int) *Grid {
	if stride < 1 {
		stride = 1
	}
	rows := (g.Rows + stride - 1) / stride
	cols := (g.Cols + stride - 1) / stride
	data := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data[r*cols+c] = g.data[(r*stride)*g.Cols+c*stride]
		}
	}
	gt := g.GeoTransform
	gt[1] *= float64(stride)
	gt[2] *= float64(stride)
	gt[4] *= float64(stride)
	gt[5] *= float64(stride)
	return &Grid{
		Rows:         rows,
		Cols:         cols,
		GeoTransform: gt,
		NoData:       g.NoData,
		HasNoData:    g.HasNoData,
		data:         data,
	}
}

// Stats computes min/max over the valid samples in a single pass.
func (g *Grid) Stats() Stats {
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if !g.Valid(r, c) {
				continue
			}
			v := g.data[r*g.Cols+c]
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
			s.Valid++
		}
	}
	if s.Valid == 0 {
		s.Min, s.Max = 0, 0
	}
	return s
}
