// Package terrain turns co-registered rasters into per-cell colors and
// 3D positions: zonemap alignment, colorizing and coordinate transforms.
package terrain

import (
	"math"

	"terrain-gen/internal/raster"
)

// undefined marks aligned cells whose lookup fell outside the source
// zonemap extent or hit a nodata sample.
const undefined = -1

// ClassGrid is a zone classification resampled onto the DEM's pixel
// grid. It is produced once by Align and read-only afterwards.
type ClassGrid struct {
	Rows, Cols int
	ids        []int32
}

// At returns the class id at (row, col) and whether it is defined.
func (c *ClassGrid) At(row, col int) (int, bool) {
	id := c.ids[row*c.Cols+col]
	if id == undefined {
		return 0, false
	}
	return int(id), true
}

// Defined reports whether the cell holds a usable class id.
func (c *ClassGrid) Defined(row, col int) bool {
	return c.ids[row*c.Cols+col] != undefined
}

// Align resamples the source zonemap onto the target DEM's pixel grid
// by nearest-neighbor lookup: each target cell takes the class of the
// source cell whose footprint contains the target cell's center. Class
// ids are categorical, so no interpolation ever happens. Cells whose
// center falls outside the source extent, or on a nodata source
// sample, come back undefined rather than failing.
func Align(target, source *raster.Grid) (*ClassGrid, error) {
	if source.Rows <= 0 || source.Cols <= 0 {
		return nil, &AlignmentError{Reason: "source zonemap is empty"}
	}
	if source.GeoTransform[1] == 0 || source.GeoTransform[5] == 0 {
		return nil, &AlignmentError{Reason: "source zonemap has a degenerate geotransform"}
	}

	out := &ClassGrid{
		Rows: target.Rows,
		Cols: target.Cols,
		ids:  make([]int32, target.Rows*target.Cols),
	}
	for r := 0; r < target.Rows; r++ {
		for c := 0; c < target.Cols; c++ {
			x, y := target.CellCenter(r, c)
			sr, sc, ok := source.PixelAt(x, y)
			if !ok || !source.Valid(sr, sc) {
				out.ids[r*out.Cols+c] = undefined
				continue
			}
			out.ids[r*out.Cols+c] = int32(math.Round(source.At(sr, sc)))
		}
	}
	return out, nil
}
