package raster

import (
	"errors"
	"fmt"

	"github.com/lukeroth/gdal"
)

// Load reads band 1 of a gridded dataset into memory through GDAL,
// together with its geotransform and nodata sentinel. It fails with a
// *LoadError when the file cannot be opened, the band cannot be read,
// or the dataset has no valid samples at all.
func Load(path string) (*Grid, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer ds.Close()

	cols := ds.RasterXSize()
	rows := ds.RasterYSize()
	if rows <= 0 || cols <= 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("empty raster %dx%d", rows, cols)}
	}
	if ds.RasterCount() < 1 {
		return nil, &LoadError{Path: path, Err: errors.New("dataset has no raster bands")}
	}

	band := ds.RasterBand(1)
	data := make([]float64, rows*cols)
	if err := band.IO(gdal.Read, 0, 0, cols, rows, data, cols, rows, 0, 0); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("reading band 1: %w", err)}
	}

	g := &Grid{
		Rows:         rows,
		Cols:         cols,
		GeoTransform: ds.GeoTransform(),
		data:         data,
	}
	if nodata, ok := band.NoDataValue(); ok {
		g.SetNoData(nodata)
	}

	if g.Stats().Valid == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("dataset has zero valid samples")}
	}
	return g, nil
}

// Projection returns the WKT projection string of a dataset without
// reading its samples. Used by the inspection tool only.
func Projection(path string) (string, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}
	defer ds.Close()
	return ds.Projection(), nil
}
