package raster

import "fmt"

// LoadError reports an unreadable, missing or empty input dataset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load raster %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load raster %s", e.Path)
}

func (e *LoadError) Unwrap() error { return e.Err }
