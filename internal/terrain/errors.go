package terrain

import "fmt"

// AlignmentError reports zonemap/DEM geometry the aligner cannot reconcile.
type AlignmentError struct {
	Reason string
}

func (e *AlignmentError) Error() string {
	return "align grids: " + e.Reason
}

// UnknownZoneError reports a class id with no entry in the zone color
// table, encountered while no default color is configured.
type UnknownZoneError struct {
	Zone     int
	Row, Col int
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("unknown zone id %d at cell (%d,%d)", e.Zone, e.Row, e.Col)
}
