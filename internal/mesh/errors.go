package mesh

import "fmt"

// SerializationError reports a failed mesh file write. The destination
// path never holds a partial file when this is returned.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("write mesh %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
