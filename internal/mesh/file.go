package mesh

import (
	"io"
	"os"
	"path/filepath"
)

// writeFileAtomic writes through a temporary file in the destination
// directory and renames on success, so a failed run never leaves a
// partial output behind.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &SerializationError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &SerializationError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &SerializationError{Path: path, Err: err}
	}
	return nil
}
