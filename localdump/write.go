package localdump

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic writes contents via a temp file in the target directory
// followed by a rename, so a crash mid-write never leaves a truncated record
// behind.  Directories are created on demand.
func writeFileAtomic(path string, contents []byte) error {
	directory := filepath.Dir(path)

	if err := os.MkdirAll(directory, 0750); err != nil {
		return fmt.Errorf("localdump: couldn't create directory %s: %w", directory, err)
	}

	f, err := os.CreateTemp(directory, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("localdump: couldn't create temp file in %s: %w", directory, err)
	}
	tmpName := f.Name()

	if _, err := f.Write(contents); err != nil {
		f.Close()
		os.Remove(tmpName)
		return fmt.Errorf("localdump: couldn't write to %s: %w", tmpName, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("localdump: couldn't close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("localdump: couldn't move %s into place: %w", tmpName, err)
	}

	return nil
}
