package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/nl-locator/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	if err := os.MkdirAll(filepath.Join(targetPath...), 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// WriteFileAtomic writes data to dir/name through a temporary file in the
// same directory and a rename, so readers never observe a partial file.
// It returns the final path.
func WriteFileAtomic(dir, name string, data []byte) (string, failure.ClassifiedError) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	target := filepath.Join(dir, name)
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", writeError(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", writeError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", writeError(err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", writeError(err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", writeError(err)
	}
	return target, nil
}

func writeError(err error) *FileError {
	return &FileError{
		Message:   fmt.Sprintf("%v", err),
		Retryable: true,
		Cause:     ErrCauseWriteError,
	}
}
