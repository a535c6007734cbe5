package source

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Common errors. The messages are shown to the user verbatim after "Error: ".
var (
	// ErrNotFound indicates that an argument is neither "-" nor an existing path
	ErrNotFound = errors.New("No such file or directory")

	// ErrPermission indicates that the filesystem refused to open an existing path
	ErrPermission = errors.New("Permission denied")

	// ErrWrite indicates that standard output no longer accepts writes
	ErrWrite = errors.New("write failure")
)

// PathError ties a failure to the argument that caused it
type PathError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Classify maps filesystem errors for path onto the sentinels above. Errors
// that have no sentinel keep their underlying reason.
func Classify(path string, err error) error {
	if err == nil {
		return nil
	}

	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &PathError{Path: path, Err: ErrNotFound}
	case errors.Is(err, fs.ErrPermission):
		return &PathError{Path: path, Err: ErrPermission}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return &PathError{Path: path, Err: errno}
	}
	return fmt.Errorf("failed to open %s: %w", path, err)
}

// IsNotFound checks if the error indicates a missing input
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPermission checks if the error indicates a denied open
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsWrite checks if the error indicates a failed write to standard output
func IsWrite(err error) bool {
	return errors.Is(err, ErrWrite)
}
