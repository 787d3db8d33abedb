package docx

import (
	"errors"
	"fmt"
)

// IOError represents a filesystem or archive failure. It is fatal for the
// whole document.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("io error during %s of '%s': %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("io error during %s of '%s'", e.Op, e.Path)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// NewIOError creates a new IO error.
func NewIOError(op, path string, cause error) error {
	return &IOError{Op: op, Path: path, Cause: cause}
}

// FormatError represents input that is not a valid document package:
// not a zip archive, missing document part, or malformed content.
type FormatError struct {
	Path   string
	Reason string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("format error in '%s': %s: %v", e.Path, e.Reason, e.Cause)
	}
	return fmt.Sprintf("format error in '%s': %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// NewFormatError creates a new format error.
func NewFormatError(path, reason string, cause error) error {
	return &FormatError{Path: path, Reason: reason, Cause: cause}
}

// IsIOError checks whether any error in the chain is an IO error.
func IsIOError(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}

// IsFormatError checks whether any error in the chain is a format error.
func IsFormatError(err error) bool {
	var e *FormatError
	return errors.As(err, &e)
}
