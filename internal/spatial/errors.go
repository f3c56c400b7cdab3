package spatial

import (
	"errors"
	"fmt"
)

// Reasons a bounding box is rejected.
var (
	ErrNonConforming = errors.New("non-conforming bounding box")
	ErrLongitude     = errors.New("longitude coordinates must be between -180 and 180")
	ErrLatitude      = errors.New("latitude coordinates must be between -90 and 90")
	ErrDegenerate    = errors.New("degenerate bounding box")
	ErrOutsideRegion = errors.New("bounding box falls outside the site's default extent")
	ErrAbsent        = errors.New("no bounding box supplied")
)

// ValidationError describes why a dataset's extent could not be used.
type ValidationError struct {
	Input string
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("spatial validation error for %q: %v", e.Input, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// TableError represents a malformed default bbox table.
type TableError struct {
	Path    string
	Line    int
	Message string
	Cause   error
}

func (e *TableError) Error() string {
	msg := fmt.Sprintf("default bbox table %s", e.Path)
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *TableError) Unwrap() error {
	return e.Cause
}
