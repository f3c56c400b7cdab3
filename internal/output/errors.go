package output

import (
	"errors"
	"fmt"
)

// ErrInvalidID rejects record ids that cannot be used as a file name.
var ErrInvalidID = errors.New("record id is not a valid file name")

// WriteError represents a failure to persist one record.
type WriteError struct {
	ID    string
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to write record %s to %s: %v", e.ID, e.Path, e.Cause)
	}
	return fmt.Sprintf("failed to write record %s: %v", e.ID, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
