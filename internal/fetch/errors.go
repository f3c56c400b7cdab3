package fetch

import (
	"errors"
	"fmt"
)

// Catalog body errors. Both are permanent.
var (
	ErrNotJSON       = errors.New("response is not valid JSON")
	ErrCatalogLayout = errors.New("catalog has no readable dataset array")
)

// Error represents a failure to retrieve a document. Permanent errors are not retried.
type Error struct {
	URL        string
	Message    string
	Cause      error
	StatusCode int
	Permanent  bool
	Attempts   int
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Attempts > 1 {
		msg = fmt.Sprintf("%s after %d attempts", msg, e.Attempts)
	}
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, msg, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsPermanent reports whether err is a fetch error that retrying cannot fix.
func IsPermanent(err error) bool {
	var fetchErr *Error
	return errors.As(err, &fetchErr) && fetchErr.Permanent
}
