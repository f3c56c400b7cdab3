package harvest

import (
	"errors"

	"github.com/jonathan/aardvark-harvest/internal/config"
)

// IsFatal reports whether err must abort the run with a non-zero exit. Only configuration
// problems, including an unreachable schema, are fatal.
func IsFatal(err error) bool {
	var cfgErr *config.ConfigError
	return errors.As(err, &cfgErr)
}
