package config

import (
	"errors"
	"fmt"
)

// Configuration validation errors.
var (
	ErrEmptyPath       = errors.New("config path is empty")
	ErrMissingSettings = errors.New("CONFIG block is required")
	ErrMissingCatalog  = errors.New("active catalog not found in configuration")
	ErrEmptyCatalog    = errors.New("active catalog has no sites")
)

// ConfigError represents malformed or missing configuration. It is always fatal to a run.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
