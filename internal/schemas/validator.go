package schemas

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// LoadTimeout bounds the schema fetch.
const LoadTimeout = 10 * time.Second

// DocumentFetcher retrieves a raw document from a URL or local path.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, location string) ([]byte, error)
}

// Validator validates records against one compiled schema.
type Validator struct {
	location string
	schema   *gojsonschema.Schema
}

// Load fetches and compiles the schema at location. Any failure is a *SchemaLoadError.
func Load(ctx context.Context, fetcher DocumentFetcher, location string) (*Validator, error) {
	ctx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()

	data, err := fetcher.FetchDocument(ctx, location)
	if err != nil {
		return nil, &SchemaLoadError{Path: location, Message: "failed to fetch schema", Cause: err}
	}
	return NewValidator(location, data)
}

// NewValidator compiles schema content. location is only used in errors.
func NewValidator(location string, schema []byte) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, &SchemaLoadError{Path: location, Message: "failed to compile schema", Cause: err}
	}
	return &Validator{location: location, schema: compiled}, nil
}

// Location is where the schema was loaded from.
func (v *Validator) Location() string { return v.location }

// ValidateRecord validates the JSON serialization of record.
func (v *Validator) ValidateRecord(record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}
	return v.ValidateBytes(data)
}

// ValidateBytes validates a JSON document. Invalid JSON is reported as an error, not a panic.
func (v *Validator) ValidateBytes(doc []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	return toValidationError(result)
}
