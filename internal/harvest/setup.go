package harvest

import (
	"context"

	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/fetch"
	"github.com/jonathan/aardvark-harvest/internal/logging"
	"github.com/jonathan/aardvark-harvest/internal/output"
	"github.com/jonathan/aardvark-harvest/internal/schemas"
	"github.com/jonathan/aardvark-harvest/internal/spatial"
)

// NewFromConfig wires the production collaborators: an HTTP fetcher with the configured retry
// policy, the default-extent table, the remote schema and a file writer. Any failure is a
// *config.ConfigError.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger logging.Logger, onProgress ProgressCallback) (*Runner, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	fetcher := fetch.NewFetcher(fetch.FetcherConfigFrom(cfg.Settings), logger)

	var table spatial.Table
	if cfg.Settings.DefaultBbox != "" {
		var err error
		table, err = spatial.LoadTable(cfg.Settings.DefaultBbox)
		if err != nil {
			return nil, &config.ConfigError{Message: "failed to load default bbox table", Cause: err}
		}
	}

	validator, err := schemas.Load(ctx, fetcher, schemas.ResolveSchemaLocation(cfg.Settings.Schema))
	if err != nil {
		return nil, &config.ConfigError{Message: "schema unavailable", Cause: err}
	}
	logger.Info("schema loaded", logging.String("schema", validator.Location()))

	return New(cfg, Options{
		Fetcher:    fetcher,
		Validator:  validator,
		Writer:     output.NewWriter(cfg.Settings.OutputDir),
		Table:      table,
		Logger:     logger,
		OnProgress: onProgress,
	})
}
