package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/dcat"
	"github.com/jonathan/aardvark-harvest/internal/logging"
)

// FetcherConfig configures retries for a Fetcher.
type FetcherConfig struct {
	// MaxRetry is the total number of attempts per document. Values below 1 mean 1.
	MaxRetry int
	// RetryDelay is the constant wait between attempts.
	RetryDelay time.Duration
	Options    *Options
}

// FetcherConfigFrom builds a FetcherConfig from the CONFIG block.
func FetcherConfigFrom(s config.Settings) FetcherConfig {
	opts := DefaultOptions()
	opts.Timeout = s.RequestTimeout()
	return FetcherConfig{
		MaxRetry:   s.MaxRetry,
		RetryDelay: s.RetryDelay(),
		Options:    opts,
	}
}

// Fetcher retrieves documents with a constant-delay retry policy. Transport errors, timeouts and
// non-2xx statuses are retried; invalid URLs, unreadable files and non-JSON catalogs are not.
type Fetcher struct {
	opts     *Options
	maxRetry int
	delay    time.Duration
	logger   logging.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg FetcherConfig, logger logging.Logger) *Fetcher {
	if cfg.Options == nil {
		cfg.Options = DefaultOptions()
	}
	if cfg.MaxRetry < 1 {
		cfg.MaxRetry = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fetcher{
		opts:     cfg.Options,
		maxRetry: cfg.MaxRetry,
		delay:    cfg.RetryDelay,
		logger:   logger,
	}
}

// FetchCatalog retrieves and decodes a site's catalog. SiteURL may be a local path.
// Dataset entries that cannot be decoded are returned in Catalog.Malformed, not as an error.
func (f *Fetcher) FetchCatalog(ctx context.Context, site *config.Site) (*dcat.Catalog, error) {
	var catalog dcat.Catalog
	decode := func(location string, body []byte) error {
		if !json.Valid(body) {
			return &Error{URL: location, Message: "malformed catalog", Cause: ErrNotJSON, Permanent: true}
		}
		catalog = dcat.Catalog{}
		if err := json.Unmarshal(body, &catalog); err != nil {
			return &Error{
				URL:       location,
				Message:   "unreadable catalog",
				Cause:     fmt.Errorf("%w: %v", ErrCatalogLayout, err),
				Permanent: true,
			}
		}
		return nil
	}
	if err := f.retrieve(ctx, site.SiteURL, site.IsLocalFile(), decode, logging.Site(site.Key)); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// FetchDocument retrieves raw bytes from a URL or local path with the same retry policy.
func (f *Fetcher) FetchDocument(ctx context.Context, location string) ([]byte, error) {
	var body []byte
	keep := func(_ string, b []byte) error {
		body = b
		return nil
	}
	if err := f.retrieve(ctx, location, config.IsLocalPath(location), keep); err != nil {
		return nil, err
	}
	return body, nil
}

// ReadLocal reads a document from disk. A file:// prefix is accepted.
func (f *Fetcher) ReadLocal(path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{URL: path, Message: "failed to read local file", Cause: err, Permanent: true}
	}
	return data, nil
}

func (f *Fetcher) retrieve(ctx context.Context, location string, local bool, use func(string, []byte) error, fields ...logging.Field) error {
	if local {
		data, err := f.ReadLocal(location)
		if err != nil {
			return err
		}
		return use(location, data)
	}

	attempts := 0
	op := func() error {
		attempts++
		res, err := URL(ctx, location, f.opts)
		if err != nil {
			if IsPermanent(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		if err := use(location, res.Body); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.delay), uint64(f.maxRetry-1)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		f.logger.Warn("fetch attempt failed, retrying",
			append(fields,
				logging.String("url", location),
				logging.Int("attempt", attempts),
				logging.Int("max_attempts", f.maxRetry),
				logging.Duration("wait", wait),
				logging.Err(err),
			)...)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		var fetchErr *Error
		if errors.As(err, &fetchErr) {
			fetchErr.Attempts = attempts
			return fetchErr
		}
		return &Error{URL: location, Message: "retrieval aborted", Cause: err, Attempts: attempts}
	}
	return nil
}
