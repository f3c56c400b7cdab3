package spatial

import (
	"errors"

	"github.com/jonathan/aardvark-harvest/internal/logging"
)

// Result is the outcome of normalizing one dataset's extent.
// Envelope is empty when neither the dataset nor the site default supplied one.
type Result struct {
	Envelope string
	// UsedDefault is true when the site's default bbox replaced a rejected extent.
	UsedDefault bool
	// Err is the rejection reason, if the dataset's own bbox was not used.
	Err error
}

// Normalizer resolves dataset extents against a table of per-site defaults.
type Normalizer struct {
	table  Table
	logger logging.Logger
}

// NewNormalizer creates a Normalizer. A nil table disables default fallback.
func NewNormalizer(table Table, logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Normalizer{table: table, logger: logger}
}

// Normalize validates text against the named default region. Every rejection, including an
// absent bbox, is logged with the dataset id and landing page, and the default envelope is
// substituted when one exists.
func (n *Normalizer) Normalize(text, defaultName, datasetID, landingPage string) Result {
	region := n.table.Lookup(defaultName)

	var err error
	if text == "" {
		err = &ValidationError{Input: text, Cause: ErrAbsent}
	} else {
		var box BBox
		box, err = ParseWithin(text, region)
		if err == nil {
			return Result{Envelope: box.Envelope()}
		}
	}

	fields := []logging.Field{
		logging.DatasetID(datasetID),
		logging.LandingPage(landingPage),
		logging.Err(err),
	}
	if region == nil {
		if errors.Is(err, ErrAbsent) {
			n.logger.Info("no bounding box and no default extent configured, record has no geometry", fields...)
		} else {
			n.logger.Warn("bounding box rejected, no default extent configured", fields...)
		}
		return Result{Err: err}
	}

	n.logger.Warn("bounding box rejected, using default extent for the site",
		append(fields, logging.String("default_bbox", defaultName))...)
	return Result{Envelope: region.Envelope(), UsedDefault: true, Err: err}
}
