// Package harvest runs the crosswalk over every configured site: fetch, extract, classify,
// normalize the extent, build references, assemble, validate and write.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/aardvark-harvest/internal/aardvark"
	"github.com/jonathan/aardvark-harvest/internal/classify"
	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/dcat"
	"github.com/jonathan/aardvark-harvest/internal/logging"
	"github.com/jonathan/aardvark-harvest/internal/references"
	"github.com/jonathan/aardvark-harvest/internal/schemas"
	"github.com/jonathan/aardvark-harvest/internal/spatial"
)

// CatalogFetcher retrieves a site's catalog.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context, site *config.Site) (*dcat.Catalog, error)
}

// RecordValidator validates an assembled record.
type RecordValidator interface {
	ValidateRecord(record any) error
}

// RecordWriter persists an accepted record and returns where it went.
type RecordWriter interface {
	Write(rec aardvark.Record) (string, error)
}

// ProgressEvent reports one processed dataset or site.
type ProgressEvent struct {
	Site    string
	ID      string
	Status  string
	Message string
}

// ProgressCallback is called as the run progresses.
type ProgressCallback func(event ProgressEvent)

// Options holds the collaborators of a Runner.
type Options struct {
	Fetcher   CatalogFetcher
	Validator RecordValidator
	Writer    RecordWriter
	// Table holds named default extents. Nil disables the default-extent fallback.
	Table      spatial.Table
	Logger     logging.Logger
	Clock      func() time.Time
	OnProgress ProgressCallback
}

// Runner executes harvest runs for one configuration.
type Runner struct {
	cfg        *config.Config
	fetcher    CatalogFetcher
	validator  RecordValidator
	writer     RecordWriter
	classifier *classify.Classifier
	normalizer *spatial.Normalizer
	assembler  *aardvark.Assembler
	logger     logging.Logger
	now        func() time.Time
	onProgress ProgressCallback
}

// New creates a Runner. Fetcher, Validator and Writer are required.
func New(cfg *config.Config, opts Options) (*Runner, error) {
	if cfg == nil {
		return nil, &config.ConfigError{Message: "configuration is required"}
	}
	if opts.Fetcher == nil || opts.Validator == nil || opts.Writer == nil {
		return nil, &config.ConfigError{Message: "fetcher, validator and writer are required"}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Runner{
		cfg:       cfg,
		fetcher:   opts.Fetcher,
		validator: opts.Validator,
		writer:    opts.Writer,
		classifier: classify.New(classify.Defaults{
			Class: cfg.Defaults.ResourceClass,
			Type:  cfg.Defaults.ResourceType,
		}),
		normalizer: spatial.NewNormalizer(opts.Table, opts.Logger),
		assembler:  aardvark.NewAssembler(cfg.Defaults, opts.Logger, aardvark.WithClock(opts.Clock)),
		logger:     opts.Logger,
		now:        opts.Clock,
		onProgress: opts.OnProgress,
	}, nil
}

// Run harvests every site in catalog-key order. Site and dataset failures are logged and counted;
// the returned error is only set when ctx is canceled.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{Catalog: r.cfg.CatalogKey, Started: r.now()}
	r.logger.Info("harvest started",
		logging.String("catalog", r.cfg.CatalogKey),
		logging.Int("sites", len(r.cfg.Sites)))

	for _, site := range r.cfg.Sites {
		if err := ctx.Err(); err != nil {
			summary.Finished = r.now()
			return summary, err
		}
		summary.Sites = append(summary.Sites, r.RunSite(ctx, site))
	}

	summary.Finished = r.now()
	totals := summary.Totals()
	r.logger.Info("harvest finished",
		logging.Int("datasets", totals.Datasets),
		logging.Int("accepted", totals.Accepted),
		logging.Int("skipped", totals.Skipped),
		logging.Int("rejected", totals.Rejected),
		logging.Int("write_failures", totals.WriteFailures),
		logging.Strings("unavailable_sites", summary.UnavailableSites()),
		logging.Duration("duration", summary.Duration()))
	return summary, nil
}

// RunSite fetches one site's catalog and processes every dataset in it.
func (r *Runner) RunSite(ctx context.Context, site *config.Site) SiteSummary {
	result := SiteSummary{Key: site.Key, SiteName: site.SiteName}
	log := r.logger.With(logging.Site(site.Key))

	catalog, err := r.fetcher.FetchCatalog(ctx, site)
	if err != nil {
		log.Error("site unavailable, skipping", logging.String("url", site.SiteURL), logging.Err(err))
		result.Unavailable = true
		result.Err = err
		r.emit(ProgressEvent{Site: site.Key, Status: "unavailable", Message: err.Error()})
		return result
	}
	log.Info("catalog fetched",
		logging.Int("datasets", catalog.Len()),
		logging.Int("malformed", len(catalog.Malformed)))

	for _, m := range catalog.Malformed {
		result.Datasets++
		result.Rejected++
		outcome := r.RejectMalformed(site, m)
		r.emit(ProgressEvent{Site: site.Key, Status: Rejected.String(), Message: outcome.Err.Error()})
	}

	for _, ds := range catalog.Datasets {
		result.Datasets++
		outcome := r.ProcessDataset(site, ds)

		switch outcome.Status {
		case Skipped:
			result.Skipped++
			r.emit(ProgressEvent{Site: site.Key, ID: outcome.ID, Status: Skipped.String(), Message: outcome.Reason})
			continue
		case Rejected:
			result.Rejected++
			r.emit(ProgressEvent{Site: site.Key, ID: outcome.ID, Status: Rejected.String(), Message: outcome.Err.Error()})
			continue
		}

		result.Accepted++
		path, err := r.writer.Write(*outcome.Record)
		if err != nil {
			result.WriteFailures++
			log.Error("failed to write record",
				logging.DatasetID(outcome.ID), logging.Identifier(ds.Identifier),
				logging.LandingPage(ds.LandingPage), logging.Err(err))
			r.emit(ProgressEvent{Site: site.Key, ID: outcome.ID, Status: StageWrite, Message: err.Error()})
			continue
		}
		log.Debug("record written", logging.DatasetID(outcome.ID), logging.String("path", path))
		r.emit(ProgressEvent{Site: site.Key, ID: outcome.ID, Status: Accepted.String(), Message: path})
	}

	log.Info("site finished",
		logging.Int("accepted", result.Accepted),
		logging.Int("skipped", result.Skipped),
		logging.Int("rejected", result.Rejected))
	return result
}

// ProcessDataset runs one dataset through the crosswalk without writing anything.
func (r *Runner) ProcessDataset(site *config.Site, ds dcat.Dataset) Outcome {
	fields, err := dcat.Extract(ds)
	if err != nil {
		r.logger.Warn("dataset rejected",
			logging.Site(site.Key), logging.String("title", ds.Title),
			logging.LandingPage(ds.LandingPage), logging.String("stage", StageExtract), logging.Err(err))
		return rejected("", StageExtract, err)
	}

	b := r.assembler.Start(site, fields)
	ref := b.Ref()
	log := b.Logger()
	if site.Skips(ref.UUID) {
		log.Info("dataset is on the skip-list")
		return skipped(b.ID(), "skip-list")
	}

	refs := references.Build(fields.LandingPage, fields.Distributions)
	refsJSON, err := refs.JSON()
	if err != nil {
		log.Warn("dataset rejected", logging.String("stage", StageReferences), logging.Err(err))
		return rejected(b.ID(), StageReferences, err)
	}

	class := r.classifier.Classify(classify.Input{
		Title:         fields.Title,
		Description:   fields.Description,
		Keywords:      fields.Keywords,
		Publisher:     fields.Publisher,
		References:    refsJSON,
		Distributions: fields.Distributions,
		App:           site.IsApp(ref.UUID),
		Map:           site.IsMap(ref.UUID),
	})
	log.Debug("dataset classified",
		logging.String("rule", class.Rule),
		logging.Strings("class", class.Class),
		logging.Strings("type", class.Type),
		logging.String("format", class.Format))

	extent := r.normalizer.Normalize(fields.Spatial, site.DefaultBbox, b.ID(), fields.LandingPage)

	rec := b.Classification(class).
		Envelope(extent.Envelope).
		References(refsJSON).
		Build()

	if err := r.validator.ValidateRecord(rec); err != nil {
		logFields := []logging.Field{logging.String("stage", StageValidate), logging.Err(err)}
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			logFields = append(logFields, logging.Strings("violations", validationErr.Fields()))
		}
		log.Error("record failed schema validation, dropped", logFields...)
		return rejected(rec.ID, StageValidate, err)
	}

	return accepted(rec)
}

// RejectMalformed rejects a catalog entry whose fields could not be decoded.
func (r *Runner) RejectMalformed(site *config.Site, m dcat.MalformedDataset) Outcome {
	r.logger.Warn("dataset rejected",
		logging.Site(site.Key),
		logging.Int("index", m.Index),
		logging.Identifier(m.Identifier),
		logging.String("title", m.Title),
		logging.LandingPage(m.LandingPage),
		logging.String("stage", StageExtract),
		logging.Err(m.Err))
	return rejected("", StageExtract, fmt.Errorf("dataset %d: %w", m.Index, m.Err))
}

func (r *Runner) emit(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
