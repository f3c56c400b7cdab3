package aardvark

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonathan/aardvark-harvest/internal/classify"
	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/dcat"
	"github.com/jonathan/aardvark-harvest/internal/logging"
)

// Assembler holds what every record of a run shares: the DEFAULT block, the logger and the
// clock stamped into gbl_mdModified_dt.
type Assembler struct {
	defaults config.Defaults
	logger   logging.Logger
	now      func() time.Time
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

// NewAssembler creates an Assembler.
func NewAssembler(defaults config.Defaults, logger logging.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = logging.NewNop()
	}
	a := &Assembler{defaults: defaults, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start opens a builder for one dataset of site. A synthesized UUID is logged here.
func (a *Assembler) Start(site *config.Site, f dcat.Fields) *Builder {
	ref := ParseIdentifier(f.Identifier)
	b := &Builder{
		a:      a,
		site:   site,
		fields: f,
		ref:    ref,
		logger: a.logger.With(
			logging.Site(site.Key),
			logging.DatasetID(ref.RecordID(site.SiteName)),
			logging.Identifier(f.Identifier),
			logging.LandingPage(f.LandingPage),
		),
	}
	if ref.Synthesized {
		b.logger.Warn("identifier has no id= token, synthesized a UUID", logging.String("uuid", ref.UUID))
	}
	return b
}

// Builder collects the pipeline stage outputs for one dataset. The record only exists once
// Build is called.
type Builder struct {
	a      *Assembler
	site   *config.Site
	fields dcat.Fields
	ref    DatasetRef
	logger logging.Logger

	class      classify.Result
	envelope   string
	references string
}

// Ref is the parsed dataset identity.
func (b *Builder) Ref() DatasetRef { return b.ref }

// ID is the record id and output file stem.
func (b *Builder) ID() string { return b.ref.RecordID(b.site.SiteName) }

// Logger is the builder's logger, tagged with the dataset context.
func (b *Builder) Logger() logging.Logger { return b.logger }

// Classification sets the classifier output.
func (b *Builder) Classification(res classify.Result) *Builder {
	b.class = res
	return b
}

// Envelope sets locn_geometry and dcat_bbox. Empty leaves them absent.
func (b *Builder) Envelope(envelope string) *Builder {
	b.envelope = envelope
	return b
}

// References sets the serialized dct_references_s value.
func (b *Builder) References(refs string) *Builder {
	b.references = refs
	return b
}

// Build returns the finished record. Empty required fields are filled from the configured
// fallbacks where one exists and logged; anything still missing is left to schema validation.
func (b *Builder) Build() Record {
	d := b.a.defaults
	f := b.fields

	temporal, years := b.temporal()
	rec := Record{
		ID:           b.ID(),
		Identifier:   []string{f.Identifier},
		Title:        b.title(),
		Description:  b.description(),
		Creator:      clone(f.Creator),
		Publisher:    clone(f.Creator),
		Provider:     d.Provider,
		Keyword:      clone(f.Keywords),
		Spatial:      clone(b.site.Spatial),
		Geometry:     strPtr(b.envelope),
		BBox:         strPtr(b.envelope),
		Issued:       b.issued(),
		Temporal:     temporal,
		IndexYear:    years,
		Language:     clone(d.Language),
		Rights:       b.rights(),
		AccessRights: d.AccessRights,
		References:   strPtr(b.references),
		MemberOf:     clone(d.MemberOf),
		MdVersion:    d.MdVersion,
		MdModified:   b.a.now().UTC().Format(ModifiedLayout),
		Suppressed:   d.Suppressed,
		DisplayNote:  clone(d.DisplayNote),
	}
	b.applyClassification(&rec)

	if strings.EqualFold(rec.AccessRights, AccessRestricted) && !slices.Contains(rec.DisplayNote, d.RestrictedNote) {
		rec.DisplayNote = append(rec.DisplayNote, d.RestrictedNote)
	}

	b.fillRequired(&rec)
	return rec
}

func (b *Builder) title() string {
	if prefix := strings.TrimSpace(b.site.CreatedBy); prefix != "" {
		return prefix + " - " + b.fields.Title
	}
	return b.fields.Title
}

// description is the stripped text followed by the boilerplate. A description carrying the
// placeholder is replaced by the boilerplate alone.
func (b *Builder) description() []string {
	d := b.a.defaults
	text := strings.TrimSpace(b.fields.Description)
	if text == "" || (d.Placeholder != "" && strings.Contains(text, d.Placeholder)) {
		return []string{d.Boilerplate}
	}
	return []string{text, d.Boilerplate}
}

func (b *Builder) issued() *string {
	raw := b.fields.Issued
	if raw == "" {
		return nil
	}
	t, err := parseDate(raw)
	if err != nil {
		b.logger.Warn("could not parse issued date, keeping raw value",
			logging.String("issued", raw), logging.Err(err))
		return strPtr(raw)
	}
	return strPtr(t.Format(IssuedLayout))
}

// temporal derives labels and index years: modified first, issued appended.
func (b *Builder) temporal() ([]string, []int) {
	var labels []string
	var years []int
	add := func(label, raw string) {
		if raw == "" {
			return
		}
		year, err := yearOf(raw)
		if err != nil {
			b.logger.Warn("could not read year from date",
				logging.String("field", strings.ToLower(label)), logging.String("value", raw), logging.Err(err))
			return
		}
		labels = append(labels, fmt.Sprintf("%s %d", label, year))
		if !slices.Contains(years, year) {
			years = append(years, year)
		}
	}
	add("Modified", b.fields.Modified)
	add("Issued", b.fields.Issued)
	return labels, years
}

func (b *Builder) rights() []string {
	rights := clone(b.a.defaults.Rights)
	if license := strings.TrimSpace(b.fields.License); license != "" {
		rights = append(rights, license)
	}
	return rights
}

// applyClassification copies the classifier result. The site's app-list and map-list win
// over whatever the content rules decided.
func (b *Builder) applyClassification(rec *Record) {
	res := b.class
	switch {
	case b.site.IsApp(b.ref.UUID):
		res = classify.Result{Class: []string{classify.ClassWebsites}}
	case b.site.IsMap(b.ref.UUID):
		res = classify.Result{Class: []string{classify.ClassMaps}, Type: []string{classify.TypeDigitalMaps}}
	}

	rec.ResourceClass = clone(res.Class)
	if len(rec.ResourceClass) == 0 {
		rec.ResourceClass = []string{b.a.defaults.ResourceClass}
	}
	rec.ResourceType = clone(res.Type)
	if rec.ResourceType == nil {
		rec.ResourceType = []string{}
	}
	rec.Format = strPtr(res.Format)
}

func (b *Builder) fillRequired(rec *Record) {
	d := b.a.defaults
	if len(rec.Publisher) == 0 {
		if createdBy := strings.TrimSpace(b.site.CreatedBy); createdBy != "" {
			rec.Publisher = []string{createdBy}
			b.logger.Warn("dataset has no publisher, using the site's creator label",
				logging.String("publisher", createdBy))
		} else if d.Publisher != "" {
			rec.Publisher = []string{d.Publisher}
			b.logger.Warn("dataset has no publisher, using configured default",
				logging.String("publisher", d.Publisher))
		} else {
			rec.Publisher = []string{}
			b.logger.Warn("dataset has no publisher and no default is configured")
		}
	}
	if len(rec.Spatial) == 0 {
		if d.Spatial != "" {
			rec.Spatial = []string{d.Spatial}
			b.logger.Warn("site has no spatial coverage, using configured default",
				logging.String("spatial", d.Spatial))
		} else {
			rec.Spatial = []string{}
			b.logger.Warn("site has no spatial coverage and no default is configured")
		}
	}
	if len(rec.ResourceType) == 0 && d.ResourceType != "" && !b.site.IsApp(b.ref.UUID) {
		rec.ResourceType = []string{d.ResourceType}
		b.logger.Debug("no resource type inferred, using configured default",
			logging.String("resource_type", d.ResourceType))
	}
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
