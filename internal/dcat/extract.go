package dcat

import (
	"errors"
	"strings"
)

// ErrMissingIdentifier rejects a dataset before classification.
var ErrMissingIdentifier = errors.New("dataset has no identifier")

// UntitledDataset is used when a dataset carries no title.
const UntitledDataset = "Untitled Dataset"

// Fields is the normalized projection of a Dataset. Only Identifier is guaranteed non-empty.
type Fields struct {
	Title         string
	Identifier    string
	Description   string
	Creator       []string
	Issued        string
	Modified      string
	Keywords      []string
	Spatial       string
	Distributions []Distribution
	Publisher     string
	LandingPage   string
	License       string
}

// Extract normalizes a raw dataset. Absent optional values become empty containers.
func Extract(ds Dataset) (Fields, error) {
	identifier := strings.TrimSpace(ds.Identifier)
	if identifier == "" {
		return Fields{}, ErrMissingIdentifier
	}

	f := Fields{
		Title:         strings.TrimSpace(ds.Title),
		Identifier:    identifier,
		Description:   StripHTML(ds.Description),
		Creator:       []string{},
		Issued:        strings.TrimSpace(ds.Issued),
		Modified:      strings.TrimSpace(ds.Modified),
		Keywords:      []string{},
		Spatial:       strings.TrimSpace(string(ds.Spatial)),
		Distributions: []Distribution{},
		LandingPage:   strings.TrimSpace(ds.LandingPage),
		License:       StripHTML(ds.License),
	}
	if f.Title == "" {
		f.Title = UntitledDataset
	}
	if ds.Publisher != nil && strings.TrimSpace(ds.Publisher.Name) != "" {
		f.Publisher = strings.TrimSpace(ds.Publisher.Name)
		f.Creator = []string{f.Publisher}
	}
	for _, kw := range ds.Keyword {
		if kw = strings.TrimSpace(kw); kw != "" {
			f.Keywords = append(f.Keywords, kw)
		}
	}
	f.Distributions = append(f.Distributions, ds.Distribution...)

	return f, nil
}
