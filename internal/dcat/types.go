// Package dcat models the DCAT-style catalog documents published by open data portals and
// projects each dataset onto the fields the crosswalk reads.
package dcat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Catalog is a portal's data.json document.
type Catalog struct {
	Context     string    `json:"@context,omitempty"`
	Type        string    `json:"@type,omitempty"`
	ConformsTo  string    `json:"conformsTo,omitempty"`
	DescribedBy string    `json:"describedBy,omitempty"`
	Datasets    []Dataset `json:"dataset"`
	// Malformed holds dataset entries that could not be decoded. They do not affect Datasets.
	Malformed []MalformedDataset `json:"-"`
}

// MalformedDataset is a dataset entry whose fields have shapes the crosswalk cannot read.
type MalformedDataset struct {
	// Index is the entry's position in the catalog's dataset array.
	Index       int
	Identifier  string
	Title       string
	LandingPage string
	Err         error
}

// Len is the number of dataset entries, decodable or not.
func (c *Catalog) Len() int {
	return len(c.Datasets) + len(c.Malformed)
}

// UnmarshalJSON implements json.Unmarshaler. Each dataset entry is decoded on its own so one
// bad entry never hides the rest of the catalog.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	type header struct {
		Context     string            `json:"@context,omitempty"`
		Type        string            `json:"@type,omitempty"`
		ConformsTo  string            `json:"conformsTo,omitempty"`
		DescribedBy string            `json:"describedBy,omitempty"`
		Datasets    []json.RawMessage `json:"dataset"`
	}
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	*c = Catalog{
		Context:     h.Context,
		Type:        h.Type,
		ConformsTo:  h.ConformsTo,
		DescribedBy: h.DescribedBy,
		Datasets:    make([]Dataset, 0, len(h.Datasets)),
	}
	for i, raw := range h.Datasets {
		var ds Dataset
		if err := json.Unmarshal(raw, &ds); err != nil {
			c.Malformed = append(c.Malformed, malformed(i, raw, err))
			continue
		}
		c.Datasets = append(c.Datasets, ds)
	}
	return nil
}

// malformed salvages whatever string identifiers an undecodable entry still carries.
func malformed(index int, raw json.RawMessage, err error) MalformedDataset {
	m := MalformedDataset{Index: index, Err: err}
	var keys map[string]json.RawMessage
	if json.Unmarshal(raw, &keys) != nil {
		return m
	}
	str := func(key string) string {
		var s string
		_ = json.Unmarshal(keys[key], &s)
		return strings.TrimSpace(s)
	}
	m.Identifier = str("identifier")
	m.Title = str("title")
	m.LandingPage = str("landingPage")
	return m
}

// Dataset is one raw dataset description. Keys other than these are ignored.
type Dataset struct {
	Title        string         `json:"title,omitempty"`
	Identifier   string         `json:"identifier,omitempty"`
	Description  string         `json:"description,omitempty"`
	Issued       string         `json:"issued,omitempty"`
	Modified     string         `json:"modified,omitempty"`
	Keyword      StringList     `json:"keyword,omitempty"`
	Spatial      SpatialText    `json:"spatial,omitempty"`
	Distribution []Distribution `json:"distribution,omitempty"`
	Publisher    *Publisher     `json:"publisher,omitempty"`
	LandingPage  string         `json:"landingPage,omitempty"`
	License      string         `json:"license,omitempty"`
}

// Distribution is one access point for a dataset.
type Distribution struct {
	Title       string `json:"title,omitempty"`
	Format      string `json:"format,omitempty"`
	MediaType   string `json:"mediaType,omitempty"`
	AccessURL   string `json:"accessURL,omitempty"`
	DownloadURL string `json:"downloadURL,omitempty"`
}

// URL returns the access URL, falling back to the download URL.
func (d Distribution) URL() string {
	if d.AccessURL != "" {
		return d.AccessURL
	}
	return d.DownloadURL
}

// Publisher is the publishing agent. Portals emit either an object or a bare name.
type Publisher struct {
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Publisher) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.Name)
	}
	type plain Publisher
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("publisher: %w", err)
	}
	*p = Publisher(v)
	return nil
}

// StringList accepts either a JSON string or an array of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("keyword list: %w", err)
	}
	*l = items
	return nil
}

// SpatialText is the free-text bounding box. A numeric array is joined with commas.
type SpatialText string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SpatialText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = SpatialText(v)
		return nil
	}
	var nums []float64
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("spatial: %w", err)
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.FormatFloat(n, 'f', -1, 64)
	}
	*s = SpatialText(strings.Join(parts, ","))
	return nil
}
