package classify

import (
	"strings"

	"github.com/jonathan/aardvark-harvest/internal/dcat"
)

// Input is everything the rule table looks at for one dataset.
type Input struct {
	Title         string
	Description   string
	Keywords      []string
	Publisher     string
	References    string
	Format        string
	Distributions []dcat.Distribution
	// App and Map are set when the dataset is on the site's app-list or map-list.
	App bool
	Map bool
}

// Result is the classification of one dataset. Class is never empty.
type Result struct {
	Class  []string
	Type   []string
	Format string
	// Rule names the table row that produced the result.
	Rule string
}

// Defaults are the configured fallback class and type.
type Defaults struct {
	Class string
	Type  string
}

// Classifier evaluates the rule table.
type Classifier struct {
	defaults Defaults
}

// New creates a Classifier. An empty default class falls back to Other.
func New(defaults Defaults) *Classifier {
	if strings.TrimSpace(defaults.Class) == "" {
		defaults.Class = ClassOther
	}
	return &Classifier{defaults: defaults}
}

// Classify returns the result of the first matching rule. When Input.Format is empty it is
// inferred from the distributions first.
func (c *Classifier) Classify(in Input) Result {
	if in.Format == "" {
		in.Format = InferFormat(in.Distributions)
	}
	f := newFacts(in)
	for _, rule := range rules {
		if !rule.Match(f) {
			continue
		}
		res := rule.Apply(f, c.defaults)
		res.Rule = rule.Name
		if len(res.Class) == 0 || res.Class[0] == "" {
			res.Class = []string{c.defaults.Class}
		}
		return res
	}
	// unreachable: the table ends with an unconditional fallback
	return Result{Class: []string{c.defaults.Class}, Type: []string{}, Rule: "fallback"}
}

// InferFormat derives a canonical format from distribution titles, then format strings.
func InferFormat(dists []dcat.Distribution) string {
	for _, d := range dists {
		if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(d.Title))]; ok {
			return f
		}
	}
	for _, d := range dists {
		if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(d.Format))]; ok {
			return f
		}
	}
	return ""
}
