package harvest

import "time"

// SiteSummary counts what happened to one site's datasets.
type SiteSummary struct {
	Key      string
	SiteName string
	// Unavailable is set when the catalog could not be fetched; Err holds the reason.
	Unavailable   bool
	Err           error
	Datasets      int
	Accepted      int
	Skipped       int
	Rejected      int
	WriteFailures int
}

// Written is the number of files produced for the site.
func (s SiteSummary) Written() int {
	return s.Accepted - s.WriteFailures
}

// Summary is the result of one run.
type Summary struct {
	Catalog  string
	Started  time.Time
	Finished time.Time
	Sites    []SiteSummary
}

// Totals sums every site.
func (s *Summary) Totals() SiteSummary {
	total := SiteSummary{Key: "total"}
	for _, site := range s.Sites {
		total.Datasets += site.Datasets
		total.Accepted += site.Accepted
		total.Skipped += site.Skipped
		total.Rejected += site.Rejected
		total.WriteFailures += site.WriteFailures
	}
	return total
}

// UnavailableSites lists the keys of sites whose catalog could not be fetched.
func (s *Summary) UnavailableSites() []string {
	var keys []string
	for _, site := range s.Sites {
		if site.Unavailable {
			keys = append(keys, site.Key)
		}
	}
	return keys
}

// Duration is the wall time of the run.
func (s *Summary) Duration() time.Duration {
	return s.Finished.Sub(s.Started)
}
