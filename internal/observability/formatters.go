// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/harvest"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs per-site counters and run totals.
func (p *Printer) PrintSummary(summary *harvest.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Catalog:  %s\n", summary.Catalog))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", summary.Duration().Round(time.Millisecond)))
	sb.WriteString("\n")

	for _, site := range summary.Sites {
		if site.Unavailable {
			sb.WriteString(fmt.Sprintf("✗ %s unavailable\n", site.Key))
			continue
		}
		sb.WriteString(fmt.Sprintf("• %s (%d datasets)\n", site.Key, site.Datasets))
		sb.WriteString(fmt.Sprintf("    %d written, %d skipped, %d rejected\n", site.Written(), site.Skipped, site.Rejected))
	}

	totals := summary.Totals()
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Datasets:       %d\n", totals.Datasets))
	sb.WriteString(fmt.Sprintf("Written:        %d\n", totals.Written()))
	sb.WriteString(fmt.Sprintf("Skipped:        %d\n", totals.Skipped))
	sb.WriteString(fmt.Sprintf("Rejected:       %d\n", totals.Rejected))
	if totals.WriteFailures > 0 {
		sb.WriteString(fmt.Sprintf("Write failures: %d\n", totals.WriteFailures))
	}
	if unavailable := summary.UnavailableSites(); len(unavailable) > 0 {
		sb.WriteString(fmt.Sprintf("Unavailable:    %s\n", strings.Join(unavailable, ", ")))
	}

	p.printBox("HARVEST SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintConfig outputs the active catalog and its sites.
func (p *Printer) PrintConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Catalog:  %s\n", cfg.CatalogKey))
	sb.WriteString(fmt.Sprintf("Output:   %s\n", cfg.Settings.OutputDir))
	sb.WriteString(fmt.Sprintf("Schema:   %s\n", cfg.Settings.Schema))
	sb.WriteString(fmt.Sprintf("Retries:  %d every %s\n", cfg.Settings.MaxRetry, cfg.Settings.RetryDelay()))
	sb.WriteString(fmt.Sprintf("Sites:    %d\n", len(cfg.Sites)))

	count := min(len(cfg.Sites), maxItemsToShow)
	for i := 0; i < count; i++ {
		site := cfg.Sites[i]
		sb.WriteString(fmt.Sprintf("  • %s (%s)", site.Key, site.SiteName))
		if lists := len(site.SkipList) + len(site.AppList) + len(site.MapList); lists > 0 {
			sb.WriteString(fmt.Sprintf(" %d overrides", lists))
		}
		sb.WriteString("\n")
	}
	if len(cfg.Sites) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cfg.Sites)-maxItemsToShow))
	}

	p.printBox("ACTIVE CONFIGURATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProgress outputs a one-line progress update.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event harvest.ProgressEvent) {
	if event.ID == "" {
		fmt.Fprintf(p.out, "[%s] %s: %s\n", event.Site, event.Status, event.Message)
		return
	}
	fmt.Fprintf(p.out, "[%s] %s %s: %s\n", event.Site, event.ID, event.Status, event.Message)
}
