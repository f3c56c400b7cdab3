package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/aardvark-harvest/internal/classify"
	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/fetch"
	"github.com/jonathan/aardvark-harvest/internal/observability"
	"github.com/jonathan/aardvark-harvest/internal/schemas"
	"github.com/jonathan/aardvark-harvest/internal/spatial"
	"github.com/spf13/cobra"
)

var checkConfigCommand = &cobra.Command{
	Use:   "check-config",
	Short: "Load and validate the configuration without harvesting",
	Long: `Loads the configuration, validates required keys, reads the default bbox table and reports
sites whose DefaultBbox names a region missing from it. With --schema the schema is fetched and
compiled too.`,
	RunE: runCheckConfig,
}

var checkSchema bool

func init() {
	checkConfigCommand.Flags().BoolVar(&checkSchema, "schema", false, "Also fetch and compile the configured schema")
	rootCmd.AddCommand(checkConfigCommand)
}

func runCheckConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return err
	}

	var table spatial.Table
	if cfg.Settings.DefaultBbox != "" {
		table, err = spatial.LoadTable(cfg.Settings.DefaultBbox)
		if err != nil {
			return &config.ConfigError{Message: "failed to load default bbox table", Cause: err}
		}
	}

	var missing int
	for _, site := range cfg.Sites {
		if site.DefaultBbox != "" && table.Lookup(site.DefaultBbox) == nil {
			missing++
			_, _ = fmt.Fprintf(out, "Warning: site %s names unknown default bbox %q\n", site.Key, site.DefaultBbox)
		}
	}

	if checkSchema {
		fetcher := fetch.NewFetcher(fetch.FetcherConfigFrom(cfg.Settings), nil)
		validator, err := schemas.Load(cmd.Context(), fetcher, schemas.ResolveSchemaLocation(cfg.Settings.Schema))
		if err != nil {
			return &config.ConfigError{Message: "schema unavailable", Cause: err}
		}
		_, _ = fmt.Fprintf(out, "Schema OK: %s\n", validator.Location())
	}

	observability.NewPrinter(out).PrintConfig(cfg)
	_, _ = fmt.Fprintf(out, "Classification rules: %s\n", strings.Join(classify.RuleNames(), " > "))
	_, _ = fmt.Fprintf(out, "Configuration OK (%d sites, %d unknown default bboxes)\n", len(cfg.Sites), missing)
	return nil
}
