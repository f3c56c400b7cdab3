// Package main provides the entry point for the catalog harvester.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "harvest_agent",
	Short: "Harvest open data portal catalogs into Aardvark records",
	Long: `harvest_agent fetches the DCAT catalog of every site in the active catalog, crosswalks each
dataset into an OpenGeoMetadata Aardvark record, validates it against the configured JSON Schema and
writes accepted records as {id}.json files.

Run without a subcommand to harvest. Exit status is 1 only for fatal errors: unreadable
configuration, an unavailable schema or an interrupted run.`,
	SilenceUsage: true,
	RunE:         runHarvestCmd,
}

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (defaults to HARVEST_CONFIG, then config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print progress and a run summary")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
