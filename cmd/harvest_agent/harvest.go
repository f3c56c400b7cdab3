package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/aardvark-harvest/internal/config"
	"github.com/jonathan/aardvark-harvest/internal/harvest"
	"github.com/jonathan/aardvark-harvest/internal/logging"
	"github.com/jonathan/aardvark-harvest/internal/observability"
	"github.com/spf13/cobra"
)

// DefaultConfigPath is read when neither --config nor HARVEST_CONFIG is set.
const DefaultConfigPath = "config.yaml"

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("HARVEST_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath
}

// newLogger writes JSON logs to stderr and, when LOGFILE is set, to that file.
func newLogger(settings config.Settings) (logging.Logger, error) {
	paths := append([]string(nil), logging.DefaultOutputPaths...)
	if settings.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(settings.LogFile), 0755); err != nil {
			return nil, &config.ConfigError{Message: "failed to create log directory", Cause: err}
		}
		paths = append(paths, settings.LogFile)
	}
	logger, err := logging.New(logging.Config{Level: settings.LogLevel, OutputPaths: paths})
	if err != nil {
		return nil, &config.ConfigError{Message: "failed to open log output", Cause: err}
	}
	return logger, nil
}

func runHarvestCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(resolveConfigPath())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Settings)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	printer := observability.NewPrinter(cmd.OutOrStdout())
	var onProgress harvest.ProgressCallback
	if verbose {
		onProgress = printer.PrintProgress
	}

	runner, err := harvest.NewFromConfig(ctx, cfg, logger, onProgress)
	if err != nil {
		logger.Error("harvest aborted", logging.Err(err))
		return err
	}

	summary, err := runner.Run(ctx)
	if verbose {
		printer.PrintSummary(summary)
	}
	if err != nil {
		return fmt.Errorf("harvest interrupted: %w", err)
	}
	return nil
}
