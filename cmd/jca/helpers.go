package main

import (
	"context"
	"fmt"
	"os"

	"jca/internal/analysis"
	"jca/internal/config"
	"jca/internal/logging"
	"jca/internal/snapshot"
)

// newLogger builds the command logger; JSON output keeps logs off the
// result stream when the command itself prints JSON
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}

	cfg, err := config.LoadConfig(".")
	level := logging.InfoLevel
	if err == nil && cfg.Logging.Level != "" {
		level = logging.LogLevel(cfg.Logging.Level)
	}

	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  level,
	})
}

// mustLoadConfig loads the analyzer config or exits
func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// mustAnalyze runs the full pipeline over the fact file or exits
func mustAnalyze(cfg *config.Config, logger *logging.Logger) *snapshot.Snapshot {
	snap, err := analysis.Run(context.Background(), factsFlag, cfg.EffectiveWorkers(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", factsFlag, err)
		os.Exit(1)
	}
	return snap
}
