package main

import (
	"github.com/spf13/cobra"

	"jca/internal/version"
)

var (
	// factsFlag points at the extractor fact file every command analyzes
	factsFlag string
)

var rootCmd = &cobra.Command{
	Use:   "jca",
	Short: "JCA - Java Code Analyzer",
	Long: `JCA (Java Code Analyzer) derives a resolved method call graph and code
metrics from structural facts extracted upstream, and aggregates them into
statistical summaries, rankings, and threshold reports.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("JCA version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&factsFlag, "facts", "facts.json",
		"Path to the extractor fact file (.json, .yaml, optionally .zst)")
}
