package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jca/internal/metrics"
)

var metricsFormat string

var metricsCmd = &cobra.Command{
	Use:   "metrics <scope>",
	Short: "Show every metric value of a method, class, or package",
	Long: `Look up the computed metric values of one scope by qualified name.

Examples:
  jca metrics com.acme.Orders
  jca metrics 'com.acme.Orders#submit(com.acme.Order)' --format=human
  jca metrics com.acme`,
	Args: cobra.ExactArgs(1),
	Run:  runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) {
	logger := newLogger(metricsFormat)
	cfg := mustLoadConfig()
	scope := args[0]

	snap := mustAnalyze(cfg, logger)
	values := snap.Metrics().ScopeValues(scope)
	if len(values) == 0 {
		fmt.Fprintf(os.Stderr, "No metrics for scope %s\n", scope)
		os.Exit(1)
	}

	output, err := FormatResponse(values, OutputFormat(metricsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// metricLevel parses a --level flag value against the registry levels
func metricLevel(level string) (metrics.Level, error) {
	switch metrics.Level(level) {
	case metrics.LevelMethod, metrics.LevelClass, metrics.LevelPackage:
		return metrics.Level(level), nil
	}
	return "", fmt.Errorf("unknown level %q (method, class, package)", level)
}
