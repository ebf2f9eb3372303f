package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jca/internal/metrics"
	"jca/internal/stats"
)

var (
	summaryMetric string
	summaryLevel  string
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the statistical summary of a metric",
	Long: `Summarize one metric's value distribution at a scope level:
min, max, mean, median, population standard deviation, and quartiles.

Examples:
  jca summary --metric complexity.cyclomatic
  jca summary --metric loc.physical --level class --format=human`,
	Args: cobra.NoArgs,
	Run:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryMetric, "metric", metrics.Cyclomatic, "Metric name to summarize")
	summaryCmd.Flags().StringVar(&summaryLevel, "level", "method", "Scope level (method, class, package)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	logger := newLogger(summaryFormat)
	cfg := mustLoadConfig()

	level, err := metricLevel(summaryLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap := mustAnalyze(cfg, logger)
	summary, ok := snap.Summary(summaryMetric, level)
	if !ok {
		fmt.Fprintf(os.Stderr, "No summary for metric %q at level %q\n", summaryMetric, summaryLevel)
		os.Exit(1)
	}

	response := &SummaryResponseCLI{
		Metric:  summaryMetric,
		Level:   string(level),
		Summary: summary,
	}

	output, err := FormatResponse(response, OutputFormat(summaryFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// SummaryResponseCLI contains one metric's statistical summary for CLI output
type SummaryResponseCLI struct {
	Metric  string        `json:"metric"`
	Level   string        `json:"level"`
	Summary stats.Summary `json:"summary"`
}
