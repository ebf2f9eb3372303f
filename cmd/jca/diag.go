package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jca/internal/model"
)

var diagFormat string

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "List analysis diagnostics",
	Long: `List the recoverable conditions collected during analysis: unresolved
and ambiguous call sites with their source locations, and references to
types missing from the catalog.`,
	Args: cobra.NoArgs,
	Run:  runDiag,
}

func init() {
	diagCmd.Flags().StringVar(&diagFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(diagCmd)
}

func runDiag(cmd *cobra.Command, args []string) {
	logger := newLogger(diagFormat)
	cfg := mustLoadConfig()

	snap := mustAnalyze(cfg, logger)
	response := &DiagResponseCLI{Diagnostics: snap.Diagnostics()}

	output, err := FormatResponse(response, OutputFormat(diagFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// DiagResponseCLI contains the diagnostics list for CLI output
type DiagResponseCLI struct {
	Diagnostics []model.Diagnostic `json:"diagnostics"`
}
