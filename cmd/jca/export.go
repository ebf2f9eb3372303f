package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jca/internal/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full analysis result to a file",
	Long: `Analyze the fact file and write the complete result to disk: call
graph edges, cycles, metric values, summaries, resolution outcomes, and
diagnostics. The output extension picks the encoding (.json, .yaml), and a
.zst suffix compresses the payload.

Examples:
  jca export --output report.json
  jca export --output report.yaml.zst`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "report.json", "Output file path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	cfg := mustLoadConfig()

	snap := mustAnalyze(cfg, logger)
	if err := export.Write(snap, exportOutput); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Report written", map[string]interface{}{
		"path":    exportOutput,
		"classes": snap.Catalog().ClassCount(),
		"edges":   snap.Graph().EdgeCount(),
	})
}
