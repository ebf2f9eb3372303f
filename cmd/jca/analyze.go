package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jca/internal/model"
	"jca/internal/storage"
)

var (
	analyzeFormat  string
	analyzeNoStore bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [facts-file]",
	Short: "Run the full analysis pipeline over a fact file",
	Long: `Resolve every call site, build the call graph, compute metrics, and
aggregate statistics into one snapshot. The run is persisted to the
run-history database unless storage is disabled.

Examples:
  jca analyze facts.json
  jca analyze facts.yaml.zst --format=human
  jca analyze --facts build/facts.json --no-store`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format (json, human)")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "Skip persisting the run to the history database")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	start := time.Now()
	if len(args) == 1 {
		factsFlag = args[0]
	}
	logger := newLogger(analyzeFormat)
	cfg := mustLoadConfig()

	snap := mustAnalyze(cfg, logger)

	if cfg.Storage.Enabled && !analyzeNoStore {
		db, err := storage.Open(cfg.Storage.Path, logger)
		if err != nil {
			logger.Warn("Run history unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer db.Close()
			if err := db.SaveRun(snap, factsFlag); err != nil {
				logger.Warn("Failed to persist run", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	resolved, unresolved, ambiguous := 0, 0, 0
	for _, call := range snap.ResolvedCalls() {
		switch call.Status {
		case model.StatusResolved:
			resolved++
		case model.StatusUnresolved:
			unresolved++
		case model.StatusAmbiguous:
			ambiguous++
		}
	}

	response := &AnalyzeResponseCLI{
		RunID:        snap.RunID(),
		Classes:      snap.Catalog().ClassCount(),
		Methods:      snap.Catalog().MethodCount(),
		CallSites:    len(snap.ResolvedCalls()),
		Resolved:     resolved,
		Unresolved:   unresolved,
		Ambiguous:    ambiguous,
		Edges:        snap.Graph().EdgeCount(),
		Multiplicity: snap.Graph().TotalMultiplicity(),
		Cycles:       len(snap.Graph().FindCycles()),
	}

	output, err := FormatResponse(response, OutputFormat(analyzeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)

	logger.Debug("Analyze command completed", map[string]interface{}{
		"facts":      factsFlag,
		"durationMs": time.Since(start).Milliseconds(),
	})
}

// AnalyzeResponseCLI summarizes one analysis run for CLI output
type AnalyzeResponseCLI struct {
	RunID        string `json:"runId"`
	Classes      int    `json:"classes"`
	Methods      int    `json:"methods"`
	CallSites    int    `json:"callSites"`
	Resolved     int    `json:"resolved"`
	Unresolved   int    `json:"unresolved"`
	Ambiguous    int    `json:"ambiguous"`
	Edges        int    `json:"edges"`
	Multiplicity int    `json:"multiplicity"`
	Cycles       int    `json:"cycles"`
}
