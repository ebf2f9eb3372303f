package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cyclesFormat string

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "List recursion cycles in the call graph",
	Long: `Enumerate call cycles: a method calling itself is a one-node cycle,
mutual recursion a multi-node cycle. Output order is deterministic.`,
	Args: cobra.NoArgs,
	Run:  runCycles,
}

func init() {
	cyclesCmd.Flags().StringVar(&cyclesFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) {
	logger := newLogger(cyclesFormat)
	cfg := mustLoadConfig()

	snap := mustAnalyze(cfg, logger)
	response := &CyclesResponseCLI{Cycles: snap.Graph().FindCycles()}

	output, err := FormatResponse(response, OutputFormat(cyclesFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// CyclesResponseCLI contains cycle enumeration results for CLI output
type CyclesResponseCLI struct {
	Cycles [][]string `json:"cycles"`
}
