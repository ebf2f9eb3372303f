package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	callgraphDirection string
	callgraphReachable bool
	callgraphDepth     int
	callgraphFormat    string
)

var callgraphCmd = &cobra.Command{
	Use:   "callgraph <method>",
	Short: "Get caller/callee relationships for a method",
	Long: `Show the resolved callers and callees of a method, optionally with the
full set of transitively reachable methods.

Direction options:
  - callers: Show only methods that call this method
  - callees: Show only methods called by this method
  - both: Show both callers and callees (default)

Examples:
  jca callgraph 'com.acme.Orders#submit(com.acme.Order)'
  jca callgraph --direction=callers 'com.acme.Orders#submit(com.acme.Order)'
  jca callgraph --reachable --format=human 'com.acme.Main#main(java.lang.String[])'`,
	Args: cobra.ExactArgs(1),
	Run:  runCallgraph,
}

func init() {
	callgraphCmd.Flags().StringVar(&callgraphDirection, "direction", "both", "Direction to traverse (callers, callees, both)")
	callgraphCmd.Flags().BoolVar(&callgraphReachable, "reachable", false, "Include all transitively reachable methods")
	callgraphCmd.Flags().IntVar(&callgraphDepth, "depth", 0, "Limit reachability to this many call hops (0 = unlimited)")
	callgraphCmd.Flags().StringVar(&callgraphFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(callgraphCmd)
}

func runCallgraph(cmd *cobra.Command, args []string) {
	logger := newLogger(callgraphFormat)
	cfg := mustLoadConfig()
	method := args[0]

	snap := mustAnalyze(cfg, logger)
	graph := snap.Graph()

	response := &CallgraphResponseCLI{Method: method}
	if callgraphDirection == "callers" || callgraphDirection == "both" {
		response.Callers = graph.Callers(method)
	}
	if callgraphDirection == "callees" || callgraphDirection == "both" {
		response.Callees = graph.Callees(method)
	}
	if callgraphReachable {
		response.Reachable = graph.ReachableWithin(method, callgraphDepth)
	}

	output, err := FormatResponse(response, OutputFormat(callgraphFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)
}

// CallgraphResponseCLI contains call graph results for CLI output
type CallgraphResponseCLI struct {
	Method    string   `json:"method"`
	Callers   []string `json:"callers,omitempty"`
	Callees   []string `json:"callees,omitempty"`
	Reachable []string `json:"reachable,omitempty"`
}
