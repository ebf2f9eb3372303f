package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jca/internal/stats"
)

var (
	gateProfile string
	gateFormat  string
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Evaluate quality-gate thresholds against the analysis",
	Long: `Run the threshold rules of a quality-gate profile over the computed
metrics. Exits non-zero when any rule is violated, so the command can gate
CI pipelines.

Examples:
  jca gate
  jca gate --profile quality.toml --format=human`,
	Args: cobra.NoArgs,
	Run:  runGate,
}

func init() {
	gateCmd.Flags().StringVar(&gateProfile, "profile", "", "TOML threshold profile (default: built-in rules)")
	gateCmd.Flags().StringVar(&gateFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(gateCmd)
}

func runGate(cmd *cobra.Command, args []string) {
	logger := newLogger(gateFormat)
	cfg := mustLoadConfig()

	profilePath := gateProfile
	if profilePath == "" {
		profilePath = cfg.Gates.ProfilePath
	}

	profile := stats.DefaultProfile()
	if profilePath != "" {
		loaded, err := stats.LoadProfile(profilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
			os.Exit(1)
		}
		profile = loaded
	}

	snap := mustAnalyze(cfg, logger)
	response := &GateResponseCLI{Violations: snap.Violations(profile)}

	output, err := FormatResponse(response, OutputFormat(gateFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(output)

	if len(response.Violations) > 0 {
		os.Exit(2)
	}
}

// GateResponseCLI contains quality-gate results for CLI output
type GateResponseCLI struct {
	Violations []stats.Violation `json:"violations"`
}
