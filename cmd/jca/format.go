package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatJSON prints machine-readable JSON
	FormatJSON OutputFormat = "json"
	// FormatHuman prints a readable report
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *AnalyzeResponseCLI:
		return formatAnalyzeHuman(v)
	case *CallgraphResponseCLI:
		return formatCallgraphHuman(v)
	case *CyclesResponseCLI:
		return formatCyclesHuman(v)
	case *RankResponseCLI:
		return formatRankHuman(v)
	case *SummaryResponseCLI:
		return formatSummaryHuman(v)
	case *GateResponseCLI:
		return formatGateHuman(v)
	case *DiagResponseCLI:
		return formatDiagHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatAnalyzeHuman(v *AnalyzeResponseCLI) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Run %s\n", v.RunID))
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("Classes:    %d\n", v.Classes))
	b.WriteString(fmt.Sprintf("Methods:    %d\n", v.Methods))
	b.WriteString(fmt.Sprintf("Call sites: %d (resolved %d, unresolved %d, ambiguous %d)\n",
		v.CallSites, v.Resolved, v.Unresolved, v.Ambiguous))
	b.WriteString(fmt.Sprintf("Edges:      %d (multiplicity %d)\n", v.Edges, v.Multiplicity))
	b.WriteString(fmt.Sprintf("Cycles:     %d\n", v.Cycles))
	return b.String(), nil
}

func formatCallgraphHuman(v *CallgraphResponseCLI) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Call graph around %s\n", v.Method))
	if len(v.Callers) > 0 {
		b.WriteString("Callers:\n")
		for _, c := range v.Callers {
			b.WriteString("  <- " + c + "\n")
		}
	}
	if len(v.Callees) > 0 {
		b.WriteString("Callees:\n")
		for _, c := range v.Callees {
			b.WriteString("  -> " + c + "\n")
		}
	}
	if len(v.Reachable) > 0 {
		b.WriteString(fmt.Sprintf("Reachable (%d):\n", len(v.Reachable)))
		for _, c := range v.Reachable {
			b.WriteString("  " + c + "\n")
		}
	}
	if len(v.Callers) == 0 && len(v.Callees) == 0 {
		b.WriteString("No resolved calls involve this method.\n")
	}
	return b.String(), nil
}

func formatCyclesHuman(v *CyclesResponseCLI) (string, error) {
	if len(v.Cycles) == 0 {
		return "No call cycles found.\n", nil
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d call cycle(s):\n", len(v.Cycles)))
	for i, cycle := range v.Cycles {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, strings.Join(cycle, " -> ")))
	}
	return b.String(), nil
}

func formatRankHuman(v *RankResponseCLI) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Top %d by %s (%s)\n", len(v.Entries), v.Metric, v.Level))
	for i, e := range v.Entries {
		b.WriteString(fmt.Sprintf("  %2d. %-60s %g\n", i+1, e.Scope, e.Value))
	}
	return b.String(), nil
}

func formatSummaryHuman(v *SummaryResponseCLI) (string, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s across %ss (n=%d)\n", v.Metric, v.Level, v.Summary.Count))
	b.WriteString(fmt.Sprintf("  min=%g max=%g mean=%.2f median=%g stddev=%.2f q1=%g q3=%g\n",
		v.Summary.Min, v.Summary.Max, v.Summary.Mean, v.Summary.Median,
		v.Summary.StdDev, v.Summary.Q1, v.Summary.Q3))
	return b.String(), nil
}

func formatGateHuman(v *GateResponseCLI) (string, error) {
	if len(v.Violations) == 0 {
		return "All quality gates passed.\n", nil
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d gate violation(s):\n", len(v.Violations)))
	for _, viol := range v.Violations {
		b.WriteString(fmt.Sprintf("  [%s] %s: %s = %g (threshold %g)\n",
			viol.Rule, viol.Metric, viol.Scope, viol.Value, viol.Threshold))
	}
	return b.String(), nil
}

func formatDiagHuman(v *DiagResponseCLI) (string, error) {
	if len(v.Diagnostics) == 0 {
		return "No diagnostics.\n", nil
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d diagnostic(s):\n", len(v.Diagnostics)))
	for _, d := range v.Diagnostics {
		loc := d.File
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", d.File, d.Line)
		}
		if loc != "" {
			b.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", d.Code, d.Message, loc))
		} else {
			b.WriteString(fmt.Sprintf("  [%s] %s\n", d.Code, d.Message))
		}
	}
	return b.String(), nil
}
