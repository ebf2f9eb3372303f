// Package snapshot composes the call graph, metric set, statistical
// summaries, and diagnostics into one immutable result exposed to the CLI
// and export collaborators. The snapshot never recomputes anything: it is
// pure composition over the run's frozen artifacts and owns them until the
// next run replaces it.
package snapshot

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"jca/internal/callgraph"
	"jca/internal/catalog"
	"jca/internal/errors"
	"jca/internal/metrics"
	"jca/internal/model"
	"jca/internal/stats"
)

// Snapshot is the read-only result of one analysis run
type Snapshot struct {
	runID     string
	createdAt time.Time

	catalog  *catalog.Catalog
	graph    *callgraph.CallGraph
	metrics  *metrics.Set
	resolved []model.ResolvedCall

	diagnostics []model.Diagnostic
	summaries   map[string]stats.Summary
	entries     map[string][]stats.Entry
}

// Build composes a snapshot from the run's artifacts. Call-site resolution
// failures are folded into the diagnostics list alongside the metric
// engine's missing-type reports; statistical summaries are derived once per
// metric at its registry scope level.
func Build(cat *catalog.Catalog, graph *callgraph.CallGraph, set *metrics.Set,
	resolved []model.ResolvedCall, metricDiags []model.Diagnostic) (*Snapshot, error) {
	if !cat.Sealed() {
		return nil, errors.New(errors.CatalogNotSealed, "snapshot requires a sealed catalog", nil)
	}

	s := &Snapshot{
		runID:     uuid.NewString(),
		createdAt: time.Now().UTC(),
		catalog:   cat,
		graph:     graph,
		metrics:   set,
		resolved:  append([]model.ResolvedCall(nil), resolved...),
		summaries: make(map[string]stats.Summary),
		entries:   make(map[string][]stats.Entry),
	}

	s.diagnostics = append(s.diagnostics, callDiagnostics(resolved)...)
	s.diagnostics = append(s.diagnostics, metricDiags...)

	for _, def := range metrics.Definitions() {
		levels := []metrics.Level{def.Level}
		if rollsUp(def.Name) {
			levels = append(levels, metrics.LevelClass, metrics.LevelPackage)
		}
		for _, level := range levels {
			entries := s.collectEntries(def.Name, level)
			s.entries[entryKey(def.Name, level)] = entries
			if len(entries) == 0 {
				continue
			}
			values := make([]float64, len(entries))
			for i, e := range entries {
				values[i] = e.Value
			}
			summary, err := stats.Summarize(values)
			if err != nil {
				return nil, err
			}
			s.summaries[entryKey(def.Name, level)] = summary
		}
	}

	return s, nil
}

// rollsUp reports whether a method-level metric is also summed to class and
// package scopes
func rollsUp(metric string) bool {
	switch metric {
	case metrics.PhysicalLOC, metrics.LogicalLOC, metrics.Cyclomatic:
		return true
	}
	return false
}

func entryKey(metric string, level metrics.Level) string {
	return metric + "/" + string(level)
}

// collectEntries filters a metric's distribution down to the scopes of one
// level, sorted by scope name
func (s *Snapshot) collectEntries(metric string, level metrics.Level) []stats.Entry {
	var scopes []string
	switch level {
	case metrics.LevelMethod:
		scopes = s.catalog.MethodNames()
	case metrics.LevelClass:
		scopes = s.catalog.ClassNames()
	case metrics.LevelPackage:
		scopes = s.catalog.PackageNames()
	}

	var out []stats.Entry
	for _, scope := range scopes {
		if v, ok := s.metrics.Value(scope, metric); ok {
			out = append(out, stats.Entry{Scope: scope, Value: v})
		}
	}
	return out
}

// callDiagnostics converts unresolved and ambiguous calls into diagnostics
func callDiagnostics(resolved []model.ResolvedCall) []model.Diagnostic {
	var out []model.Diagnostic
	for _, call := range resolved {
		switch call.Status {
		case model.StatusUnresolved:
			out = append(out, model.Diagnostic{
				Code:    string(errors.UnresolvedCall),
				Message: "no target found for call to " + call.Site.Name + " from " + call.Site.Caller,
				File:    call.Site.File,
				Line:    call.Site.Line,
			})
		case model.StatusAmbiguous:
			out = append(out, model.Diagnostic{
				Code:    string(errors.AmbiguousCall),
				Message: "ambiguous call to " + call.Site.Name + " from " + call.Site.Caller,
				File:    call.Site.File,
				Line:    call.Site.Line,
				Details: append([]string(nil), call.Candidates...),
			})
		}
	}
	return out
}

// RunID returns the unique identifier of this run
func (s *Snapshot) RunID() string {
	return s.runID
}

// CreatedAt returns when the snapshot was built
func (s *Snapshot) CreatedAt() time.Time {
	return s.createdAt
}

// Catalog returns the sealed symbol catalog
func (s *Snapshot) Catalog() *catalog.Catalog {
	return s.catalog
}

// Graph returns the call graph
func (s *Snapshot) Graph() *callgraph.CallGraph {
	return s.graph
}

// Metrics returns the computed metric set
func (s *Snapshot) Metrics() *metrics.Set {
	return s.metrics
}

// MetricValue looks one measurement up by scope and metric name
func (s *Snapshot) MetricValue(scope, metric string) (float64, bool) {
	return s.metrics.Value(scope, metric)
}

// Summary returns the precomputed summary of a metric at a scope level
func (s *Snapshot) Summary(metric string, level metrics.Level) (stats.Summary, bool) {
	summary, ok := s.summaries[entryKey(metric, level)]
	return summary, ok
}

// Entries returns a metric's distribution at a scope level
func (s *Snapshot) Entries(metric string, level metrics.Level) []stats.Entry {
	return append([]stats.Entry(nil), s.entries[entryKey(metric, level)]...)
}

// Rank returns the top n scopes of a metric at a scope level
func (s *Snapshot) Rank(metric string, level metrics.Level, n int, direction stats.Direction) []stats.Entry {
	return stats.Rank(s.entries[entryKey(metric, level)], n, direction)
}

// Violations evaluates a quality-gate profile against this snapshot. Each
// rule runs at its metric's registry scope level.
func (s *Snapshot) Violations(profile *stats.Profile) []stats.Violation {
	return profile.Evaluate(func(metric string) []stats.Entry {
		def, ok := metrics.Lookup(metric)
		if !ok {
			return nil
		}
		return s.entries[entryKey(metric, def.Level)]
	})
}

// Diagnostics returns the run's diagnostics, sorted by file, line, code
func (s *Snapshot) Diagnostics() []model.Diagnostic {
	out := append([]model.Diagnostic(nil), s.diagnostics...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// ResolvedCalls returns every resolution outcome in call-site order
func (s *Snapshot) ResolvedCalls() []model.ResolvedCall {
	return append([]model.ResolvedCall(nil), s.resolved...)
}
