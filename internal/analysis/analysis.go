// Package analysis wires the full pipeline: facts -> resolver -> call graph
// -> metrics -> snapshot. Data flows strictly downward; nothing upstream is
// mutated by a later stage.
package analysis

import (
	"context"
	"time"

	"jca/internal/callgraph"
	"jca/internal/catalog"
	"jca/internal/facts"
	"jca/internal/logging"
	"jca/internal/metrics"
	"jca/internal/model"
	"jca/internal/resolver"
	"jca/internal/snapshot"
)

// Run analyzes a fact file end to end and returns the immutable snapshot.
// Cancelling the context aborts the whole run; partial state is discarded.
func Run(ctx context.Context, factsPath string, workers int, logger *logging.Logger) (*snapshot.Snapshot, error) {
	start := time.Now()

	cat, sites, err := facts.Load(factsPath, logger)
	if err != nil {
		return nil, err
	}

	snap, err := Analyze(ctx, cat, sites, workers)
	if err != nil {
		return nil, err
	}

	logger.Info("Analysis completed", map[string]interface{}{
		"classes":     cat.ClassCount(),
		"methods":     cat.MethodCount(),
		"callSites":   len(sites),
		"edges":       snap.Graph().EdgeCount(),
		"diagnostics": len(snap.Diagnostics()),
		"durationMs":  time.Since(start).Milliseconds(),
	})
	return snap, nil
}

// Analyze runs the pipeline over an already-sealed catalog and call-site
// list. Used by Run and directly by tests.
func Analyze(ctx context.Context, cat *catalog.Catalog, sites []model.CallSite, workers int) (*snapshot.Snapshot, error) {
	res, err := resolver.New(cat)
	if err != nil {
		return nil, err
	}
	resolved, err := res.ResolveAll(ctx, sites, workers)
	if err != nil {
		return nil, err
	}

	graph := callgraph.Build(resolved)

	engine, err := metrics.NewEngine(cat, graph)
	if err != nil {
		return nil, err
	}
	set, diags, err := engine.Compute(ctx, workers)
	if err != nil {
		return nil, err
	}

	return snapshot.Build(cat, graph, set, resolved, diags)
}
