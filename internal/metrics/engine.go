package metrics

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"jca/internal/callgraph"
	"jca/internal/catalog"
	"jca/internal/errors"
	"jca/internal/model"
)

// Value is one (scope, metric) measurement
type Value struct {
	Scope  string  `json:"scope"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// Set is the immutable collection of computed metric values, indexed by
// scope for O(1) lookup
type Set struct {
	values []Value
	index  map[string]map[string]float64
}

func newSet() *Set {
	return &Set{index: make(map[string]map[string]float64)}
}

func (s *Set) add(scope, metric string, v float64) {
	s.values = append(s.values, Value{Scope: scope, Metric: metric, Value: v})
	if s.index[scope] == nil {
		s.index[scope] = make(map[string]float64)
	}
	s.index[scope][metric] = v
}

// Value looks one measurement up by scope and metric name
func (s *Set) Value(scope, metric string) (float64, bool) {
	v, ok := s.index[scope][metric]
	return v, ok
}

// ScopeValues returns every measurement of one scope, sorted by metric name
func (s *Set) ScopeValues(scope string) []Value {
	metricsByName := s.index[scope]
	names := make([]string, 0, len(metricsByName))
	for name := range metricsByName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Value, 0, len(names))
	for _, name := range names {
		out = append(out, Value{Scope: scope, Metric: name, Value: metricsByName[name]})
	}
	return out
}

// ForMetric returns every measurement of one metric, sorted by scope
func (s *Set) ForMetric(metric string) []Value {
	var out []Value
	for scope, metricsByName := range s.index {
		if v, ok := metricsByName[metric]; ok {
			out = append(out, Value{Scope: scope, Metric: metric, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Scope < out[j].Scope })
	return out
}

// All returns every measurement in computation order
func (s *Set) All() []Value {
	return append([]Value(nil), s.values...)
}

// Len returns the number of measurements
func (s *Set) Len() int {
	return len(s.values)
}

// Engine computes the metric registry over a catalog and call graph
type Engine struct {
	catalog *catalog.Catalog
	graph   *callgraph.CallGraph
}

// NewEngine creates a metrics engine. The catalog must be sealed.
func NewEngine(cat *catalog.Catalog, graph *callgraph.CallGraph) (*Engine, error) {
	if !cat.Sealed() {
		return nil, errors.New(errors.CatalogNotSealed, "metrics engine requires a sealed catalog", nil)
	}
	return &Engine{catalog: cat, graph: graph}, nil
}

// classResult is one worker's output for a single class
type classResult struct {
	class       string
	values      []Value
	physical    float64
	logical     float64
	cyclomatic  float64
	efferent    []string
	diagnostics []model.Diagnostic
}

// Compute measures every method, class, and package. Workers measure
// disjoint classes against the read-only catalog; the merge pass is
// single-threaded and ordered, so results are reproducible regardless of
// scheduling. Computing twice yields identical sets.
func (e *Engine) Compute(ctx context.Context, workers int) (*Set, []model.Diagnostic, error) {
	classNames := e.catalog.ClassNames()
	results := make([]classResult, len(classNames))

	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range classNames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.measureClass(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return e.merge(classNames, results)
}

// measureClass computes method metrics, class rollups, and the efferent
// reference set for one class
func (e *Engine) measureClass(name string) classResult {
	cls, _ := e.catalog.Class(name)
	res := classResult{class: name}

	methods := append([]*model.MethodSymbol(nil), cls.Methods...)
	sort.Slice(methods, func(i, j int) bool { return methods[i].QualifiedName < methods[j].QualifiedName })

	for _, m := range methods {
		physical := float64(m.PhysicalLines())
		logical := float64(m.Statements)
		cyclo := float64(1 + m.Decisions)

		res.values = append(res.values,
			Value{m.QualifiedName, PhysicalLOC, physical},
			Value{m.QualifiedName, LogicalLOC, logical},
			Value{m.QualifiedName, Cyclomatic, cyclo},
			Value{m.QualifiedName, FanOut, float64(len(e.graph.Callees(m.QualifiedName)))},
			Value{m.QualifiedName, FanIn, float64(len(e.graph.Callers(m.QualifiedName)))},
		)

		res.physical += physical
		res.logical += logical
		res.cyclomatic += cyclo
	}

	res.efferent, res.diagnostics = e.collectReferences(cls)
	return res
}

// merge folds worker results into the final set in sorted class order, then
// derives afferent coupling, instability, and package rollups
func (e *Engine) merge(classNames []string, results []classResult) (*Set, []model.Diagnostic, error) {
	set := newSet()
	var diagnostics []model.Diagnostic

	afferent := make(map[string]int)
	efferent := make(map[string]int)
	for _, res := range results {
		efferent[res.class] = len(res.efferent)
		for _, ref := range res.efferent {
			// Uncatalogued references count toward Ce as opaque external
			// dependencies but have no Ca entry to increment
			if _, ok := e.catalog.Class(ref); ok {
				afferent[ref]++
			}
		}
	}

	for _, res := range results {
		for _, v := range res.values {
			set.add(v.Scope, v.Metric, v.Value)
		}

		set.add(res.class, PhysicalLOC, res.physical)
		set.add(res.class, LogicalLOC, res.logical)
		set.add(res.class, Cyclomatic, res.cyclomatic)

		ce := efferent[res.class]
		ca := afferent[res.class]
		set.add(res.class, EfferentCoupling, float64(ce))
		set.add(res.class, AfferentCoupling, float64(ca))
		set.add(res.class, Instability, instability(ca, ce))

		diagnostics = append(diagnostics, res.diagnostics...)
	}

	for _, pkg := range e.catalog.PackageNames() {
		var physical, logical, cyclo float64
		for _, clsName := range e.catalog.PackageClasses(pkg) {
			p, _ := set.Value(clsName, PhysicalLOC)
			l, _ := set.Value(clsName, LogicalLOC)
			c, _ := set.Value(clsName, Cyclomatic)
			physical += p
			logical += l
			cyclo += c
		}
		set.add(pkg, PhysicalLOC, physical)
		set.add(pkg, LogicalLOC, logical)
		set.add(pkg, Cyclomatic, cyclo)
	}

	return set, diagnostics, nil
}

// instability is Ce / (Ca + Ce), defined as 0 for an isolated class so the
// ratio never divides by zero
func instability(ca, ce int) float64 {
	if ca+ce == 0 {
		return 0
	}
	return float64(ce) / float64(ca+ce)
}
