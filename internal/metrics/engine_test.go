package metrics

import (
	"context"
	"reflect"
	"testing"

	"jca/internal/callgraph"
	"jca/internal/catalog"
	"jca/internal/errors"
	"jca/internal/model"
)

func sealClasses(t *testing.T, classes ...*model.ClassSymbol) *catalog.Catalog {
	t.Helper()
	b := catalog.NewBuilder()
	for _, c := range classes {
		if err := b.AddClass(c); err != nil {
			t.Fatalf("AddClass(%s): %v", c.QualifiedName, err)
		}
	}
	cat, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return cat
}

func computeSet(t *testing.T, cat *catalog.Catalog, graph *callgraph.CallGraph) (*Set, []model.Diagnostic) {
	t.Helper()
	engine, err := NewEngine(cat, graph)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	set, diags, err := engine.Compute(context.Background(), 2)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return set, diags
}

func wantValue(t *testing.T, set *Set, scope, metric string, want float64) {
	t.Helper()
	got, ok := set.Value(scope, metric)
	if !ok {
		t.Errorf("missing %s for %s", metric, scope)
		return
	}
	if got != want {
		t.Errorf("%s of %s = %v, want %v", metric, scope, got, want)
	}
}

func TestMethodSizeAndComplexity(t *testing.T) {
	cat := sealClasses(t, &model.ClassSymbol{
		QualifiedName: "com.acme.Order",
		Methods: []*model.MethodSymbol{
			{Name: "total", StartLine: 10, EndLine: 21, Statements: 8, Decisions: 3},
			{Name: "isEmpty", StartLine: 23, EndLine: 25, Statements: 1, Decisions: 0},
		},
	})
	set, _ := computeSet(t, cat, callgraph.Build(nil))

	wantValue(t, set, "com.acme.Order#total()", PhysicalLOC, 12)
	wantValue(t, set, "com.acme.Order#total()", LogicalLOC, 8)
	wantValue(t, set, "com.acme.Order#total()", Cyclomatic, 4)

	// A straight-line method has the baseline complexity of 1
	wantValue(t, set, "com.acme.Order#isEmpty()", Cyclomatic, 1)

	// Class rollups are sums over the methods
	wantValue(t, set, "com.acme.Order", PhysicalLOC, 15)
	wantValue(t, set, "com.acme.Order", LogicalLOC, 9)
	wantValue(t, set, "com.acme.Order", Cyclomatic, 5)

	// Package rollups are sums over the classes
	wantValue(t, set, "com.acme", Cyclomatic, 5)
	wantValue(t, set, "com.acme", PhysicalLOC, 15)
}

func TestFanMetricsReadCallGraph(t *testing.T) {
	cat := sealClasses(t, &model.ClassSymbol{
		QualifiedName: "com.acme.Svc",
		Methods: []*model.MethodSymbol{
			{Name: "a"},
			{Name: "b"},
			{Name: "c"},
		},
	})

	frag := callgraph.NewFragment()
	frag.Add("com.acme.Svc#a()", "com.acme.Svc#b()")
	frag.Add("com.acme.Svc#a()", "com.acme.Svc#c()")
	frag.Add("com.acme.Svc#b()", "com.acme.Svc#c()")
	set, _ := computeSet(t, cat, callgraph.Merge(frag))

	wantValue(t, set, "com.acme.Svc#a()", FanOut, 2)
	wantValue(t, set, "com.acme.Svc#a()", FanIn, 0)
	wantValue(t, set, "com.acme.Svc#c()", FanIn, 2)
	wantValue(t, set, "com.acme.Svc#c()", FanOut, 0)
}

func TestCouplingMetrics(t *testing.T) {
	cat := sealClasses(t,
		&model.ClassSymbol{
			QualifiedName: "com.acme.Order",
			Fields: []*model.FieldSymbol{
				{Name: "customer", Type: "com.acme.Customer"},
			},
			Methods: []*model.MethodSymbol{
				{Name: "total", ReturnType: "com.acme.Money"},
			},
		},
		&model.ClassSymbol{
			QualifiedName: "com.acme.Customer",
		},
		&model.ClassSymbol{
			QualifiedName: "com.acme.Money",
			Methods: []*model.MethodSymbol{
				{Name: "plus", Parameters: []string{"com.acme.Money"}, ReturnType: "com.acme.Money"},
			},
		},
	)
	set, diags := computeSet(t, cat, callgraph.Build(nil))

	// Order depends on Customer and Money
	wantValue(t, set, "com.acme.Order", EfferentCoupling, 2)
	wantValue(t, set, "com.acme.Order", AfferentCoupling, 0)
	wantValue(t, set, "com.acme.Order", Instability, 1)

	// Money is referenced by Order only; its own Money-typed members are
	// self-references and do not count
	wantValue(t, set, "com.acme.Money", EfferentCoupling, 0)
	wantValue(t, set, "com.acme.Money", AfferentCoupling, 1)
	wantValue(t, set, "com.acme.Money", Instability, 0)

	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestIsolatedClassInstabilityIsZero(t *testing.T) {
	cat := sealClasses(t, &model.ClassSymbol{QualifiedName: "com.acme.Alone"})
	set, _ := computeSet(t, cat, callgraph.Build(nil))

	wantValue(t, set, "com.acme.Alone", EfferentCoupling, 0)
	wantValue(t, set, "com.acme.Alone", AfferentCoupling, 0)
	wantValue(t, set, "com.acme.Alone", Instability, 0)
}

func TestUncataloguedReferenceCountsAndWarns(t *testing.T) {
	cat := sealClasses(t, &model.ClassSymbol{
		QualifiedName: "com.acme.Repo",
		File:          "Repo.java",
		StartLine:     1,
		Methods: []*model.MethodSymbol{
			{Name: "save", Parameters: []string{"java.util.List<com.acme.Row>"}},
		},
	})
	set, diags := computeSet(t, cat, callgraph.Build(nil))

	// The generic argument is stripped; java.util.List is an opaque
	// external dependency
	wantValue(t, set, "com.acme.Repo", EfferentCoupling, 1)

	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Code != string(errors.MissingTypeReference) {
		t.Errorf("diagnostic code = %s", diags[0].Code)
	}
	if !reflect.DeepEqual(diags[0].Details, []string{"java.util.List"}) {
		t.Errorf("diagnostic details = %v", diags[0].Details)
	}
}

func TestPrimitivesNeverCouple(t *testing.T) {
	cat := sealClasses(t, &model.ClassSymbol{
		QualifiedName: "com.acme.Calc",
		Methods: []*model.MethodSymbol{
			{Name: "add", Parameters: []string{"int", "long"}, ReturnType: "double"},
			{Name: "flags", ReturnType: "boolean[]"},
		},
	})
	set, diags := computeSet(t, cat, callgraph.Build(nil))

	wantValue(t, set, "com.acme.Calc", EfferentCoupling, 0)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	cat := sealClasses(t,
		&model.ClassSymbol{
			QualifiedName: "com.acme.A",
			Methods: []*model.MethodSymbol{
				{Name: "m", StartLine: 1, EndLine: 5, Statements: 3, Decisions: 1, ReferencedTypes: []string{"com.acme.B"}},
			},
		},
		&model.ClassSymbol{
			QualifiedName: "com.acme.B",
			Methods: []*model.MethodSymbol{
				{Name: "n", StartLine: 1, EndLine: 2, Statements: 1},
			},
		},
	)
	graph := callgraph.Build(nil)

	first, _ := computeSet(t, cat, graph)
	for i := 0; i < 5; i++ {
		again, _ := computeSet(t, cat, graph)
		if !reflect.DeepEqual(again.All(), first.All()) {
			t.Fatal("repeated computation produced a different set")
		}
	}
}

func TestNewEngineRequiresSealedCatalog(t *testing.T) {
	if _, err := NewEngine(new(catalog.Catalog), callgraph.Build(nil)); err == nil {
		t.Fatal("unsealed catalog must be rejected")
	}
}

func TestRegistryLookup(t *testing.T) {
	def, ok := Lookup(Instability)
	if !ok {
		t.Fatal("instability not registered")
	}
	if def.Level != LevelClass || def.Domain != DomainReal {
		t.Errorf("unexpected definition: %+v", def)
	}

	if _, ok := Lookup("no.such.metric"); ok {
		t.Error("unknown metric must not resolve")
	}
}
