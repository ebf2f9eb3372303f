// Package resolver maps raw call sites to concrete target methods using the
// sealed symbol catalog. Resolution is a pure function of the call site and
// the catalog: no logging, no side effects, deterministic across runs.
package resolver

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"jca/internal/catalog"
	"jca/internal/errors"
	"jca/internal/model"
)

// Resolver resolves call sites against a sealed catalog
type Resolver struct {
	catalog *catalog.Catalog
}

// New creates a resolver. The catalog must already be sealed; handing an
// unsealed catalog to the resolver aborts the run.
func New(cat *catalog.Catalog) (*Resolver, error) {
	if !cat.Sealed() {
		return nil, errors.New(errors.CatalogNotSealed, "resolver requires a sealed catalog", nil)
	}
	return &Resolver{catalog: cat}, nil
}

// candidate is a method found during the search walk, tagged with how far
// from the start of the walk it was declared
type candidate struct {
	method *model.MethodSymbol
	depth  int
	// iface is the declaring interface's qualified name when the candidate
	// came from the interface search, "" otherwise
	iface string
}

// Resolve maps one call site to zero or one target method
func (r *Resolver) Resolve(site model.CallSite) model.ResolvedCall {
	var cands []candidate

	switch site.Kind {
	case model.InvokeStatic:
		cands = r.staticCandidates(site)
	case model.InvokeInstance:
		cands = r.instanceCandidates(site)
	case model.InvokeSuper:
		cands = r.superCandidates(site)
	case model.InvokeConstructorThis:
		cands = r.constructorCandidates(site, false)
	case model.InvokeConstructorSuper:
		cands = r.constructorCandidates(site, true)
	}

	return r.selectOverload(site, cands)
}

// staticCandidates looks the declared receiver type up directly; static
// dispatch never walks the inheritance chain. An unknown receiver falls back
// to the calling class, matching an unqualified call on the enclosing type.
func (r *Resolver) staticCandidates(site model.CallSite) []candidate {
	receiver := site.ReceiverType
	if model.IsUnknownType(receiver) {
		receiver = r.callerClass(site)
	}

	var cands []candidate
	for _, m := range r.catalog.MethodsNamed(receiver, site.Name) {
		if m.Static {
			cands = append(cands, candidate{method: m})
		}
	}
	return cands
}

// instanceCandidates starts at the compile-time receiver type and walks the
// superclass chain outward; runtime polymorphic dispatch is intentionally
// not modeled. When the class chain yields nothing, the interface closure is
// searched breadth-first, default methods included.
func (r *Resolver) instanceCandidates(site model.CallSite) []candidate {
	receiver := site.ReceiverType
	if model.IsUnknownType(receiver) {
		receiver = r.callerClass(site)
	}
	return r.walkFrom(receiver, site.Name, 0)
}

// superCandidates runs the instance walk starting one level above the
// calling class
func (r *Resolver) superCandidates(site model.CallSite) []candidate {
	callerClass, ok := r.catalog.Class(r.callerClass(site))
	if !ok || callerClass.Superclass == "" {
		return nil
	}
	return r.walkFrom(callerClass.Superclass, site.Name, 1)
}

// constructorCandidates searches constructor symbols only, within the
// calling class or its direct superclass
func (r *Resolver) constructorCandidates(site model.CallSite, super bool) []candidate {
	target := r.callerClass(site)
	if super {
		cls, ok := r.catalog.Class(target)
		if !ok || cls.Superclass == "" {
			return nil
		}
		target = cls.Superclass
	}

	var cands []candidate
	for _, ctor := range r.catalog.Constructors(target) {
		cands = append(cands, candidate{method: ctor})
	}
	return cands
}

// walkFrom collects name-matching instance methods along the superclass
// chain starting at startClass; the interface closure is consulted only when
// the class chain has no match.
func (r *Resolver) walkFrom(startClass, name string, baseDepth int) []candidate {
	var cands []candidate

	chain := []string{startClass}
	for _, super := range r.catalog.SuperclassChain(startClass) {
		chain = append(chain, super.QualifiedName)
	}

	for depth, classQN := range chain {
		for _, m := range r.catalog.MethodsNamed(classQN, name) {
			if m.Static {
				continue
			}
			cands = append(cands, candidate{method: m, depth: baseDepth + depth})
		}
	}
	if len(cands) > 0 {
		return cands
	}

	return r.interfaceCandidates(chain, name, baseDepth+len(chain))
}

// interfaceCandidates searches the interface closure of every class on the
// walked chain breadth-first, nearest level first. Visit order within one
// level is sorted so enumeration stays deterministic.
func (r *Resolver) interfaceCandidates(chain []string, name string, baseDepth int) []candidate {
	seen := make(map[string]bool)
	var frontier []string
	for _, classQN := range chain {
		seen[classQN] = true
		if cls, ok := r.catalog.Class(classQN); ok {
			frontier = append(frontier, cls.Interfaces...)
		}
	}

	var cands []candidate
	for level := 0; len(frontier) > 0; level++ {
		sort.Strings(frontier)
		var next []string
		for _, in := range frontier {
			if seen[in] {
				continue
			}
			seen[in] = true
			iface, ok := r.catalog.Class(in)
			if !ok {
				continue
			}
			for _, m := range r.catalog.MethodsNamed(in, name) {
				if m.Static {
					continue
				}
				cands = append(cands, candidate{method: m, depth: baseDepth + level, iface: in})
			}
			next = append(next, iface.Interfaces...)
		}
		frontier = next
	}
	return cands
}

// callerClass returns the declaring class of the call site's owning method
func (r *Resolver) callerClass(site model.CallSite) string {
	if m, ok := r.catalog.Method(site.Caller); ok {
		return m.DeclaringClass
	}
	return ""
}

// ResolveAll resolves every call site, fanning out over workers when the
// list is large. Each worker owns a disjoint slice and writes results by
// index, so the output order never depends on scheduling.
func (r *Resolver) ResolveAll(ctx context.Context, sites []model.CallSite, workers int) ([]model.ResolvedCall, error) {
	results := make([]model.ResolvedCall, len(sites))
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || len(sites) < 2*workers {
		for i, site := range sites {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = r.Resolve(site)
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(sites) + workers - 1) / workers
	for start := 0; start < len(sites); start += chunk {
		end := start + chunk
		if end > len(sites) {
			end = len(sites)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = r.Resolve(sites[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
