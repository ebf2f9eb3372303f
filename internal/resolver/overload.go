package resolver

import (
	"sort"

	"jca/internal/model"
)

// wideningLadder maps each primitive type to the primitives it widens to,
// per the JLS widening primitive conversions. Varargs and autoboxing are an
// extension point and intentionally not modeled.
var wideningLadder = map[string][]string{
	"byte":   {"short", "int", "long", "float", "double"},
	"short":  {"int", "long", "float", "double"},
	"char":   {"int", "long", "float", "double"},
	"int":    {"long", "float", "double"},
	"long":   {"float", "double"},
	"float":  {"double"},
}

// selectOverload picks the single best candidate for a call site, or marks
// the site unresolved/ambiguous. Unknown argument types never eliminate a
// candidate: precision is traded for completeness instead of failing the
// whole call site.
func (r *Resolver) selectOverload(site model.CallSite, cands []candidate) model.ResolvedCall {
	// Arity filter
	arity := len(site.ArgumentTypes)
	pool := cands[:0:0]
	for _, c := range cands {
		if c.method.Arity() == arity {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return model.ResolvedCall{Site: site, Status: model.StatusUnresolved}
	}

	// Prefer candidates whose parameters are assignable from every known
	// argument type; keep the whole pool when none qualify so that
	// unmodeled conversions degrade to ambiguity rather than silence.
	applicable := pool[:0:0]
	for _, c := range pool {
		if r.applicable(c.method, site.ArgumentTypes) {
			applicable = append(applicable, c)
		}
	}
	if len(applicable) > 0 {
		pool = applicable
	}

	if len(pool) == 1 {
		return resolved(site, pool[0].method)
	}

	// Prefer the declaration nearest the start of the search chain
	minDepth := pool[0].depth
	for _, c := range pool[1:] {
		if c.depth < minDepth {
			minDepth = c.depth
		}
	}
	nearest := pool[:0:0]
	for _, c := range pool {
		if c.depth == minDepth {
			nearest = append(nearest, c)
		}
	}
	if len(nearest) == 1 {
		return resolved(site, nearest[0].method)
	}
	pool = nearest

	// Pairwise most-specific parameter types
	if best := r.mostSpecific(pool); best != nil {
		return resolved(site, best)
	}

	// Interface tie: drop candidates declared on an interface that another
	// remaining candidate's interface extends
	if filtered := r.dropSupersededInterfaces(pool); len(filtered) == 1 {
		return resolved(site, filtered[0].method)
	} else if len(filtered) > 0 {
		pool = filtered
	}

	names := make([]string, 0, len(pool))
	for _, c := range pool {
		names = append(names, c.method.QualifiedName)
	}
	sort.Strings(names)
	return model.ResolvedCall{Site: site, Status: model.StatusAmbiguous, Candidates: names}
}

func resolved(site model.CallSite, target *model.MethodSymbol) model.ResolvedCall {
	return model.ResolvedCall{
		Site:       site,
		Status:     model.StatusResolved,
		Target:     target,
		TargetName: target.QualifiedName,
	}
}

// applicable reports whether every known argument type is assignable to the
// matching parameter type
func (r *Resolver) applicable(m *model.MethodSymbol, args []string) bool {
	for i, arg := range args {
		if !r.assignable(m.Parameters[i], arg) {
			return false
		}
	}
	return true
}

// assignable reports whether a value of type 'from' can bind to a parameter
// of type 'to'. Unknown types on either side match anything.
func (r *Resolver) assignable(to, from string) bool {
	if model.IsUnknownType(to) || model.IsUnknownType(from) {
		return true
	}
	if to == from || to == "java.lang.Object" {
		return true
	}
	for _, widened := range wideningLadder[from] {
		if widened == to {
			return true
		}
	}
	return r.catalog.IsSubtypeOf(from, to)
}

// mostSpecific returns the candidate whose parameter types are pairwise at
// least as specific as every other candidate's, strictly more specific than
// at least one, and nil when no strict winner exists
func (r *Resolver) mostSpecific(pool []candidate) *model.MethodSymbol {
	for i, a := range pool {
		wins := true
		for j, b := range pool {
			if i == j {
				continue
			}
			if !r.moreSpecific(a.method, b.method) {
				wins = false
				break
			}
		}
		if wins {
			return a.method
		}
	}
	return nil
}

// moreSpecific reports whether every parameter of a is assignable to the
// corresponding parameter of b, with at least one strict narrowing
func (r *Resolver) moreSpecific(a, b *model.MethodSymbol) bool {
	strict := false
	for i := range a.Parameters {
		pa, pb := a.Parameters[i], b.Parameters[i]
		if pa == pb {
			continue
		}
		if !r.assignable(pb, pa) {
			return false
		}
		strict = true
	}
	return strict
}

// dropSupersededInterfaces removes candidates whose declaring interface is a
// strict superinterface of another remaining candidate's declaring interface
func (r *Resolver) dropSupersededInterfaces(pool []candidate) []candidate {
	kept := pool[:0:0]
	for i, c := range pool {
		if c.iface == "" {
			kept = append(kept, c)
			continue
		}
		superseded := false
		for j, other := range pool {
			if i == j || other.iface == "" || other.iface == c.iface {
				continue
			}
			if r.catalog.IsSubtypeOf(other.iface, c.iface) {
				superseded = true
				break
			}
		}
		if !superseded {
			kept = append(kept, c)
		}
	}
	return kept
}
