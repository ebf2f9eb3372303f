// Package callgraph builds and queries the directed graph of resolved
// method calls. Nodes are method qualified names; edges are deduplicated
// (caller, callee) pairs carrying a multiplicity count.
package callgraph

import (
	"sort"

	"jca/internal/model"
)

// Edge represents a deduplicated directed call edge
type Edge struct {
	Caller       string `json:"caller"`
	Callee       string `json:"callee"`
	Multiplicity int    `json:"multiplicity"`
}

// CallGraph is a sparse directed graph with forward and reverse adjacency,
// immutable once built. Queries on absent methods return empty results:
// absence means no resolved call involves the method, which is a valid
// terminal state, not a fault.
type CallGraph struct {
	nodes   []string
	nodeIdx map[string]int

	outEdges [][]edgeEntry
	inEdges  [][]edgeEntry
}

type edgeEntry struct {
	target int
	count  int
}

// Fragment accumulates call edges produced by one worker. Fragments are
// merged by a single coordinator pass, so they need no locking.
type Fragment struct {
	counts map[[2]string]int
}

// NewFragment creates an empty edge fragment
func NewFragment() *Fragment {
	return &Fragment{counts: make(map[[2]string]int)}
}

// Add records one call occurrence from caller to callee
func (f *Fragment) Add(caller, callee string) {
	f.counts[[2]string{caller, callee}]++
}

// AddResolved records the edge of a resolved call; calls with any other
// status contribute nothing
func (f *Fragment) AddResolved(call model.ResolvedCall) {
	if call.Status == model.StatusResolved && call.Target != nil {
		f.Add(call.Site.Caller, call.Target.QualifiedName)
	}
}

// Build constructs the graph from resolved calls in one linear pass.
// Only calls with status resolved contribute edges.
func Build(calls []model.ResolvedCall) *CallGraph {
	frag := NewFragment()
	for _, call := range calls {
		frag.AddResolved(call)
	}
	return Merge(frag)
}

// Merge combines worker fragments into one graph. Edges are sorted by
// (caller, callee) before insertion, so the result is independent of both
// worker scheduling and map iteration order.
func Merge(fragments ...*Fragment) *CallGraph {
	merged := make(map[[2]string]int)
	for _, f := range fragments {
		for pair, count := range f.counts {
			merged[pair] += count
		}
	}

	pairs := make([][2]string, 0, len(merged))
	for pair := range merged {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	g := &CallGraph{nodeIdx: make(map[string]int)}
	for _, pair := range pairs {
		from := g.addNode(pair[0])
		to := g.addNode(pair[1])
		g.outEdges[from] = append(g.outEdges[from], edgeEntry{target: to, count: merged[pair]})
		g.inEdges[to] = append(g.inEdges[to], edgeEntry{target: from, count: merged[pair]})
	}
	return g
}

func (g *CallGraph) addNode(id string) int {
	if idx, ok := g.nodeIdx[id]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.nodeIdx[id] = idx
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	return idx
}

// HasNode checks if a method participates in any resolved call
func (g *CallGraph) HasNode(method string) bool {
	_, ok := g.nodeIdx[method]
	return ok
}

// NodeCount returns the number of methods in the graph
func (g *CallGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of deduplicated edges
func (g *CallGraph) EdgeCount() int {
	total := 0
	for _, edges := range g.outEdges {
		total += len(edges)
	}
	return total
}

// TotalMultiplicity returns the number of call sites collapsed into edges
func (g *CallGraph) TotalMultiplicity() int {
	total := 0
	for _, edges := range g.outEdges {
		for _, e := range edges {
			total += e.count
		}
	}
	return total
}

// Nodes returns all method names in sorted order
func (g *CallGraph) Nodes() []string {
	out := append([]string(nil), g.nodes...)
	sort.Strings(out)
	return out
}

// Edges returns every edge sorted by (caller, callee)
func (g *CallGraph) Edges() []Edge {
	out := make([]Edge, 0, g.EdgeCount())
	for i, edges := range g.outEdges {
		for _, e := range edges {
			out = append(out, Edge{Caller: g.nodes[i], Callee: g.nodes[e.target], Multiplicity: e.count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Caller != out[j].Caller {
			return out[i].Caller < out[j].Caller
		}
		return out[i].Callee < out[j].Callee
	})
	return out
}

// Callees returns the methods called by the given method, sorted
func (g *CallGraph) Callees(method string) []string {
	return g.neighbors(method, g.outEdges)
}

// Callers returns the methods calling the given method, sorted
func (g *CallGraph) Callers(method string) []string {
	return g.neighbors(method, g.inEdges)
}

func (g *CallGraph) neighbors(method string, adjacency [][]edgeEntry) []string {
	idx, ok := g.nodeIdx[method]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(adjacency[idx]))
	for _, e := range adjacency[idx] {
		out = append(out, g.nodes[e.target])
	}
	sort.Strings(out)
	return out
}

// Multiplicity returns the call-site count of one edge, 0 when absent
func (g *CallGraph) Multiplicity(caller, callee string) int {
	from, ok := g.nodeIdx[caller]
	if !ok {
		return 0
	}
	to, ok := g.nodeIdx[callee]
	if !ok {
		return 0
	}
	for _, e := range g.outEdges[from] {
		if e.target == to {
			return e.count
		}
	}
	return 0
}

// ReachableFrom returns every method transitively callable from the start
// method, in sorted order. The start method itself is included only when a
// cycle leads back to it.
func (g *CallGraph) ReachableFrom(method string) []string {
	return g.ReachableWithin(method, 0)
}

// ReachableWithin is ReachableFrom bounded to maxDepth call hops from the
// start method; maxDepth <= 0 means unbounded.
func (g *CallGraph) ReachableWithin(method string, maxDepth int) []string {
	start, ok := g.nodeIdx[method]
	if !ok {
		return nil
	}

	visited := make(map[int]bool)
	frontier := make([]int, 0, len(g.outEdges[start]))
	for _, e := range g.outEdges[start] {
		if !visited[e.target] {
			visited[e.target] = true
			frontier = append(frontier, e.target)
		}
	}

	for depth := 1; len(frontier) > 0 && (maxDepth <= 0 || depth < maxDepth); depth++ {
		var next []int
		for _, cur := range frontier {
			for _, e := range g.outEdges[cur] {
				if !visited[e.target] {
					visited[e.target] = true
					next = append(next, e.target)
				}
			}
		}
		frontier = next
	}

	out := make([]string, 0, len(visited))
	for idx := range visited {
		out = append(out, g.nodes[idx])
	}
	sort.Strings(out)
	return out
}
