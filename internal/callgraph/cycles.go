package callgraph

import "sort"

// dfs three-coloring
const (
	colorUnvisited  = 0
	colorInProgress = 1
	colorDone       = 2
)

// FindCycles enumerates call cycles with a three-color depth-first search.
// Whenever a back edge reaches an in-progress node, the path from that node
// to the current node inclusive is emitted as one cycle; a method calling
// itself is a single-node cycle. Roots are visited in sorted qualified-name
// order and neighbors in insertion order, which is itself sorted, so the
// enumeration is stable across runs.
func (g *CallGraph) FindCycles() [][]string {
	color := make([]int, len(g.nodes))
	onStack := make([]int, len(g.nodes)) // node -> position in stack + 1
	var stack []int
	var cycles [][]string

	roots := make([]int, 0, len(g.nodes))
	for idx := range g.nodes {
		roots = append(roots, idx)
	}
	sort.Slice(roots, func(i, j int) bool { return g.nodes[roots[i]] < g.nodes[roots[j]] })

	var visit func(int)
	visit = func(n int) {
		color[n] = colorInProgress
		stack = append(stack, n)
		onStack[n] = len(stack)

		for _, e := range g.outEdges[n] {
			switch color[e.target] {
			case colorUnvisited:
				visit(e.target)
			case colorInProgress:
				// Back edge: the stack from the target to here is a cycle
				from := onStack[e.target] - 1
				cycle := make([]string, 0, len(stack)-from)
				for _, idx := range stack[from:] {
					cycle = append(cycle, g.nodes[idx])
				}
				cycles = append(cycles, cycle)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[n] = 0
		color[n] = colorDone
	}

	for _, root := range roots {
		if color[root] == colorUnvisited {
			visit(root)
		}
	}
	return cycles
}
