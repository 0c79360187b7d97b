package scheduler

import "github.com/cogform/cogform/internal/graphcompile"

// sequentialOrder derives a processing order by depth-first post-order
// search over the reverse (predecessor) adjacency, visiting a node's
// predecessors before the node itself (spec §4.4 Sequential). Iterating
// node ids in original document order before recursing keeps the result
// deterministic; a plain visited set (rather than a three-color
// recursion-stack check) is enough since the causal adjacency here may
// still contain cycles from blocks/influences relations — §9's Design
// Notes hand those to hybrid mode, but sequential must still produce
// *some* total order to make a pass over.
func sequentialOrder(graph *graphcompile.Graph) []string {
	visited := map[string]bool{}
	order := make([]string, 0, graph.NodeCount())

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, edge := range graph.IncomingCausal(id) {
			visit(edge.From)
		}
		order = append(order, id)
	}

	for _, n := range graph.Nodes() {
		visit(n.ID)
	}
	return order
}

// kahnLevels partitions nodes into dependency levels by Kahn-like
// layering over the causal reverse adjacency (spec §4.4 Parallel): level
// 0 is every node with zero in-edges; level k+1 is every node whose
// predecessors are all already placed at a level ≤ k. Computation is
// capped at 100 levels (spec §9 Open Question 1); nodes still unplaced
// past the cap are returned separately as "stuck" (they stay at their
// seeded value for the pass, per spec).
func kahnLevels(graph *graphcompile.Graph) (levels [][]string, stuck []string, capped bool) {
	const maxLevels = 100

	nodeLevel := map[string]int{}
	remaining := map[string]bool{}
	for _, n := range graph.Nodes() {
		remaining[n.ID] = true
	}

	level := 0
	for len(remaining) > 0 && level < maxLevels {
		var current []string
		for _, n := range graph.Nodes() {
			if !remaining[n.ID] {
				continue
			}
			ready := true
			for _, edge := range graph.IncomingCausal(n.ID) {
				if remaining[edge.From] {
					ready = false
					break
				}
			}
			if ready {
				current = append(current, n.ID)
			}
		}
		if len(current) == 0 {
			break // everything left is stuck in a cycle
		}
		for _, id := range current {
			nodeLevel[id] = level
			delete(remaining, id)
		}
		levels = append(levels, current)
		level++
	}

	for id := range remaining {
		stuck = append(stuck, id)
	}
	capped = len(remaining) > 0 && level >= maxLevels
	return levels, stuck, capped
}

// tarjanSCCs computes strongly-connected components of the causal
// adjacency in condensation (reverse topological) order, Tarjan's
// algorithm — grounded in the teacher's own permanent/temporary DFS
// coloring style (internal/dag/dag.go DetectCycles), extended to track
// low-link values instead of just erroring on a back edge.
func tarjanSCCs(graph *graphcompile.Graph) [][]string {
	index := 0
	indices := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var sccs [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, next := range graph.OutgoingCausal(v) {
			if _, seen := indices[next]; !seen {
				strongconnect(next)
				if lowlink[next] < lowlink[v] {
					lowlink[v] = lowlink[next]
				}
			} else if onStack[next] {
				if indices[next] < lowlink[v] {
					lowlink[v] = indices[next]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var component []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, component)
		}
	}

	for _, n := range graph.Nodes() {
		if _, seen := indices[n.ID]; !seen {
			strongconnect(n.ID)
		}
	}
	return sccs
}
