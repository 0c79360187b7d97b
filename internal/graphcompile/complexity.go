package graphcompile

import "github.com/cogform/cogform/internal/topology"

// computeComplexity derives the three complexity metrics of spec §4.3 from
// a graph whose adjacency has already been built.
func computeComplexity(g *Graph) Complexity {
	return Complexity{
		MaxDepth:     maxDepth(g),
		AvgBranching: avgBranching(g),
		CycleCount:   cycleCount(g),
	}
}

// maxDepth runs a breadth-first search from every node with no incoming
// edge (or, if none exist because every node sits in a cycle, from every
// node) and keeps the longest shortest-path distance seen, so disconnected
// components and multi-root graphs are all accounted for.
func maxDepth(g *Graph) int {
	roots := make([]string, 0)
	for _, n := range g.nodes {
		if len(g.reverse[n.ID]) == 0 {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) == 0 {
		for _, n := range g.nodes {
			roots = append(roots, n.ID)
		}
	}

	best := 0
	for _, root := range roots {
		depth := map[string]int{root: 0}
		queue := []string{root}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, next := range g.forward[id] {
				if _, seen := depth[next]; seen {
					continue
				}
				depth[next] = depth[id] + 1
				if depth[next] > best {
					best = depth[next]
				}
				queue = append(queue, next)
			}
		}
	}
	return best
}

// avgBranching is the mean out-degree across nodes that have at least one
// outgoing edge; nodes with none do not count toward the average.
func avgBranching(g *Graph) float64 {
	total, counted := 0, 0
	for _, n := range g.nodes {
		if deg := len(g.forward[n.ID]); deg > 0 {
			total += deg
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return float64(total) / float64(counted)
}

// cycleCount counts cycles across the whole relation graph (every type),
// independent of the causal-only cycle check the validator performs —
// this is a complexity signal, not a correctness gate.
func cycleCount(g *Graph) int {
	orderedIDs := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		orderedIDs[i] = n.ID
	}
	return len(topology.DetectCycles(orderedIDs, g.forward))
}
