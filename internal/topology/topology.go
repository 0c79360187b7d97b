// Package topology holds small, format-agnostic graph algorithms shared by
// the validator and the compiler: adjacency construction, cycle detection,
// and entry/exit point inference. Keeping them here means both components
// compute these facts identically instead of two subtly different
// re-implementations drifting apart (spec §4.3 "Determinism": ties are
// broken in original input order everywhere).
package topology

import "github.com/cogform/cogform/internal/schema"

// BuildAdjacency constructs forward (source->targets) and reverse
// (target->sources) adjacency maps from relations, iterating in the given
// document order for determinism. includeType filters which relation
// types participate; when includeBidirectional is true, a relation
// flagged bidirectional also adds the reverse edge to both maps (spec
// §4.3, §9 Open Question 3 — preserved even though it can double-count
// branching, for compatibility).
func BuildAdjacency(relations []schema.Relation, includeType func(schema.RelationType) bool, includeBidirectional bool) (forward, reverse map[string][]string) {
	forward = map[string][]string{}
	reverse = map[string][]string{}
	for _, r := range relations {
		if includeType != nil && !includeType(r.Type) {
			continue
		}
		forward[r.Source] = append(forward[r.Source], r.Target)
		reverse[r.Target] = append(reverse[r.Target], r.Source)
		if includeBidirectional && r.Bidirectional != nil && *r.Bidirectional {
			forward[r.Target] = append(forward[r.Target], r.Source)
			reverse[r.Source] = append(reverse[r.Source], r.Target)
		}
	}
	return forward, reverse
}

// DetectCycles runs a DFS with a recursion stack over forward, visiting
// node ids in the given order for determinism. Each cycle found is
// reported as the recursion-stack slice from the re-entered node forward,
// closed by repeating that node — matching the teacher's own
// dag.Graph.DetectCycles walk in spirit (permanent/temporary/unvisited
// coloring), generalized to report one cycle per back edge instead of
// stopping at the first. A cycle that closes through the same back edge
// as an already-reported cycle is not reported separately.
func DetectCycles(orderedIDs []string, forward map[string][]string) [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var stack []string
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range forward[id] {
			switch color[next] {
			case white:
				visit(next)
			case gray:
				if start := indexOf(stack, next); start >= 0 {
					cyclePath := append([]string{}, stack[start:]...)
					cyclePath = append(cyclePath, next)
					cycles = append(cycles, cyclePath)
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, id := range orderedIDs {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

func indexOf(stack []string, id string) int {
	for i, s := range stack {
		if s == id {
			return i
		}
	}
	return -1
}

// InferEndpoints computes entry and exit points for a document, honoring
// explicit execution config first and falling back to the structural
// inference rules of spec §4.3.
func InferEndpoints(nodes []schema.Node, relations []schema.Relation, exec *schema.ExecConfig) (entry, exit []string) {
	if exec != nil && len(exec.EntryPoints) > 0 {
		entry = append(entry, exec.EntryPoints...)
	}
	if exec != nil && len(exec.ExitPoints) > 0 {
		exit = append(exit, exec.ExitPoints...)
	}
	if len(entry) > 0 && len(exit) > 0 {
		return entry, exit
	}

	incoming := map[string]int{}
	outgoing := map[string]int{}
	for _, r := range relations {
		outgoing[r.Source]++
		incoming[r.Target]++
		if r.Bidirectional != nil && *r.Bidirectional {
			outgoing[r.Target]++
			incoming[r.Source]++
		}
	}

	if len(entry) == 0 {
		for _, n := range nodes {
			if incoming[n.ID] == 0 || n.Type == schema.NodeEvent || n.Data.State == schema.StateActive {
				entry = append(entry, n.ID)
			}
		}
		if len(entry) == 0 && len(nodes) > 0 {
			entry = []string{nodes[0].ID}
		}
	}
	if len(exit) == 0 {
		for _, n := range nodes {
			if outgoing[n.ID] == 0 || (n.Type == schema.NodeAction && outgoing[n.ID] <= 1) {
				exit = append(exit, n.ID)
			}
		}
	}
	return entry, exit
}

// CausalTypes is the {causes, triggers, depends_on} subgraph checked for
// cycles by the validator (spec §3 invariants).
func CausalTypes(t schema.RelationType) bool {
	return t == schema.RelationCauses || t == schema.RelationTriggers || t == schema.RelationDependsOn
}

// NonStructural excludes `contains`, which spec §9 Open Question 4 treats
// as a structural relation participating in neither cycle detection nor
// execution.
func NonStructural(t schema.RelationType) bool {
	return t != schema.RelationContains
}

// AllTypes includes every relation type; used for complexity metrics that
// consider the whole graph, not just the causal or execution subgraphs.
func AllTypes(schema.RelationType) bool { return true }
