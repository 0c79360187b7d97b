package validate

import (
	"fmt"

	"github.com/cogform/cogform/internal/schema"
)

const (
	lowConfidenceThreshold = 0.3
	longPathThreshold      = 10
)

// validateWarnings is phase 4 (spec §4.2): non-fatal findings that don't
// block execution but are surfaced to the caller.
func validateWarnings(doc *schema.Document, nodesByID map[string]*schema.Node, relsByID map[string]*schema.Relation, result *Result) {
	for _, n := range doc.Nodes {
		if n.Data.Confidence != nil && *n.Data.Confidence < lowConfidenceThreshold {
			result.addWarning(Error{Kind: KindLogic, NodeID: n.ID, Message: fmt.Sprintf("node %q has low confidence %.2f", n.ID, *n.Data.Confidence)})
		}
	}

	incident := map[string]bool{}
	adjacency := map[string][]string{}
	for _, r := range relsByID {
		incident[r.Source] = true
		incident[r.Target] = true
		adjacency[r.Source] = append(adjacency[r.Source], r.Target)
		if r.Bidirectional != nil && *r.Bidirectional {
			adjacency[r.Target] = append(adjacency[r.Target], r.Source)
		}
	}
	for _, n := range doc.Nodes {
		if !incident[n.ID] {
			result.addWarning(Error{Kind: KindLogic, NodeID: n.ID, Message: fmt.Sprintf("node %q has no incident relations", n.ID)})
		}
	}

	if longestPath := longestSimplePath(doc, adjacency); longestPath > longPathThreshold {
		result.addWarning(Error{Kind: KindLogic, Message: fmt.Sprintf("graph contains a simple path of length %d, exceeding %d nodes", longestPath, longPathThreshold)})
	}
}

// longestSimplePath returns the length (in nodes) of the longest simple
// directed path in the full relation graph. Documents in this domain are
// small enough (tens to low hundreds of nodes) that a bounded DFS with a
// per-path visited set is a reasonable exact algorithm.
func longestSimplePath(doc *schema.Document, adjacency map[string][]string) int {
	best := 0
	visited := map[string]bool{}

	var dfs func(id string, depth int)
	dfs = func(id string, depth int) {
		if depth > best {
			best = depth
		}
		visited[id] = true
		for _, next := range adjacency[id] {
			if !visited[next] {
				dfs(next, depth+1)
			}
		}
		visited[id] = false
	}

	for _, n := range doc.Nodes {
		dfs(n.ID, 1)
	}
	return best
}
