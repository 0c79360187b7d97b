package nodeeval

import (
	"github.com/cogform/cogform/internal/expr"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
)

// evalConcept computes a weighted average of numeric predecessor values,
// weighted by relation strength; non-numeric predecessors are skipped
// (spec §4.5 Concept).
func evalConcept(graph *graphcompile.Graph, node *schema.Node, snapshot map[string]any) any {
	edges := graph.IncomingCausal(node.ID)
	if len(edges) == 0 {
		return storedOrCurrent(node, snapshot)
	}

	var weightedSum, totalWeight float64
	for _, edge := range edges {
		v, ok := expr.CoerceNumeric(snapshot[edge.From])
		if !ok {
			continue
		}
		weight := schema.DefaultStrength
		if edge.Relation.Strength != nil {
			weight = *edge.Relation.Strength
		}
		weightedSum += v * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return snapshot[node.ID]
	}
	return weightedSum / totalWeight
}

// storedOrCurrent prefers the node's own current state value (set at
// Initialization from data.value or a type default) over re-decoding
// data.value, since the state map is always seeded before evaluation
// begins.
func storedOrCurrent(node *schema.Node, snapshot map[string]any) any {
	if v, ok := snapshot[node.ID]; ok {
		return v
	}
	return DefaultValue(node.Type)
}
