package validate

import (
	"encoding/json"
	"fmt"

	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/topology"
)

// validateStructure is phase 3 (spec §4.2): cycle detection over the
// causal subgraph and formula expression safety. Activation-condition
// operators are checked earlier, in phase 1 (validateRelationSchema).
func validateStructure(doc *schema.Document, nodesByID map[string]*schema.Node, result *Result) {
	orderedIDs := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		orderedIDs[i] = n.ID
	}
	forward, _ := topology.BuildAdjacency(doc.Relations, topology.CausalTypes, false)
	for _, cyclePath := range topology.DetectCycles(orderedIDs, forward) {
		result.addError(Error{
			Kind:    KindCycle,
			Message: fmt.Sprintf("cycle detected: %v", cyclePath),
			Path:    joinPath(cyclePath),
		})
	}

	for _, n := range doc.Nodes {
		if n.Type != schema.NodeFormula {
			continue
		}
		exprSrc, ok := formulaExpression(n)
		if !ok {
			result.addError(Error{Kind: KindLogic, NodeID: n.ID, Message: fmt.Sprintf("formula node %q has no expression/formula parameter", n.ID)})
			continue
		}
		if err := CheckFormulaExpression(exprSrc); err != nil {
			result.addError(Error{Kind: KindLogic, NodeID: n.ID, Message: fmt.Sprintf("formula node %q: %v", n.ID, err)})
		}
	}
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "->"
		}
		out += p
	}
	return out
}

// formulaExpression extracts parameters.expression (or parameters.formula)
// from a formula node's raw JSON parameters.
func formulaExpression(n schema.Node) (string, bool) {
	for _, key := range []string{"expression", "formula"} {
		if raw, ok := n.Data.Parameters[key]; ok {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

