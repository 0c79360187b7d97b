package nodeeval

import (
	"encoding/json"
	"sort"

	"github.com/cogform/cogform/internal/condeval"
	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
)

func evalConditionNode(graph *graphcompile.Graph, node *schema.Node, snapshot map[string]any) (any, *execstate.ErrorRecord) {
	if logicRaw, ok := node.Data.Parameters["logic"]; ok {
		var logic string
		if err := json.Unmarshal(logicRaw, &logic); err != nil || logic == "" {
			return false, nodeError(execstate.ErrConditionError, node.ID, "parameters.logic is not a string")
		}
		return evalConditionLogic(graph, node, logic, snapshot)
	}

	edges := graph.IncomingCausal(node.ID)
	if len(edges) == 0 {
		return execstate.Truthy(decodeValue(node.Data.Value)), nil
	}
	for _, edge := range edges {
		if relationSatisfied(graph, edge, snapshot) {
			return true, nil
		}
	}
	return false, nil
}

// evalConditionLogic substitutes every node id appearing in logic with
// true/false from the current state, longest ids first so no id is
// mistakenly matched as a prefix of another, then evaluates the small
// boolean grammar (spec §4.5 Condition, §9 Open Question 2).
func evalConditionLogic(graph *graphcompile.Graph, node *schema.Node, logic string, snapshot map[string]any) (any, *execstate.ErrorRecord) {
	ids := make([]string, 0, len(graph.Nodes()))
	for _, n := range graph.Nodes() {
		ids = append(ids, n.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return len(ids[i]) > len(ids[j]) })

	substituted, err := condeval.Substitute(logic, ids, func(id string) bool {
		return execstate.Truthy(snapshot[id])
	})
	if err != nil {
		return false, nodeError(execstate.ErrConditionError, node.ID, err.Error())
	}
	result, err := condeval.Evaluate(substituted)
	if err != nil {
		return false, nodeError(execstate.ErrConditionError, node.ID, err.Error())
	}
	return result, nil
}

// relationSatisfied reports whether every activation condition on edge's
// relation holds against the predecessor's current value.
func relationSatisfied(graph *graphcompile.Graph, edge graphcompile.IncomingEdge, snapshot map[string]any) bool {
	if len(edge.Relation.ActivationConditions) == 0 {
		return execstate.Truthy(snapshot[edge.From])
	}
	predecessor, ok := graph.Node(edge.From)
	if !ok {
		return false
	}
	for _, cond := range edge.Relation.ActivationConditions {
		field, ok := resolveField(predecessor, snapshot[edge.From], cond.Field)
		if !ok {
			return false
		}
		ok2, err := evalCondition(field, cond)
		if err != nil || !ok2 {
			return false
		}
	}
	return true
}

func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}
