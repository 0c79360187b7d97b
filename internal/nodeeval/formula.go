package nodeeval

import (
	"encoding/json"
	"strings"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/expr"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
)

// evalFormula builds a variable context from the node's own current value
// plus every predecessor's current value, then invokes the expression
// evaluator (spec §4.5 Formula, §4.1).
func evalFormula(graph *graphcompile.Graph, node *schema.Node, snapshot map[string]any) (any, *execstate.ErrorRecord) {
	exprSrc, ok := formulaParameter(node, "expression")
	if !ok {
		exprSrc, ok = formulaParameter(node, "formula")
	}
	if !ok {
		return nil, nodeError(execstate.ErrFormulaError, node.ID, "formula node has no expression/formula parameter")
	}

	vars := map[string]float64{}
	if v, ok := expr.CoerceNumeric(snapshot[node.ID]); ok {
		vars[node.ID] = v
	}
	for _, edge := range graph.IncomingCausal(node.ID) {
		if v, ok := expr.CoerceNumeric(snapshot[edge.From]); ok {
			vars[edge.From] = v
		}
	}

	result := expr.Evaluate(exprSrc, expr.Context{Variables: vars})
	if !result.Success {
		return nil, classifyExprError(node.ID, result.Error)
	}
	return result.Value, nil
}

// formulaParameter extracts a string-valued parameter by key.
func formulaParameter(node *schema.Node, key string) (string, bool) {
	raw, ok := node.Data.Parameters[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// classifyExprError maps an expr.Result's failure string onto the runtime
// error taxonomy (spec §7): formula_timeout and formula_memory are
// distinguished by the prefix expr.Evaluate reports; everything else is a
// generic formula_error.
func classifyExprError(nodeID, message string) *execstate.ErrorRecord {
	switch {
	case strings.HasPrefix(message, "formula_timeout"):
		return nodeError(execstate.ErrFormulaTimeout, nodeID, message)
	case strings.HasPrefix(message, "formula_memory"):
		return nodeError(execstate.ErrFormulaMemory, nodeID, message)
	default:
		return nodeError(execstate.ErrFormulaError, nodeID, message)
	}
}
