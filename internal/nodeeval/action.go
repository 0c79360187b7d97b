package nodeeval

import (
	"encoding/json"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/expr"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
)

// evalAction gates on every incoming causal relation being satisfied (its
// activation conditions all hold, or with none its source is truthy), then
// applies the configured operation over parameters.inputs (spec §4.5 Action).
func evalAction(graph *graphcompile.Graph, node *schema.Node, snapshot map[string]any) (any, *execstate.ErrorRecord) {
	for _, edge := range graph.IncomingCausal(node.ID) {
		if !relationSatisfied(graph, edge, snapshot) {
			return snapshot[node.ID], nil
		}
	}

	opRaw, ok := node.Data.Parameters["operation"]
	if !ok {
		return true, nil
	}
	var operation string
	if err := json.Unmarshal(opRaw, &operation); err != nil {
		return nil, nodeError(execstate.ErrNodeExecution, node.ID, "parameters.operation is not a string")
	}

	var inputIDs []string
	if inputsRaw, ok := node.Data.Parameters["inputs"]; ok {
		if err := json.Unmarshal(inputsRaw, &inputIDs); err != nil {
			return nil, nodeError(execstate.ErrNodeExecution, node.ID, "parameters.inputs is not a list of node ids")
		}
	}

	values := make([]float64, 0, len(inputIDs))
	for _, id := range inputIDs {
		v, ok := expr.CoerceNumeric(snapshot[id])
		if ok {
			values = append(values, v)
		}
	}

	switch operation {
	case "sum":
		var total float64
		for _, v := range values {
			total += v
		}
		return total, nil
	case "multiply":
		if len(values) == 0 {
			return 0.0, nil
		}
		product := 1.0
		for _, v := range values {
			product *= v
		}
		return product, nil
	case "transform":
		return evalTransform(node, inputIDs, snapshot)
	default:
		return nil, nodeError(execstate.ErrNodeExecution, node.ID, "parameters.operation has unknown value \""+operation+"\"")
	}
}

// evalTransform runs parameters.expression through the formula evaluator
// with one variable bound per input id; with no expression configured it
// passes the raw input values through unchanged. The source spec leaves
// "transform" otherwise undefined — this is the interpretation chosen here.
func evalTransform(node *schema.Node, inputIDs []string, snapshot map[string]any) (any, *execstate.ErrorRecord) {
	exprSrc, ok := formulaParameter(node, "expression")
	if !ok {
		out := make([]any, len(inputIDs))
		for i, id := range inputIDs {
			out[i] = snapshot[id]
		}
		return out, nil
	}

	vars := map[string]float64{}
	for _, id := range inputIDs {
		if v, ok := expr.CoerceNumeric(snapshot[id]); ok {
			vars[id] = v
		}
	}
	result := expr.Evaluate(exprSrc, expr.Context{Variables: vars})
	if !result.Success {
		return nil, classifyExprError(node.ID, result.Error)
	}
	return result.Value, nil
}
