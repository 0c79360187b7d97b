package nodeeval

import (
	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
)

// evalCustom delegates to the registry entry for node.CustomType, keeping
// the node's current value if no evaluator is registered (spec §4.5
// Custom, §9 "Custom node types": "there is no global registry").
func evalCustom(graph *graphcompile.Graph, node *schema.Node, snapshot map[string]any, registry Registry) (any, *execstate.ErrorRecord) {
	if registry == nil {
		return snapshot[node.ID], nil
	}
	evaluator, ok := registry[node.CustomType]
	if !ok {
		return snapshot[node.ID], nil
	}
	v, err := evaluator(node, graph, snapshot)
	if err != nil {
		return nil, nodeError(execstate.ErrExtensionError, node.ID, err.Error())
	}
	return v, nil
}
