// Package nodeeval implements the per-node-type evaluation rules (spec
// §4.5, component C5): given a graph and a read-only snapshot of the
// current state map, compute each node's next value. Evaluators never
// write to shared state themselves — the scheduler (package scheduler)
// owns the state map and applies whatever a node evaluator returns,
// matching the single-writer discipline of spec §5.
package nodeeval

import (
	"time"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
)

// CustomEvaluator computes a custom-typed node's next value. It is looked
// up by the node's custom_type tag in a caller-supplied Registry — there
// is no global registry (spec §9 "Custom node types").
type CustomEvaluator func(node *schema.Node, graph *graphcompile.Graph, state map[string]any) (any, error)

// Registry maps a custom_type tag to the evaluator that handles it.
type Registry map[string]CustomEvaluator

// DefaultValue is the type default a node is seeded with when it has no
// explicit data.value (spec §4.4 "Initialization").
func DefaultValue(t schema.NodeType) any {
	switch t {
	case schema.NodeConcept:
		return 0.0
	case schema.NodeCondition, schema.NodeAction, schema.NodeEvent:
		return false
	default: // formula, custom
		return nil
	}
}

// Evaluate computes node id's next value given graph and a read-only
// snapshot of the current state map. now is the wall-clock instant the
// scheduler is evaluating this pass at, used by event nodes.
func Evaluate(graph *graphcompile.Graph, id string, snapshot map[string]any, registry Registry, now time.Time) (any, *execstate.ErrorRecord) {
	node, ok := graph.Node(id)
	if !ok {
		return snapshot[id], nil
	}

	switch node.Type {
	case schema.NodeConcept:
		return evalConcept(graph, node, snapshot), nil
	case schema.NodeCondition:
		return evalConditionNode(graph, node, snapshot)
	case schema.NodeAction:
		return evalAction(graph, node, snapshot)
	case schema.NodeEvent:
		return evalEvent(node, graph, snapshot, now), nil
	case schema.NodeFormula:
		return evalFormula(graph, node, snapshot)
	case schema.NodeCustom:
		return evalCustom(graph, node, snapshot, registry)
	default:
		return snapshot[id], nil
	}
}

func nodeError(kind execstate.ErrorKind, nodeID, msg string) *execstate.ErrorRecord {
	return &execstate.ErrorRecord{Kind: kind, NodeID: nodeID, Message: msg, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)}
}
