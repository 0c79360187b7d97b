package graphcompile

import (
	"encoding/json"
	"fmt"

	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/topology"
)

// Compile builds a Graph from doc (spec §4.3). doc is never mutated: every
// node, relation, and the execution block is deep-copied via JSON
// round-trip before defaults are filled in, matching the teacher's own
// copy-before-mutate discipline in dag.Build's multi-pass construction
// (internal/dag/build.go).
func Compile(doc *schema.Document) (*Graph, error) {
	cp, err := deepCopy(doc)
	if err != nil {
		return nil, fmt.Errorf("graphcompile: deep copy failed: %w", err)
	}

	if cp.Execution == nil {
		cp.Execution = &schema.ExecConfig{}
	}
	fillExecutionDefaults(cp.Execution)
	for i := range cp.Nodes {
		fillNodeDefaults(&cp.Nodes[i])
	}
	for i := range cp.Relations {
		fillRelationDefaults(&cp.Relations[i])
	}

	g := &Graph{
		Metadata:  cp.Metadata,
		Execution: *cp.Execution,
		nodes:     cp.Nodes,
		relations: cp.Relations,
	}

	g.nodeIndex = make(map[string]int, len(g.nodes))
	for i, n := range g.nodes {
		g.nodeIndex[n.ID] = i
	}
	g.relationIndex = make(map[string]int, len(g.relations))
	for i, r := range g.relations {
		g.relationIndex[r.ID] = i
	}

	g.forward, g.reverse = topology.BuildAdjacency(g.relations, topology.AllTypes, true)
	g.buildCausalAdjacency()

	g.EntryPoints, g.ExitPoints = topology.InferEndpoints(g.nodes, g.relations, &g.Execution)
	g.Complexity = computeComplexity(g)

	return g, nil
}

// deepCopy round-trips doc through JSON so the returned value shares no
// backing arrays with the caller's Document — safe for Compile to mutate
// freely while filling defaults.
func deepCopy(doc *schema.Document) (schema.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return schema.Document{}, err
	}
	var cp schema.Document
	if err := json.Unmarshal(data, &cp); err != nil {
		return schema.Document{}, err
	}
	return cp, nil
}

func fillExecutionDefaults(exec *schema.ExecConfig) {
	if exec.MaxIter == nil {
		v := schema.DefaultMaxIterations
		exec.MaxIter = &v
	}
	if exec.TimeoutMS == nil {
		v := schema.DefaultTimeoutMS
		exec.TimeoutMS = &v
	}
	if exec.Mode == "" {
		exec.Mode = schema.DefaultMode
	}
}

func fillNodeDefaults(n *schema.Node) {
	if n.Data.Confidence == nil {
		v := schema.DefaultConfidence
		n.Data.Confidence = &v
	}
	if n.Data.Weight == nil {
		v := schema.DefaultWeight
		n.Data.Weight = &v
	}
	if n.Data.State == "" {
		n.Data.State = schema.StateActive
	}
}

func fillRelationDefaults(r *schema.Relation) {
	if r.Strength == nil {
		v := schema.DefaultStrength
		r.Strength = &v
	}
	if r.Bidirectional == nil {
		v := false
		r.Bidirectional = &v
	}
}

// buildCausalAdjacency populates incomingCausal/outgoingCausal, excluding
// `contains` relations (spec §9 Open Question 4).
func (g *Graph) buildCausalAdjacency() {
	g.incomingCausal = map[string][]IncomingEdge{}
	g.outgoingCausal = map[string][]string{}
	for i := range g.relations {
		r := &g.relations[i]
		if !topology.NonStructural(r.Type) {
			continue
		}
		g.incomingCausal[r.Target] = append(g.incomingCausal[r.Target], IncomingEdge{From: r.Source, Relation: r})
		g.outgoingCausal[r.Source] = append(g.outgoingCausal[r.Source], r.Target)
		if r.Bidirectional != nil && *r.Bidirectional {
			g.incomingCausal[r.Source] = append(g.incomingCausal[r.Source], IncomingEdge{From: r.Target, Relation: r})
			g.outgoingCausal[r.Target] = append(g.outgoingCausal[r.Target], r.Source)
		}
	}
}
