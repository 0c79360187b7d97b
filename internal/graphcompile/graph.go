// Package graphcompile implements the compiler (spec §4.3, component C3):
// it turns a validated Document into a Graph ready for scheduling —
// defaults filled in, adjacency precomputed, entry/exit points and
// complexity metrics attached.
//
// Graph storage follows the arena-plus-index discipline of spec §9's
// design notes rather than the teacher dag.Graph's shared mutable
// pointer-map (internal/dag/types.go): nodes and relations live in two
// dense, append-only slices (the arenas), and four id→index/id→ids maps
// provide lookup without ever re-allocating or mutating the arenas after
// compile. A Graph is immutable once returned by Compile; scheduling
// never appends to or reorders its arenas.
package graphcompile

import "github.com/cogform/cogform/internal/schema"

// Complexity summarizes the shape of a compiled graph (spec §4.3).
type Complexity struct {
	MaxDepth     int     `json:"max_depth"`
	AvgBranching float64 `json:"avg_branching"`
	CycleCount   int     `json:"cycle_count"`
}

// OptimizationTag records the last Optimize call applied to a graph (spec
// §4.3: "every mode writes an optimization tag {type, applied, timestamp}
// into extensions").
type OptimizationTag struct {
	Type      string `json:"type"`
	Applied   bool   `json:"applied"`
	Timestamp string `json:"timestamp"`
}

// IncomingEdge names one edge feeding into a node, alongside the relation
// that carries it — used by the node evaluator to read strength and
// activation conditions without a second lookup.
type IncomingEdge struct {
	From     string
	Relation *schema.Relation
}

// Graph is the compiled, execution-ready form of a Document.
type Graph struct {
	Metadata  schema.Metadata
	Execution schema.ExecConfig

	// nodes and relations are the two dense arenas: append-only, indexed
	// by position, never mutated after Compile returns.
	nodes     []schema.Node
	relations []schema.Relation

	// nodeIndex and relationIndex are the id→index maps over the arenas.
	nodeIndex     map[string]int
	relationIndex map[string]int

	// forward and reverse are id→ids adjacency over ALL relation types,
	// including contains, used for complexity metrics and entry/exit
	// inference (spec §4.3 literal wording does not exclude any type here).
	forward map[string][]string
	reverse map[string][]string

	// incomingCausal is id→incoming-edges over every relation type except
	// contains (spec §9 Open Question 4), used by the scheduler and node
	// evaluator to walk predecessors that actually propagate values.
	incomingCausal map[string][]IncomingEdge
	// outgoingCausal mirrors incomingCausal for successor walks.
	outgoingCausal map[string][]string

	EntryPoints []string
	ExitPoints  []string
	Complexity  Complexity

	Optimization *OptimizationTag
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// RelationCount returns the number of relations in the graph.
func (g *Graph) RelationCount() int { return len(g.relations) }

// Nodes returns the dense node arena in original document order. Callers
// must not mutate the returned slice's elements.
func (g *Graph) Nodes() []schema.Node { return g.nodes }

// Relations returns the dense relation arena in original document order.
func (g *Graph) Relations() []schema.Relation { return g.relations }

// Node looks up a node by id in O(1) via the index map.
func (g *Graph) Node(id string) (*schema.Node, bool) {
	idx, ok := g.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return &g.nodes[idx], true
}

// Relation looks up a relation by id in O(1) via the index map.
func (g *Graph) Relation(id string) (*schema.Relation, bool) {
	idx, ok := g.relationIndex[id]
	if !ok {
		return nil, false
	}
	return &g.relations[idx], true
}

// Successors returns the ids a node points to over every relation type.
func (g *Graph) Successors(id string) []string { return g.forward[id] }

// Predecessors returns the ids pointing into a node over every relation
// type.
func (g *Graph) Predecessors(id string) []string { return g.reverse[id] }

// IncomingCausal returns the incoming edges a node should consider when
// evaluating its own value — every relation type except contains, with
// bidirectional relations contributing an edge in both directions.
func (g *Graph) IncomingCausal(id string) []IncomingEdge { return g.incomingCausal[id] }

// OutgoingCausal returns the successor ids reachable over the same
// causal subgraph as IncomingCausal, used by the scheduler to order
// node evaluation.
func (g *Graph) OutgoingCausal(id string) []string { return g.outgoingCausal[id] }
