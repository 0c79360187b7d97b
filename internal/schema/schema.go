// Package schema defines the JSON-serializable document format for a
// cognitive model: the typed graph of nodes and relations, plus the
// metadata and execution configuration that accompany it. These are the
// wire types described in spec §3 and §6 ("Document file format"); the
// compiler deep-copies them and never mutates a caller's Document.
package schema

import "encoding/json"

// NodeType is the closed set of node kinds a document may declare.
type NodeType string

const (
	NodeConcept   NodeType = "concept"
	NodeCondition NodeType = "condition"
	NodeAction    NodeType = "action"
	NodeEvent     NodeType = "event"
	NodeFormula   NodeType = "formula"
	NodeCustom    NodeType = "custom"
)

// RelationType is the closed set of relation kinds a document may declare.
type RelationType string

const (
	RelationCauses     RelationType = "causes"
	RelationTriggers   RelationType = "triggers"
	RelationBlocks     RelationType = "blocks"
	RelationContains   RelationType = "contains"
	RelationDependsOn  RelationType = "depends_on"
	RelationInfluences RelationType = "influences"
	RelationCustom     RelationType = "custom"
)

// NodeState is the closed set of runtime states a node's data may carry.
type NodeState string

const (
	StateActive    NodeState = "active"
	StateInactive  NodeState = "inactive"
	StatePending   NodeState = "pending"
	StateCompleted NodeState = "completed"
	StateFailed    NodeState = "failed"
)

// ConditionOperator is the closed set of operators an activation condition
// may use.
type ConditionOperator string

const (
	OpEq       ConditionOperator = "eq"
	OpNeq      ConditionOperator = "neq"
	OpGt       ConditionOperator = "gt"
	OpLt       ConditionOperator = "lt"
	OpGte      ConditionOperator = "gte"
	OpLte      ConditionOperator = "lte"
	OpContains ConditionOperator = "contains"
)

// ExecutionMode is the closed set of scheduling disciplines (spec §4.4).
type ExecutionMode string

const (
	ModeSequential ExecutionMode = "sequential"
	ModeParallel   ExecutionMode = "parallel"
	ModeAdaptive   ExecutionMode = "adaptive"
)

// Document is the top-level, file-serializable record (spec §3).
type Document struct {
	Metadata  Metadata    `json:"metadata"`
	Nodes     []Node      `json:"nodes"`
	Relations []Relation  `json:"relations"`
	Execution *ExecConfig `json:"execution,omitempty"`
}

// DependencyRef is a cross-document dependency pin (id + version).
type DependencyRef struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// Metadata describes the document as a whole.
type Metadata struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Version      string          `json:"version"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	Author       string          `json:"author,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Dependencies []DependencyRef `json:"dependencies,omitempty"`
	Extensions   json.RawMessage `json:"extensions,omitempty"`
}

// Position is an optional UI layout hint for a node.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the mutable payload of a node.
type NodeData struct {
	Value      json.RawMessage            `json:"value,omitempty"`
	Confidence *float64                   `json:"confidence,omitempty"`
	Weight     *float64                   `json:"weight,omitempty"`
	Parameters map[string]json.RawMessage `json:"parameters,omitempty"`
	State      NodeState                  `json:"state,omitempty"`
}

// Node is a single vertex in the cognitive graph.
type Node struct {
	ID          string          `json:"id"`
	Type        NodeType        `json:"type"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Data        NodeData        `json:"data"`
	Position    *Position       `json:"position,omitempty"`
	CustomType  string          `json:"custom_type,omitempty"`
	Extensions  json.RawMessage `json:"extensions,omitempty"`
}

// ActivationCondition is a `{field, operator, value}` predicate that must
// hold on a relation's source node for the relation to be considered
// active (spec §3, §4.5 Condition).
type ActivationCondition struct {
	Field    string            `json:"field"`
	Operator ConditionOperator `json:"operator"`
	Value    json.RawMessage   `json:"value"`
}

// Relation is a typed, directed edge between two nodes.
type Relation struct {
	ID                   string                `json:"id"`
	Type                 RelationType          `json:"type"`
	Source               string                `json:"source"`
	Target               string                `json:"target"`
	Label                string                `json:"label,omitempty"`
	Strength             *float64              `json:"strength,omitempty"`
	Bidirectional        *bool                 `json:"bidirectional,omitempty"`
	ActivationConditions []ActivationCondition `json:"activation_conditions,omitempty"`
	CustomType           string                `json:"custom_type,omitempty"`
	Extensions           json.RawMessage       `json:"extensions,omitempty"`
}

// ExecConfig is the optional execution configuration block of a document.
type ExecConfig struct {
	EntryPoints []string      `json:"entry_points,omitempty"`
	ExitPoints  []string      `json:"exit_points,omitempty"`
	MaxIter     *int          `json:"max_iterations,omitempty"`
	TimeoutMS   *int          `json:"timeout_ms,omitempty"`
	Mode        ExecutionMode `json:"mode,omitempty"`
}

// Defaults the compiler fills in when a document's execution block omits
// them (spec §4.3).
const (
	DefaultMaxIterations = 1000
	DefaultTimeoutMS     = 30000
	DefaultMode          = ModeAdaptive
)

// Per-node/relation numeric defaults (spec §4.3).
const (
	DefaultConfidence = 1.0
	DefaultWeight     = 1.0
	DefaultStrength   = 1.0
)
