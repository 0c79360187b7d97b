// Package execstate holds the runtime types the scheduler and node
// evaluator share while driving a compiled graph to a fixed point (spec
// §3 "Execution state", §4.4): the live id→value map, the trace log, and
// the result and error shapes returned to callers.
package execstate

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Action is the kind of event a trace step records.
type Action string

const (
	ActionEvaluate Action = "evaluate"
	ActionExecute  Action = "execute"
	ActionTrigger  Action = "trigger"
	ActionComplete Action = "complete"
)

// TraceStep is one record in the ordered execution log (spec §3, §4.4).
type TraceStep struct {
	Step      int    `json:"step"`
	NodeID    string `json:"node_id"`
	Action    Action `json:"action"`
	Timestamp string `json:"timestamp"`
	Input     any    `json:"input,omitempty"`
	Output    any    `json:"output,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// ErrorKind is the runtime error taxonomy (spec §7).
type ErrorKind string

const (
	ErrExecutionTimeout ErrorKind = "execution_timeout"
	ErrInfiniteLoop     ErrorKind = "infinite_loop"
	ErrFormulaTimeout   ErrorKind = "formula_timeout"
	ErrFormulaMemory    ErrorKind = "formula_memory"
	ErrFormulaError     ErrorKind = "formula_error"
	ErrConditionError   ErrorKind = "condition_error"
	ErrExtensionError   ErrorKind = "extension_error"
	ErrNodeExecution    ErrorKind = "node_execution"
	ErrExecutionError   ErrorKind = "execution_error"
)

// ErrorRecord is one runtime error (spec §7): message, optional node id,
// optional relation id, and timestamp.
type ErrorRecord struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	NodeID     string    `json:"node_id,omitempty"`
	RelationID string    `json:"relation_id,omitempty"`
	Timestamp  string    `json:"timestamp"`
}

func (e ErrorRecord) Error() string { return string(e.Kind) + ": " + e.Message }

// Metrics is the aggregate summary attached to a Result.
type Metrics struct {
	IterationsCompleted int     `json:"iterations_completed"`
	ElapsedMS           float64 `json:"elapsed_ms"`
	NodesEvaluated      int     `json:"nodes_evaluated"`
	TraceSteps          int     `json:"trace_steps"`
}

// Result is the outcome of a scheduler run (spec §4.4).
type Result struct {
	Success    bool          `json:"success"`
	FinalState map[string]any `json:"final_state"`
	Trace      []TraceStep   `json:"trace"`
	Metrics    Metrics       `json:"metrics"`
	Errors     []ErrorRecord `json:"errors,omitempty"`
}

// State is the mutable id→current-value map the scheduler owns
// exclusively; node evaluators only ever see a read-only Snapshot of it
// (spec §5 "Shared-resource policy").
type State struct {
	values map[string]any
}

// NewState returns an empty state map.
func NewState() *State { return &State{values: map[string]any{}} }

// Set stores v for id. Only the scheduler calls this.
func (s *State) Set(id string, v any) { s.values[id] = v }

// Get returns the current value for id, or nil if unset.
func (s *State) Get(id string) any { return s.values[id] }

// Has reports whether id has ever been set.
func (s *State) Has(id string) bool {
	_, ok := s.values[id]
	return ok
}

// Snapshot returns a read-only copy safe to hand to concurrent evaluators;
// mutating the returned map never affects the live state.
func (s *State) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Live returns the backing map directly, with no copy. It exists for the
// sequential driver, which is single-threaded and — unlike parallel mode
// — is specified to let later nodes in a pass see earlier nodes' writes
// from the same pass (spec §4.4 Sequential, §5 "single logical thread of
// control"). Callers from more than one goroutine must use Snapshot
// instead.
func (s *State) Live() map[string]any { return s.values }

// Export returns the final_state map for a Result, in the same shape as
// Snapshot but named for the caller-facing use.
func (s *State) Export() map[string]any { return s.Snapshot() }

// Equal reports whether two values are the "same" for change detection
// (spec §4.4 "Value equality"): primitive equality for primitives,
// canonical JSON-string comparison for composites.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case float64, bool, string, nil:
		return av == b
	}
	ca, errA := canonicalJSON(a)
	cb, errB := canonicalJSON(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}

// canonicalJSON marshals v with map keys sorted, so two structurally
// equal values always produce byte-identical output regardless of map
// iteration order.
func canonicalJSON(v any) ([]byte, error) {
	switch tv := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := bytes.NewBufferString("{")
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, _ := json.Marshal(k)
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := canonicalJSON(tv[k])
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case []any:
		buf := bytes.NewBufferString("[")
		for i, e := range tv {
			if i > 0 {
				buf.WriteByte(',')
			}
			eb, err := canonicalJSON(e)
			if err != nil {
				return nil, err
			}
			buf.Write(eb)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return json.Marshal(tv)
	}
}

// Truthy mirrors JavaScript-ish truthiness for the JSON-like value domain
// this engine works with, since conditions and action gates need a single
// consistent rule for "is this value true-ish" (spec §4.5).
func Truthy(v any) bool {
	switch tv := v.(type) {
	case nil:
		return false
	case bool:
		return tv
	case float64:
		return tv != 0
	case string:
		return tv != ""
	case []any:
		return len(tv) > 0
	case map[string]any:
		return len(tv) > 0
	default:
		return true
	}
}
