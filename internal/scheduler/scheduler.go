// Package scheduler drives a compiled graph to a fixed point (spec §4.4,
// component C4): seed state from inputs, then repeat node evaluation
// passes — sequential, parallel, adaptive, or hybrid — until no node's
// value changes, the iteration cap is hit, or the wall-clock timeout
// expires. Evaluation itself (§4.5) lives in package nodeeval; scheduler
// owns the only write access to state, matching the single-writer
// discipline of spec §5.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/nodeeval"
	"github.com/cogform/cogform/internal/schema"
)

// Config is the execution configuration, overridable per call (spec §4.4
// "execute(graph, inputs, config-overrides?)"). A zero-valued field means
// "use the graph's own compiled default".
type Config struct {
	MaxIterations int
	TimeoutMS     int
	Mode          schema.ExecutionMode

	// OnStep, if non-nil, is invoked synchronously with every trace step as
	// it is recorded — the hook internal/stream uses to broadcast live
	// execution progress to connected watchers (spec §4.6 live trace
	// streaming). It never affects scheduling outcome.
	OnStep func(execstate.TraceStep)
}

// resolveConfig starts from the graph's own (already-defaulted) execution
// block and applies any non-zero override fields on top.
func resolveConfig(graph *graphcompile.Graph, overrides *Config) Config {
	cfg := Config{
		MaxIterations: *graph.Execution.MaxIter,
		TimeoutMS:     *graph.Execution.TimeoutMS,
		Mode:          graph.Execution.Mode,
	}
	if overrides == nil {
		return cfg
	}
	if overrides.MaxIterations > 0 {
		cfg.MaxIterations = overrides.MaxIterations
	}
	if overrides.TimeoutMS > 0 {
		cfg.TimeoutMS = overrides.TimeoutMS
	}
	if overrides.Mode != "" {
		cfg.Mode = overrides.Mode
	}
	cfg.OnStep = overrides.OnStep
	return cfg
}

// runContext is the mutable state one Execute call threads through
// whichever mode handler it dispatches to.
type runContext struct {
	graph    *graphcompile.Graph
	registry nodeeval.Registry
	state    *execstate.State
	trace    []execstate.TraceStep
	errors   []execstate.ErrorRecord

	step           int
	iteration      int
	nodesEvaluated int

	start         time.Time
	timeoutMS     int
	maxIterations int
	onStep        func(execstate.TraceStep)
}

// Execute runs graph to completion against inputs (spec §4.4).
func Execute(graph *graphcompile.Graph, inputs map[string]any, overrides *Config, registry nodeeval.Registry) execstate.Result {
	cfg := resolveConfig(graph, overrides)
	rc := &runContext{
		graph:         graph,
		registry:      registry,
		state:         execstate.NewState(),
		start:         time.Now(),
		timeoutMS:     cfg.TimeoutMS,
		maxIterations: cfg.MaxIterations,
		onStep:        cfg.OnStep,
	}
	rc.seed(inputs)

	switch cfg.Mode {
	case schema.ModeSequential:
		return runSequential(rc)
	case schema.ModeParallel:
		return runParallel(rc)
	default:
		return runAdaptive(rc)
	}
}

// seed implements spec §4.4 "Initialization": inputs are recorded with an
// evaluate trace step each; every other node falls back to its static
// data.value, or its type default.
func (rc *runContext) seed(inputs map[string]any) {
	for _, n := range rc.graph.Nodes() {
		if v, ok := inputs[n.ID]; ok {
			rc.state.Set(n.ID, v)
			rc.recordTrace(n.ID, execstate.ActionEvaluate, nil, v, 0)
			continue
		}
		if v := decodeStaticValue(n.Data.Value); v != nil {
			rc.state.Set(n.ID, v)
			continue
		}
		rc.state.Set(n.ID, nodeeval.DefaultValue(n.Type))
	}
}

func decodeStaticValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func (rc *runContext) nextStep() int {
	rc.step++
	return rc.step
}

func (rc *runContext) recordTrace(nodeID string, action execstate.Action, input, output any, duration time.Duration) {
	step := execstate.TraceStep{
		Step:       rc.nextStep(),
		NodeID:     nodeID,
		Action:     action,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Input:      input,
		Output:     output,
		DurationMS: float64(duration.Microseconds()) / 1000.0,
	}
	rc.trace = append(rc.trace, step)
	if rc.onStep != nil {
		rc.onStep(step)
	}
}

func (rc *runContext) timedOut() bool {
	return time.Since(rc.start) > time.Duration(rc.timeoutMS)*time.Millisecond
}

func (rc *runContext) errorRecord(kind execstate.ErrorKind, nodeID, message string) execstate.ErrorRecord {
	return execstate.ErrorRecord{Kind: kind, NodeID: nodeID, Message: message, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)}
}

func (rc *runContext) timeoutError() execstate.ErrorRecord {
	return rc.errorRecord(execstate.ErrExecutionTimeout, "", "execution exceeded timeout_ms")
}

func (rc *runContext) infiniteLoopError() execstate.ErrorRecord {
	return rc.errorRecord(execstate.ErrInfiniteLoop, "", "exceeded max_iterations without reaching a fixed point")
}

// iterationsCompleted reports the number of passes actually run. The
// cap loops (`for rc.iteration = 1; rc.iteration <= rc.maxIterations;
// rc.iteration++`) leave rc.iteration at maxIterations+1 once the cap is
// exhausted, since the increment runs before the bound check fails;
// clamp that back to maxIterations so a max_iterations=5 run reports 5,
// not 6 (spec §8 scenario 5).
func (rc *runContext) iterationsCompleted() int {
	if rc.iteration > rc.maxIterations {
		return rc.maxIterations
	}
	return rc.iteration
}

// result packages the run's outcome (spec §4.4 "Termination").
func (rc *runContext) result(success bool, errs ...execstate.ErrorRecord) execstate.Result {
	allErrors := append(append([]execstate.ErrorRecord{}, rc.errors...), errs...)
	return execstate.Result{
		Success:    success,
		FinalState: rc.state.Export(),
		Trace:      rc.trace,
		Metrics: execstate.Metrics{
			IterationsCompleted: rc.iterationsCompleted(),
			ElapsedMS:           float64(time.Since(rc.start).Microseconds()) / 1000.0,
			NodesEvaluated:      rc.nodesEvaluated,
			TraceSteps:          len(rc.trace),
		},
		Errors: allErrors,
	}
}

// evaluateOne evaluates a single node against live (the scheduler's own
// in-progress map for this pass), applies the write itself, and reports
// whether the value changed. Shared by sequential and hybrid mode, which
// both process nodes one at a time against a live map rather than a
// frozen snapshot (spec §4.4 Sequential, §9 hybrid Design Notes).
func (rc *runContext) evaluateOne(id string, live map[string]any) bool {
	before := live[id]
	start := time.Now()
	out, errRec := nodeeval.Evaluate(rc.graph, id, live, rc.registry, start)
	rc.nodesEvaluated++
	if errRec != nil {
		rc.errors = append(rc.errors, *errRec)
		return false
	}
	if !execstate.Equal(before, out) {
		live[id] = out
		rc.recordTrace(id, execstate.ActionExecute, before, out, time.Since(start))
		return true
	}
	return false
}
