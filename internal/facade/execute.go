package facade

import (
	"fmt"
	"time"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/scheduler"
	"github.com/cogform/cogform/internal/stream"
)

// Execute runs the cached graph for id against inputs and records the
// outcome in history.
func (f *Facade) Execute(id string, inputs map[string]any, cfg *scheduler.Config) (execstate.Result, error) {
	g, ok := f.Graph(id)
	if !ok {
		return execstate.Result{}, fmt.Errorf("facade: no cached graph for %q", id)
	}
	return f.run(id, g, inputs, cfg, false), nil
}

// ExecuteFile loads path, then immediately executes it (spec §4.6
// "execute directly from file").
func (f *Facade) ExecuteFile(path string, inputs map[string]any, cfg *scheduler.Config) (execstate.Result, error) {
	lr, err := f.Load(path)
	if err != nil {
		return execstate.Result{}, err
	}
	if !lr.Validation.Valid {
		return execstate.Result{}, fmt.Errorf("facade: %s failed validation", path)
	}
	return f.run(lr.DocumentID, lr.Graph, inputs, cfg, false), nil
}

// Simulate executes against an isolated copy of the cached graph, so a
// simulation can never mutate — or be seen mutating — the entry other
// callers observe via Graph/Execute (spec §4.6 "leaving the cache
// intact").
func (f *Facade) Simulate(id string, inputs map[string]any, cfg *scheduler.Config) (execstate.Result, error) {
	g, ok := f.Graph(id)
	if !ok {
		return execstate.Result{}, fmt.Errorf("facade: no cached graph for %q", id)
	}
	isolated, err := recompileCopy(g)
	if err != nil {
		return execstate.Result{}, err
	}
	return f.run(id, isolated, inputs, cfg, true), nil
}

// recompileCopy rebuilds a schema.Document from a compiled Graph's
// exported accessors and recompiles it, producing a Graph that shares no
// backing storage with g.
func recompileCopy(g *graphcompile.Graph) (*graphcompile.Graph, error) {
	exec := g.Execution
	doc := &schema.Document{
		Metadata:  g.Metadata,
		Nodes:     append([]schema.Node{}, g.Nodes()...),
		Relations: append([]schema.Relation{}, g.Relations()...),
		Execution: &exec,
	}
	return graphcompile.Compile(doc)
}

func (f *Facade) run(id string, g *graphcompile.Graph, inputs map[string]any, cfg *scheduler.Config, simulated bool) execstate.Result {
	startedAt := time.Now()
	executionID := stream.NewExecutionID()

	runCfg := schedulerConfigWithBroadcast(cfg, f.broadcasterOnStep(executionID, id))
	result := scheduler.Execute(g, inputs, runCfg, f.registry)

	entry := HistoryEntry{
		Key:         historyKey(id, startedAt, executionID),
		ExecutionID: executionID,
		DocumentID:  id,
		StartedAt:   startedAt.UTC().Format(time.RFC3339Nano),
		Simulated:   simulated,
		Result:      result,
	}
	f.mu.Lock()
	f.history[id] = append(f.history[id], entry)
	f.mu.Unlock()
	return result
}

// broadcasterOnStep returns the live-stream publish hook for this run, or
// nil if no broadcaster is attached.
func (f *Facade) broadcasterOnStep(executionID, documentID string) func(execstate.TraceStep) {
	f.mu.RLock()
	b := f.broadcaster
	f.mu.RUnlock()
	if b == nil {
		return nil
	}
	return b.OnStep(executionID, documentID)
}

// schedulerConfigWithBroadcast clones cfg (or starts from zero if nil)
// and layers onStep on top, preserving a caller-supplied OnStep by
// calling both.
func schedulerConfigWithBroadcast(cfg *scheduler.Config, onStep func(execstate.TraceStep)) *scheduler.Config {
	if onStep == nil {
		return cfg
	}
	out := scheduler.Config{}
	if cfg != nil {
		out = *cfg
	}
	prior := out.OnStep
	out.OnStep = func(step execstate.TraceStep) {
		if prior != nil {
			prior(step)
		}
		onStep(step)
	}
	return &out
}

// BatchExecute runs every id in inputsByID against its cached graph.
func (f *Facade) BatchExecute(inputsByID map[string]map[string]any, cfg *scheduler.Config) map[string]execstate.Result {
	out := make(map[string]execstate.Result, len(inputsByID))
	for id, inputs := range inputsByID {
		result, err := f.Execute(id, inputs, cfg)
		if err != nil {
			out[id] = execstate.Result{Success: false, Errors: []execstate.ErrorRecord{{
				Kind: execstate.ErrExecutionError, Message: err.Error(),
				Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			}}}
			continue
		}
		out[id] = result
	}
	return out
}
