package scheduler

import (
	"sync"
	"time"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/nodeeval"
)

// runParallel partitions nodes into dependency levels (kahnLevels) and,
// per outer pass, evaluates each level's nodes concurrently against a
// frozen pre-level snapshot, applying writes only once the whole level
// has finished (spec §4.4 Parallel, §5 "snapshot-before-level /
// apply-after-level barrier").
//
// Nodes the layering can't place (stuck in a cycle among non-causal
// relations the validator doesn't reject — influences/blocks can still
// loop) are left at their seeded value for the pass, per spec. If the
// layering itself hits the 100-level cap with nodes still unplaced, that
// is an execution_error (spec §9 Open Question 1).
func runParallel(rc *runContext) execstate.Result {
	levels, _, capped := kahnLevels(rc.graph)
	if capped {
		return rc.result(false, rc.errorRecord(execstate.ErrExecutionError, "", "dependency layering exceeded the 100-level cap"))
	}

	for rc.iteration = 1; rc.iteration <= rc.maxIterations; rc.iteration++ {
		if rc.timedOut() {
			return rc.result(false, rc.timeoutError())
		}
		changed, err := rc.parallelPass(levels)
		if err != nil {
			return rc.result(false, *err)
		}
		if len(rc.errors) > 0 {
			return rc.result(false, rc.errors...)
		}
		if !changed {
			return rc.result(true)
		}
	}
	return rc.result(false, rc.infiniteLoopError())
}

type levelOutcome struct {
	id     string
	before any
	out    any
	errRec *execstate.ErrorRecord
	dur    time.Duration
}

func (rc *runContext) parallelPass(levels [][]string) (bool, *execstate.ErrorRecord) {
	changed := false
	for _, level := range levels {
		if rc.timedOut() {
			return changed, ptr(rc.timeoutError())
		}

		snapshot := rc.state.Snapshot()
		results := make([]levelOutcome, len(level))
		var wg sync.WaitGroup
		for i, id := range level {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				start := time.Now()
				out, errRec := nodeeval.Evaluate(rc.graph, id, snapshot, rc.registry, start)
				results[i] = levelOutcome{id: id, before: snapshot[id], out: out, errRec: errRec, dur: time.Since(start)}
			}(i, id)
		}
		wg.Wait()

		for _, r := range results {
			rc.nodesEvaluated++
			if r.errRec != nil {
				rc.errors = append(rc.errors, *r.errRec)
				continue
			}
			if !execstate.Equal(r.before, r.out) {
				rc.state.Set(r.id, r.out)
				rc.recordTrace(r.id, execstate.ActionExecute, r.before, r.out, r.dur)
				changed = true
			}
		}
	}
	return changed, nil
}

func ptr(e execstate.ErrorRecord) *execstate.ErrorRecord { return &e }
