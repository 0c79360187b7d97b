package scheduler

import "github.com/cogform/cogform/internal/execstate"

// runSequential repeats a single-threaded pass over sequentialOrder until
// a pass produces no change, the iteration cap is reached, or the
// timeout fires (spec §4.4 Sequential).
func runSequential(rc *runContext) execstate.Result {
	order := sequentialOrder(rc.graph)

	for rc.iteration = 1; rc.iteration <= rc.maxIterations; rc.iteration++ {
		if rc.timedOut() {
			return rc.result(false, rc.timeoutError())
		}
		changed := rc.sequentialPass(order)
		if len(rc.errors) > 0 {
			return rc.result(false, rc.errors...)
		}
		if !changed {
			return rc.result(true)
		}
	}
	return rc.result(false, rc.infiniteLoopError())
}

func (rc *runContext) sequentialPass(order []string) bool {
	live := rc.state.Live()
	changed := false
	for _, id := range order {
		if rc.evaluateOne(id, live) {
			changed = true
		}
	}
	return changed
}
