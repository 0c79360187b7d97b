package scheduler

import "github.com/cogform/cogform/internal/execstate"

// runHybrid processes strongly-connected components in condensation
// order: a singleton component evaluates once per pass like sequential
// mode; a component of size>1 (a real cycle) gets up to 10 internal
// sequential rounds, or fewer if it reaches a local fixed point first
// (spec §4.4 Hybrid, §9 Design Notes).
func runHybrid(rc *runContext) execstate.Result {
	sccs := tarjanSCCs(rc.graph)

	for rc.iteration = 1; rc.iteration <= rc.maxIterations; rc.iteration++ {
		if rc.timedOut() {
			return rc.result(false, rc.timeoutError())
		}
		changed := rc.hybridPass(sccs)
		if len(rc.errors) > 0 {
			return rc.result(false, rc.errors...)
		}
		if !changed {
			return rc.result(true)
		}
	}
	return rc.result(false, rc.infiniteLoopError())
}

func (rc *runContext) hybridPass(sccs [][]string) bool {
	live := rc.state.Live()
	changed := false
	for _, component := range sccs {
		if len(component) == 1 {
			if rc.evaluateOne(component[0], live) {
				changed = true
			}
			continue
		}
		if rc.runComponentRounds(component, live) {
			changed = true
		}
	}
	return changed
}

const maxComponentRounds = 10

func (rc *runContext) runComponentRounds(component []string, live map[string]any) bool {
	anyChanged := false
	for round := 0; round < maxComponentRounds; round++ {
		roundChanged := false
		for _, id := range component {
			if rc.evaluateOne(id, live) {
				roundChanged = true
			}
		}
		if !roundChanged {
			break
		}
		anyChanged = true
	}
	return anyChanged
}
