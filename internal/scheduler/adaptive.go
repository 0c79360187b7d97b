package scheduler

import (
	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/graphcompile"
)

// strategy is the internal choice adaptive mode resolves to. Unlike
// Mode, it is never a document-facing value — a document can ask for
// "adaptive" but never directly for "hybrid" (spec §4.4 only exposes
// sequential/parallel/adaptive as the mode enum; hybrid is adaptive's
// internal fallback).
type strategy string

const (
	stratSequential strategy = "sequential"
	stratParallel   strategy = "parallel"
	stratHybrid     strategy = "hybrid"
)

// chooseStrategy applies the exact heuristic of spec §4.4 Adaptive.
func chooseStrategy(graph *graphcompile.Graph) strategy {
	if graph.NodeCount() < 10 || graph.Complexity.AvgBranching < 2 {
		return stratSequential
	}
	if graph.Complexity.CycleCount == 0 && graph.NodeCount() > 20 {
		return stratParallel
	}
	return stratHybrid
}

func runAdaptive(rc *runContext) execstate.Result {
	switch chooseStrategy(rc.graph) {
	case stratSequential:
		return runSequential(rc)
	case stratParallel:
		return runParallel(rc)
	default:
		return runHybrid(rc)
	}
}
