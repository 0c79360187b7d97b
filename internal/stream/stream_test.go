package stream

import (
	"testing"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/stretchr/testify/assert"
)

func TestNewExecutionIDIsUnique(t *testing.T) {
	a := NewExecutionID()
	b := NewExecutionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestBroadcasterPublishWithNoWatchers(t *testing.T) {
	b := New()
	defer b.Close()

	assert.NotNil(t, b.Handler())

	hook := b.OnStep("exec-1", "doc-1")
	assert.NotPanics(t, func() {
		hook(execstate.TraceStep{Step: 1, NodeID: "n", Action: execstate.ActionEvaluate})
	})
}
