package scheduler

import (
	"encoding/json"
	"testing"

	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestExecuteWeatherDecisionScenario(t *testing.T) {
	// Spec §8 scenario 1.
	doc := &schema.Document{
		Metadata: schema.Metadata{ID: "weather", Name: "weather", Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes: []schema.Node{
			{ID: "weather_input", Type: schema.NodeEvent},
			{ID: "good_weather_condition", Type: schema.NodeCondition, Data: schema.NodeData{Parameters: map[string]json.RawMessage{
				"temperature_min":     rawJSON(t, 15),
				"temperature_max":     rawJSON(t, 30),
				"precipitation_max":   rawJSON(t, 0.1),
				"wind_speed_max":      rawJSON(t, 25),
			}}},
			{ID: "outdoor_activity", Type: schema.NodeAction},
			{ID: "indoor_activity", Type: schema.NodeAction},
		},
		Relations: []schema.Relation{
			{ID: "trig", Type: schema.RelationTriggers, Source: "weather_input", Target: "good_weather_condition"},
			{ID: "c1", Type: schema.RelationCauses, Source: "good_weather_condition", Target: "outdoor_activity",
				ActivationConditions: []schema.ActivationCondition{{Field: "data.value", Operator: schema.OpEq, Value: rawJSON(t, true)}}},
			{ID: "c2", Type: schema.RelationCauses, Source: "good_weather_condition", Target: "indoor_activity",
				ActivationConditions: []schema.ActivationCondition{{Field: "data.value", Operator: schema.OpEq, Value: rawJSON(t, false)}}},
		},
	}
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)

	inputs := map[string]any{
		"weather_input": map[string]any{"temperature": 22.0, "precipitation": 0.0, "wind_speed": 10.0},
	}
	result := Execute(g, inputs, nil, nil)
	require.True(t, result.Success)
	assert.Equal(t, true, result.FinalState["good_weather_condition"])
	assert.Equal(t, true, result.FinalState["outdoor_activity"])
	assert.Equal(t, false, result.FinalState["indoor_activity"])

	foundGoodWeather, foundOutdoor := false, false
	for _, step := range result.Trace {
		if step.NodeID == "good_weather_condition" && step.Output == true {
			foundGoodWeather = true
		}
		if step.NodeID == "outdoor_activity" && step.Output == true {
			foundOutdoor = true
		}
	}
	assert.True(t, foundGoodWeather)
	assert.True(t, foundOutdoor)
}

func resourceAllocationDoc(t *testing.T) *schema.Document {
	return &schema.Document{
		Metadata: schema.Metadata{ID: "alloc", Name: "alloc", Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes: []schema.Node{
			{ID: "cpu_satisfaction", Type: schema.NodeConcept},
			{ID: "memory_satisfaction", Type: schema.NodeConcept},
			{ID: "budget_satisfaction", Type: schema.NodeConcept},
			{ID: "constraint_optimizer", Type: schema.NodeFormula, Data: schema.NodeData{Parameters: map[string]json.RawMessage{
				"expression": rawJSON(t, "cpu_satisfaction*0.4 + memory_satisfaction*0.3 + budget_satisfaction*0.3"),
			}}},
			{ID: "optimal_allocation", Type: schema.NodeCondition},
			{ID: "degraded_allocation", Type: schema.NodeCondition},
		},
		Relations: []schema.Relation{
			{ID: "r1", Type: schema.RelationDependsOn, Source: "cpu_satisfaction", Target: "constraint_optimizer"},
			{ID: "r2", Type: schema.RelationDependsOn, Source: "memory_satisfaction", Target: "constraint_optimizer"},
			{ID: "r3", Type: schema.RelationDependsOn, Source: "budget_satisfaction", Target: "constraint_optimizer"},
			{ID: "r4", Type: schema.RelationCauses, Source: "constraint_optimizer", Target: "optimal_allocation",
				ActivationConditions: []schema.ActivationCondition{{Field: "data.value", Operator: schema.OpGte, Value: rawJSON(t, 0.9)}}},
			{ID: "r5", Type: schema.RelationCauses, Source: "constraint_optimizer", Target: "degraded_allocation",
				ActivationConditions: []schema.ActivationCondition{{Field: "data.value", Operator: schema.OpLt, Value: rawJSON(t, 0.9)}}},
		},
	}
}

func TestExecuteResourceAllocationScenario(t *testing.T) {
	// Spec §8 scenario 3.
	doc := resourceAllocationDoc(t)
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)

	optimalInputs := map[string]any{"cpu_satisfaction": 1.0, "memory_satisfaction": 1.0, "budget_satisfaction": 1.0}
	result := Execute(g, optimalInputs, nil, nil)
	require.True(t, result.Success)
	assert.InDelta(t, 1.0, result.FinalState["constraint_optimizer"].(float64), 0.0001)
	assert.Equal(t, true, result.FinalState["optimal_allocation"])
	assert.Equal(t, false, result.FinalState["degraded_allocation"])

	degradedInputs := map[string]any{"cpu_satisfaction": 0.6, "memory_satisfaction": 0.6, "budget_satisfaction": 0.6}
	result2 := Execute(g, degradedInputs, nil, nil)
	require.True(t, result2.Success)
	assert.InDelta(t, 0.6, result2.FinalState["constraint_optimizer"].(float64), 0.0001)
	assert.Equal(t, true, result2.FinalState["degraded_allocation"])
	assert.Equal(t, false, result2.FinalState["optimal_allocation"])
}

// alternatingPairDoc builds two condition nodes, a := !b and b := !a.
// Seeded with a == b and run under parallel mode's snapshot barrier, both
// flip every pass forever — never reaching a fixed point (spec §8
// scenario 5, "Iteration cap").
func alternatingPairDoc(t *testing.T) *schema.Document {
	return &schema.Document{
		Metadata: schema.Metadata{ID: "flip", Name: "flip", Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes: []schema.Node{
			{ID: "a", Type: schema.NodeCondition, Data: schema.NodeData{Parameters: map[string]json.RawMessage{"logic": rawJSON(t, "!b")}}},
			{ID: "b", Type: schema.NodeCondition, Data: schema.NodeData{Parameters: map[string]json.RawMessage{"logic": rawJSON(t, "!a")}}},
		},
	}
}

func TestExecuteIterationCapScenario(t *testing.T) {
	// Spec §8 scenario 5. (true,false) is a fixed point of a:=!b, b:=!a,
	// and sequential mode's live writes converge from any seed, so this
	// seeds (true,true) and uses the snapshot barrier of parallel mode:
	// every pass turns (x,x) into (!x,!x), alternating forever.
	doc := alternatingPairDoc(t)
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)

	result := Execute(g, map[string]any{"a": true, "b": true}, &Config{MaxIterations: 5, Mode: schema.ModeParallel}, nil)
	require.False(t, result.Success)
	assert.Equal(t, 5, result.Metrics.IterationsCompleted)
	assert.GreaterOrEqual(t, len(result.Trace), 5)

	foundInfiniteLoop := false
	for _, e := range result.Errors {
		if e.Kind == "infinite_loop" {
			foundInfiniteLoop = true
		}
	}
	assert.True(t, foundInfiniteLoop)
}

func sampleDAG(t *testing.T) *schema.Document {
	nodes := make([]schema.Node, 0, 12)
	relations := make([]schema.Relation, 0, 11)
	nodes = append(nodes, schema.Node{ID: "root", Type: schema.NodeConcept, Data: schema.NodeData{Value: rawJSON(t, 5.0)}})
	for i := 0; i < 11; i++ {
		id := string(rune('a' + i))
		nodes = append(nodes, schema.Node{ID: id, Type: schema.NodeConcept})
		source := "root"
		if i > 0 {
			source = string(rune('a' + i - 1))
		}
		relations = append(relations, schema.Relation{ID: "r" + id, Type: schema.RelationCauses, Source: source, Target: id, Strength: floatPtr(1.0)})
	}
	return &schema.Document{
		Metadata:  schema.Metadata{ID: "dag", Name: "dag", Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes:     nodes,
		Relations: relations,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestExecuteParallelDeterminism(t *testing.T) {
	// Spec §8 scenario 6.
	doc := sampleDAG(t)
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)

	run1 := Execute(g, nil, &Config{Mode: schema.ModeParallel}, nil)
	run2 := Execute(g, nil, &Config{Mode: schema.ModeParallel}, nil)
	require.True(t, run1.Success)
	require.True(t, run2.Success)
	assert.Equal(t, run1.FinalState, run2.FinalState)
	assert.Equal(t, len(run1.Trace), len(run2.Trace))
}

func TestExecuteSequentialAndParallelAgreeOnCycleFreeDAG(t *testing.T) {
	// Spec §8 universal invariant: cycle-free sequential/parallel agreement.
	doc := sampleDAG(t)
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)

	seqResult := Execute(g, nil, &Config{Mode: schema.ModeSequential}, nil)
	parResult := Execute(g, nil, &Config{Mode: schema.ModeParallel}, nil)
	require.True(t, seqResult.Success)
	require.True(t, parResult.Success)
	assert.Equal(t, seqResult.FinalState, parResult.FinalState)
}

func TestExecuteSingleNodeDocumentOnePass(t *testing.T) {
	// Spec §8 boundary behavior.
	doc := &schema.Document{
		Metadata: schema.Metadata{ID: "solo", Name: "solo", Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes:    []schema.Node{{ID: "only", Type: schema.NodeConcept, Data: schema.NodeData{Value: rawJSON(t, 42.0)}}},
	}
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, g.EntryPoints)
	assert.Equal(t, []string{"only"}, g.ExitPoints)

	result := Execute(g, nil, nil, nil)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Metrics.IterationsCompleted)
	assert.Equal(t, 42.0, result.FinalState["only"])
}

func TestExecuteTraceStepsAreMonotonic(t *testing.T) {
	doc := sampleDAG(t)
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)

	result := Execute(g, nil, &Config{Mode: schema.ModeSequential}, nil)
	require.True(t, result.Success)
	for i, step := range result.Trace {
		assert.Equal(t, i+1, step.Step)
	}
}

func TestExecuteTimeoutProducesExecutionTimeout(t *testing.T) {
	doc := alternatingPairDoc(t)
	g, err := graphcompile.Compile(doc)
	require.NoError(t, err)

	result := Execute(g, map[string]any{"a": true, "b": true}, &Config{MaxIterations: 1_000_000, TimeoutMS: 1, Mode: schema.ModeParallel}, nil)
	require.False(t, result.Success)
	found := false
	for _, e := range result.Errors {
		if e.Kind == "execution_timeout" {
			found = true
		}
	}
	assert.True(t, found)
}
