package graphcompile

import (
	"testing"

	"github.com/cogform/cogform/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strengthPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool           { return &v }

func sampleDoc() *schema.Document {
	return &schema.Document{
		Metadata: schema.Metadata{ID: "sample", Name: "Sample", Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes: []schema.Node{
			{ID: "a", Type: schema.NodeConcept, Label: "A"},
			{ID: "b", Type: schema.NodeConcept, Label: "B"},
			{ID: "c", Type: schema.NodeAction, Label: "C"},
		},
		Relations: []schema.Relation{
			{ID: "r1", Type: schema.RelationCauses, Source: "a", Target: "b", Strength: strengthPtr(0.4)},
			{ID: "r2", Type: schema.RelationCauses, Source: "a", Target: "c", Strength: strengthPtr(0.9)},
		},
	}
}

func TestCompileFillsDefaults(t *testing.T) {
	g, err := Compile(sampleDoc())
	require.NoError(t, err)

	n, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, schema.DefaultConfidence, *n.Data.Confidence)
	assert.Equal(t, schema.DefaultWeight, *n.Data.Weight)
	assert.Equal(t, schema.StateActive, n.Data.State)

	r, ok := g.Relation("r1")
	require.True(t, ok)
	require.NotNil(t, r.Bidirectional)
	assert.False(t, *r.Bidirectional)
}

func TestCompileDoesNotMutateInput(t *testing.T) {
	doc := sampleDoc()
	_, err := Compile(doc)
	require.NoError(t, err)
	assert.Nil(t, doc.Nodes[0].Data.Confidence, "Compile must not mutate the caller's document")
}

func TestCompileInfersEntryExit(t *testing.T) {
	g, err := Compile(sampleDoc())
	require.NoError(t, err)
	assert.Contains(t, g.EntryPoints, "a")
	assert.Contains(t, g.ExitPoints, "b")
	assert.Contains(t, g.ExitPoints, "c")
}

func TestCompileComplexity(t *testing.T) {
	g, err := Compile(sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, 1, g.Complexity.MaxDepth)
	assert.Equal(t, 0, g.Complexity.CycleCount)
	assert.InDelta(t, 2.0, g.Complexity.AvgBranching, 0.0001)
}

func TestCompileExcludesContainsFromCausalAdjacency(t *testing.T) {
	doc := sampleDoc()
	doc.Relations = append(doc.Relations, schema.Relation{ID: "r3", Type: schema.RelationContains, Source: "b", Target: "c"})
	g, err := Compile(doc)
	require.NoError(t, err)

	assert.Contains(t, g.Successors("b"), "c", "full adjacency still includes contains")
	assert.Empty(t, g.OutgoingCausal("b"), "causal adjacency must exclude contains")
}

func TestOptimizeSpeedSortsByDescendingStrength(t *testing.T) {
	g, err := Compile(sampleDoc())
	require.NoError(t, err)

	opt := Optimize(g, OptimizeSpeed)
	require.Equal(t, []string{"c", "b"}, opt.Successors("a"), "c (strength 0.9) must sort before b (strength 0.4)")
	// original graph is untouched
	assert.Equal(t, []string{"b", "c"}, g.Successors("a"))
}

func TestOptimizeMemoryStripsDefaults(t *testing.T) {
	g, err := Compile(sampleDoc())
	require.NoError(t, err)

	opt := Optimize(g, OptimizeMemory)
	n, _ := opt.Node("a")
	assert.Nil(t, n.Data.Confidence)
	assert.Nil(t, n.Data.Weight)
	assert.Equal(t, schema.NodeState(""), n.Data.State)

	r, _ := opt.Relation("r1")
	assert.NotNil(t, r.Strength, "non-default strength 0.4 must survive stripping")
}

func TestOptimizeBalancedExemptsConditionAndFormulaConfidence(t *testing.T) {
	doc := sampleDoc()
	doc.Nodes = append(doc.Nodes, schema.Node{ID: "cond", Type: schema.NodeCondition})
	g, err := Compile(doc)
	require.NoError(t, err)

	opt := Optimize(g, OptimizeBalanced)
	plain, _ := opt.Node("a")
	cond, _ := opt.Node("cond")
	assert.Nil(t, plain.Data.Confidence)
	assert.NotNil(t, cond.Data.Confidence)
}

func TestOptimizeIsIdempotent(t *testing.T) {
	g, err := Compile(sampleDoc())
	require.NoError(t, err)

	for _, mode := range []string{OptimizeSpeed, OptimizeMemory, OptimizeBalanced} {
		once := Optimize(g, mode)
		twice := Optimize(once, mode)
		assert.Equal(t, once.Successors("a"), twice.Successors("a"), "mode %s", mode)
		onceNode, _ := once.Node("a")
		twiceNode, _ := twice.Node("a")
		assert.Equal(t, onceNode.Data.Confidence, twiceNode.Data.Confidence, "mode %s", mode)
	}
}

func TestOptimizeWritesExtensionTag(t *testing.T) {
	g, err := Compile(sampleDoc())
	require.NoError(t, err)
	opt := Optimize(g, OptimizeSpeed)
	require.NotNil(t, opt.Optimization)
	assert.Equal(t, OptimizeSpeed, opt.Optimization.Type)
	assert.True(t, opt.Optimization.Applied)
	assert.NotEmpty(t, opt.Metadata.Extensions)
}

func TestCompileBidirectionalAddsBothDirections(t *testing.T) {
	doc := &schema.Document{
		Metadata: schema.Metadata{ID: "bidi", Name: "Bidi", Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes: []schema.Node{
			{ID: "x", Type: schema.NodeConcept},
			{ID: "y", Type: schema.NodeConcept},
		},
		Relations: []schema.Relation{
			{ID: "r1", Type: schema.RelationInfluences, Source: "x", Target: "y", Bidirectional: boolPtr(true)},
		},
	}
	g, err := Compile(doc)
	require.NoError(t, err)
	assert.Contains(t, g.Successors("x"), "y")
	assert.Contains(t, g.Successors("y"), "x")
	assert.Contains(t, g.OutgoingCausal("y"), "x")
}
