package validate

import (
	"encoding/json"
	"testing"

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

func baseMetadata(id string) schema.Metadata {
	return schema.Metadata{
		ID:        id,
		Name:      "Test Document",
		Version:   "1.0.0",
		CreatedAt: "2026-01-01T00:00:00Z",
		UpdatedAt: "2026-01-01T00:00:00Z",
	}
}

func TestValidateSingleNodeDocument(t *testing.T) {
	doc := schema.Document{
		Metadata: baseMetadata("single"),
		Nodes: []schema.Node{
			{ID: "n1", Type: schema.NodeConcept, Label: "N1"},
		},
	}
	result := Validate(&doc)
	require.True(t, result.Valid, "%+v", result.Errors)
	assert.Equal(t, 1, result.Summary.NodeCount)
	assert.Contains(t, result.Summary.EntryPoints, "n1")
	assert.Contains(t, result.Summary.ExitPoints, "n1")
}

func TestValidateDetectsCycle(t *testing.T) {
	doc := schema.Document{
		Metadata: baseMetadata("cyclic"),
		Nodes: []schema.Node{
			{ID: "a", Type: schema.NodeConcept},
			{ID: "b", Type: schema.NodeConcept},
			{ID: "c", Type: schema.NodeConcept},
		},
		Relations: []schema.Relation{
			{ID: "r1", Type: schema.RelationDependsOn, Source: "a", Target: "b"},
			{ID: "r2", Type: schema.RelationDependsOn, Source: "b", Target: "c"},
			{ID: "r3", Type: schema.RelationDependsOn, Source: "c", Target: "a"},
		},
	}
	result := Validate(&doc)
	require.False(t, result.Valid)
	var cycleErrs []Error
	for _, e := range result.Errors {
		if e.Kind == KindCycle {
			cycleErrs = append(cycleErrs, e)
		}
	}
	require.Len(t, cycleErrs, 1)
}

func TestValidateRejectsUnsafeFormula(t *testing.T) {
	doc := schema.Document{
		Metadata: baseMetadata("unsafe"),
		Nodes: []schema.Node{
			{
				ID: "f1", Type: schema.NodeFormula,
				Data: schema.NodeData{Parameters: map[string]json.RawMessage{
					"expression": rawJSON(t, "require('fs').readFileSync('/etc/passwd')"),
				}},
			},
		},
	}
	result := Validate(&doc)
	require.False(t, result.Valid)
	var logicErr *Error
	for i := range result.Errors {
		if result.Errors[i].Kind == KindLogic {
			logicErr = &result.Errors[i]
		}
	}
	require.NotNil(t, logicErr)
}

func TestValidateNonCausalRelationsDoNotCycle(t *testing.T) {
	doc := schema.Document{
		Metadata: baseMetadata("influence-loop"),
		Nodes: []schema.Node{
			{ID: "a", Type: schema.NodeConcept},
			{ID: "b", Type: schema.NodeConcept},
		},
		Relations: []schema.Relation{
			{ID: "r1", Type: schema.RelationInfluences, Source: "a", Target: "b"},
			{ID: "r2", Type: schema.RelationInfluences, Source: "b", Target: "a"},
		},
	}
	result := Validate(&doc)
	assert.True(t, result.Valid, "%+v", result.Errors)
}

func TestValidateDanglingRelationEndpoint(t *testing.T) {
	doc := schema.Document{
		Metadata: baseMetadata("dangling"),
		Nodes: []schema.Node{
			{ID: "a", Type: schema.NodeConcept},
		},
		Relations: []schema.Relation{
			{ID: "r1", Type: schema.RelationCauses, Source: "a", Target: "missing"},
		},
	}
	result := Validate(&doc)
	require.False(t, result.Valid)
	found := false
	for _, e := range result.Errors {
		if e.Kind == KindReference {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateFileMissing(t *testing.T) {
	result := ValidateFile("/no/such/file.form")
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, KindSchema, result.Errors[0].Kind)
}
