package facade

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogform/cogform/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleNodeDoc(id string) *schema.Document {
	return &schema.Document{
		Metadata: schema.Metadata{ID: id, Name: id, Version: "1.0.0", CreatedAt: "2026-01-01T00:00:00Z", UpdatedAt: "2026-01-01T00:00:00Z"},
		Nodes:    []schema.Node{{ID: "only", Type: schema.NodeConcept}},
	}
}

func TestFacadeCompileAndExecute(t *testing.T) {
	f := New(nil)
	doc := singleNodeDoc("single")
	g, result, err := f.Compile(doc, "")
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.NotNil(t, g)

	execResult, err := f.Execute("single", map[string]any{"only": 7.0}, nil)
	require.NoError(t, err)
	assert.True(t, execResult.Success)
	assert.Equal(t, 7.0, execResult.FinalState["only"])

	history := f.History("single")
	require.Len(t, history, 1)
	assert.False(t, history[0].Simulated)
}

func TestFacadeSimulateLeavesCacheIntact(t *testing.T) {
	f := New(nil)
	doc := singleNodeDoc("sim")
	_, _, err := f.Compile(doc, "")
	require.NoError(t, err)

	before, _ := f.Graph("sim")
	_, err = f.Simulate("sim", map[string]any{"only": 1.0}, nil)
	require.NoError(t, err)
	after, _ := f.Graph("sim")
	assert.Same(t, before, after, "simulate must not replace the cached graph")

	history := f.History("sim")
	require.Len(t, history, 1)
	assert.True(t, history[0].Simulated)
}

func TestFacadeLoadFromPath(t *testing.T) {
	f := New(nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.form")
	data := `{"metadata":{"id":"fromfile","name":"fromfile","version":"1.0.0","created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"},"nodes":[{"id":"only","type":"concept","data":{}}],"relations":[]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	lr, err := f.Load(path)
	require.NoError(t, err)
	assert.True(t, lr.Validation.Valid)
	assert.Equal(t, "fromfile", lr.DocumentID)

	_, ok := f.Graph("fromfile")
	assert.True(t, ok)
}

func TestFacadeAnalyzeClassifiesLowComplexity(t *testing.T) {
	f := New(nil)
	analysis, result, err := f.Analyze(singleNodeDoc("analyzed"))
	require.NoError(t, err)
	require.True(t, result.Valid)
	assert.Equal(t, BucketLow, analysis.Bucket)
	assert.Equal(t, 1, analysis.NodeTypes[schema.NodeConcept])
}

func TestFacadeTemplateHasDefaults(t *testing.T) {
	f := New(nil)
	doc := f.Template("tmpl", "Template", "author")
	assert.Equal(t, "tmpl", doc.Metadata.ID)
	assert.Empty(t, doc.Nodes)
	assert.Empty(t, doc.Relations)
	require.NotNil(t, doc.Execution)
	assert.Equal(t, schema.DefaultMode, doc.Execution.Mode)
}

func TestFacadeExportHistoryFormats(t *testing.T) {
	f := New(nil)
	doc := singleNodeDoc("exported")
	_, _, err := f.Compile(doc, "")
	require.NoError(t, err)
	_, err = f.Execute("exported", nil, nil)
	require.NoError(t, err)

	for _, format := range []ExportFormat{ExportJSON, ExportCSV, ExportSummary} {
		data, err := f.ExportHistory("exported", format)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}
