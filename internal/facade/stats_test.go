package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAggregatesHistory(t *testing.T) {
	f := New(nil)
	doc := singleNodeDoc("stats-doc")
	_, _, err := f.Compile(doc, "")
	require.NoError(t, err)

	_, err = f.Execute("stats-doc", map[string]any{"only": 1.0}, nil)
	require.NoError(t, err)
	_, err = f.Execute("stats-doc", map[string]any{"only": 2.0}, nil)
	require.NoError(t, err)

	stats := f.Stats()
	assert.Equal(t, 1, stats.LoadedForms)
	assert.Equal(t, 2, stats.TotalExecutions)
	assert.Equal(t, 2, stats.SuccessfulExecutions)
	assert.Equal(t, 0, stats.FailedExecutions)
	assert.GreaterOrEqual(t, stats.AvgExecutionMS, 0.0)
}

func TestStatsEmptyFacade(t *testing.T) {
	f := New(nil)
	stats := f.Stats()
	assert.Equal(t, Stats{}, stats)
}
