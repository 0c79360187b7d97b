package condeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstituteAndEvaluate(t *testing.T) {
	state := map[string]bool{"a": true, "b": false}
	substituted, err := Substitute("a & !b", []string{"a", "b"}, func(id string) bool { return state[id] })
	require.NoError(t, err)

	result, err := Evaluate(substituted)
	require.NoError(t, err)
	assert.True(t, result)
}

func TestSubstituteDoesNotMatchIdentifierPrefix(t *testing.T) {
	state := map[string]bool{"a": true, "ab": false}
	substituted, err := Substitute("ab", []string{"a", "ab"}, func(id string) bool { return state[id] })
	require.NoError(t, err)
	result, err := Evaluate(substituted)
	require.NoError(t, err)
	assert.False(t, result)
}

func TestEvaluateOperatorPrecedence(t *testing.T) {
	result, err := Evaluate("false | true & true")
	require.NoError(t, err)
	assert.True(t, result)
}

func TestSubstituteRejectsGarbage(t *testing.T) {
	_, err := Substitute("a; DROP", []string{"a"}, func(string) bool { return true })
	require.Error(t, err)
}
