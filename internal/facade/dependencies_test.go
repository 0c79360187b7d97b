package facade

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cogform/cogform/internal/remote"
	"github.com/cogform/cogform/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDependenciesFetchesAndCaches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"metadata":{"id":"dep-a","name":"dep-a","version":"1.0.0","created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"},"nodes":[{"id":"only","type":"concept","data":{}}],"relations":[]}`))
	}))
	defer srv.Close()

	f := New(nil).WithFetcher(remote.New(srv.URL))

	doc := singleNodeDoc("root")
	doc.Metadata.Dependencies = []schema.DependencyRef{{ID: "dep-a", Version: "1.0.0"}}
	_, result, err := f.Compile(doc, "")
	require.NoError(t, err)
	require.True(t, result.Valid)

	resolved, err := f.ResolveDependencies(context.Background(), "root")
	require.NoError(t, err)
	assert.Equal(t, []string{"dep-a"}, resolved)

	_, ok := f.Graph("dep-a")
	assert.True(t, ok)

	// Calling again resolves nothing new since dep-a is now cached.
	resolved, err = f.ResolveDependencies(context.Background(), "root")
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveDependenciesWithoutFetcher(t *testing.T) {
	f := New(nil)
	doc := singleNodeDoc("root2")
	_, _, err := f.Compile(doc, "")
	require.NoError(t, err)

	_, err = f.ResolveDependencies(context.Background(), "root2")
	assert.Error(t, err)
}
