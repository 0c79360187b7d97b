package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cogform/cogform/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReturnsDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dep-a", r.URL.Path)
		assert.Equal(t, "1.0.0", r.URL.Query().Get("version"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"metadata":{"id":"dep-a","name":"dep-a","version":"1.0.0","created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"},"nodes":[],"relations":[]}`))
	}))
	defer srv.Close()

	f := New(srv.URL)
	defer f.Close()

	doc, err := f.Fetch(context.Background(), schema.DependencyRef{ID: "dep-a", Version: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "dep-a", doc.Metadata.ID)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(srv.URL)
	defer f.Close()

	_, err := f.Fetch(context.Background(), schema.DependencyRef{ID: "missing", Version: "1.0.0"})
	assert.Error(t, err)
}

func TestFetchAllStopsOnFirstError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(srv.URL)
	defer f.Close()

	refs := []schema.DependencyRef{{ID: "a", Version: "1.0.0"}, {ID: "b", Version: "1.0.0"}}
	_, err := f.FetchAll(context.Background(), refs)
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
