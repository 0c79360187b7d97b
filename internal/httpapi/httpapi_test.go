package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cogform/cogform/internal/facade"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	f := facade.New(nil)
	return NewRouter(f, nil, "test")
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()
	w := doRequest(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestValidateEndpointRejectsMalformedBody(t *testing.T) {
	router := newTestRouter()
	w := doRequest(t, router, http.MethodPost, "/api/validate", "not a document")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestCompileThenExecuteThenHistory(t *testing.T) {
	router := newTestRouter()

	doc := map[string]any{
		"metadata": map[string]any{
			"id": "http-doc", "name": "http-doc", "version": "1.0.0",
			"created_at": "2026-01-01T00:00:00Z", "updated_at": "2026-01-01T00:00:00Z",
		},
		"nodes":     []map[string]any{{"id": "only", "type": "concept", "data": map[string]any{}}},
		"relations": []map[string]any{},
	}

	compileResp := doRequest(t, router, http.MethodPost, "/api/compile", map[string]any{"form": doc})
	require.Equal(t, http.StatusOK, compileResp.Code)

	execResp := doRequest(t, router, http.MethodPost, "/api/execute/http-doc", map[string]any{"inputs": map[string]any{"only": 3.0}})
	require.Equal(t, http.StatusOK, execResp.Code)
	var execBody map[string]any
	require.NoError(t, json.Unmarshal(execResp.Body.Bytes(), &execBody))
	data := execBody["data"].(map[string]any)
	assert.Equal(t, true, data["success"])

	historyResp := doRequest(t, router, http.MethodGet, "/api/forms/http-doc/executions", nil)
	assert.Equal(t, http.StatusOK, historyResp.Code)

	clearResp := doRequest(t, router, http.MethodDelete, "/api/forms/http-doc/executions", nil)
	assert.Equal(t, http.StatusOK, clearResp.Code)
}

func TestExecuteByIDUnknownFormReturnsNotFound(t *testing.T) {
	router := newTestRouter()
	w := doRequest(t, router, http.MethodPost, "/api/execute/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateEndpoint(t *testing.T) {
	router := newTestRouter()
	w := doRequest(t, router, http.MethodPost, "/api/forms/template", map[string]any{"id": "tmpl", "name": "Template"})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	metadata := data["metadata"].(map[string]any)
	assert.Equal(t, "tmpl", metadata["id"])
}
