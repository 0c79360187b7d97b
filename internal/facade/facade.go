// Package facade is the single entry point a CLI, an HTTP server, or an
// embedding program drives (spec §4.6, component C6): it wires the
// validator, compiler, and scheduler together behind an id→compiled-graph
// cache and a `{doc-id}_{start-ts}`→result execution history, grounded on
// the teacher's own App constructor-wiring pattern (internal/app/app.go).
package facade

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/nodeeval"
	"github.com/cogform/cogform/internal/remote"
	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/stream"
	"github.com/cogform/cogform/internal/validate"
)

// HistoryEntry is one recorded execution, keyed by document id in the
// facade's history map.
type HistoryEntry struct {
	Key         string           `json:"key"`
	ExecutionID string           `json:"execution_id"`
	DocumentID  string           `json:"document_id"`
	StartedAt   string           `json:"started_at"`
	Simulated   bool             `json:"simulated"`
	Result      execstate.Result `json:"result"`
}

// LoadResult bundles a document's validation outcome with its compiled
// handle, the shape Load returns (spec §4.6 "Load a document from a
// path").
type LoadResult struct {
	DocumentID string          `json:"document_id"`
	Validation validate.Result `json:"validation"`
	Graph      *graphcompile.Graph `json:"graph,omitempty"`
}

// Facade holds every piece of mutable server-side state behind a single
// mutex-guarded owner (spec §5 "single-writer discipline" applied to the
// facade's caches, not just the scheduler's state map).
type Facade struct {
	mu          sync.RWMutex
	graphs      map[string]*graphcompile.Graph
	history     map[string][]HistoryEntry
	registry    nodeeval.Registry
	broadcaster *stream.Broadcaster
	fetcher     *remote.Fetcher
}

// New builds an empty facade. registry is handed to every scheduler run
// this facade drives (spec §9 "Custom node types": no global registry).
func New(registry nodeeval.Registry) *Facade {
	return &Facade{
		graphs:   map[string]*graphcompile.Graph{},
		history:  map[string][]HistoryEntry{},
		registry: registry,
	}
}

// WithBroadcaster attaches a live trace-step broadcaster: every
// subsequent Execute/ExecuteFile/Simulate call publishes its steps to
// watchers of the document id as they are recorded, in addition to
// recording the full trace in history (spec §4.6 live streaming).
func (f *Facade) WithBroadcaster(b *stream.Broadcaster) *Facade {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcaster = b
	return f
}

// Broadcaster returns the attached live trace-step broadcaster, or nil
// if none was configured via WithBroadcaster.
func (f *Facade) Broadcaster() *stream.Broadcaster {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.broadcaster
}

// Load validates and compiles a document read from path, caches the
// compiled graph under its metadata id, and returns both.
func (f *Facade) Load(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("facade: read %s: %w", path, err)
	}
	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &LoadResult{
			Validation: validate.Result{Valid: false, Errors: []validate.Error{{
				Kind: validate.KindSchema, Severity: validate.SeverityError,
				Message: fmt.Sprintf("failed to parse document: %v", err), Path: path,
			}}},
		}, nil
	}
	return f.loadDocument(&doc)
}

func (f *Facade) loadDocument(doc *schema.Document) (*LoadResult, error) {
	result := validate.Validate(doc)
	lr := &LoadResult{DocumentID: doc.Metadata.ID, Validation: result}
	if !result.Valid {
		return lr, nil
	}

	g, err := graphcompile.Compile(doc)
	if err != nil {
		return lr, fmt.Errorf("facade: compile %s: %w", doc.Metadata.ID, err)
	}
	f.mu.Lock()
	f.graphs[doc.Metadata.ID] = g
	f.mu.Unlock()
	lr.Graph = g
	return lr, nil
}

// Validate validates a document object directly, without touching the
// cache.
func (f *Facade) Validate(doc *schema.Document) validate.Result {
	return validate.Validate(doc)
}

// Compile validates and compiles doc, applying an optimization mode if
// mode is non-empty, and caches the result.
func (f *Facade) Compile(doc *schema.Document, mode string) (*graphcompile.Graph, validate.Result, error) {
	result := validate.Validate(doc)
	if !result.Valid {
		return nil, result, nil
	}
	g, err := graphcompile.Compile(doc)
	if err != nil {
		return nil, result, fmt.Errorf("facade: compile %s: %w", doc.Metadata.ID, err)
	}
	if mode != "" {
		g = graphcompile.Optimize(g, mode)
	}
	f.mu.Lock()
	f.graphs[doc.Metadata.ID] = g
	f.mu.Unlock()
	return g, result, nil
}

// Graph fetches a cached compiled graph by document id.
func (f *Facade) Graph(id string) (*graphcompile.Graph, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	g, ok := f.graphs[id]
	return g, ok
}

// GraphIDs lists every currently-cached document id.
func (f *Facade) GraphIDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ids := make([]string, 0, len(f.graphs))
	for id := range f.graphs {
		ids = append(ids, id)
	}
	return ids
}

// ExportGraph renders g in the map-of-objects shape spec §6 requires for
// external consumers (HTTP responses, saved files), since Graph's own
// arenas are unexported to preserve its immutability invariant.
func ExportGraph(g *graphcompile.Graph) map[string]any {
	return exportGraph(g)
}

// SaveGraph writes the cached graph for id to path as JSON (spec §6
// "Graph serialization": maps as objects, key is id).
func (f *Facade) SaveGraph(id, path string) error {
	g, ok := f.Graph(id)
	if !ok {
		return fmt.Errorf("facade: no cached graph for %q", id)
	}
	data, err := json.MarshalIndent(exportGraph(g), "", "  ")
	if err != nil {
		return fmt.Errorf("facade: marshal graph %q: %w", id, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// exportGraph renders a Graph as the map-of-objects shape spec §6
// requires for serialization, rather than the dense-array internal
// layout graphcompile keeps for O(1) lookup.
func exportGraph(g *graphcompile.Graph) map[string]any {
	nodesByID := make(map[string]schema.Node, g.NodeCount())
	for _, n := range g.Nodes() {
		nodesByID[n.ID] = n
	}
	relationsByID := make(map[string]schema.Relation, g.RelationCount())
	for _, r := range g.Relations() {
		relationsByID[r.ID] = r
	}
	return map[string]any{
		"metadata":     g.Metadata,
		"execution":    g.Execution,
		"nodes":        nodesByID,
		"relations":    relationsByID,
		"entry_points": g.EntryPoints,
		"exit_points":  g.ExitPoints,
		"complexity":   g.Complexity,
		"optimization": g.Optimization,
		"compilation": map[string]any{
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"node_count":     g.NodeCount(),
			"relation_count": g.RelationCount(),
			"complexity":     g.Complexity,
		},
	}
}

// historyKey formats the `{doc-id}_{start-ts}` composite key spec §4.6
// specifies for the execution history map, with a uuid suffix breaking
// the ties two executions started within the same nanosecond would
// otherwise produce.
func historyKey(docID string, startedAt time.Time, executionID string) string {
	return fmt.Sprintf("%s_%d_%s", docID, startedAt.UnixNano(), executionID)
}
