// Package remote fetches cross-document dependencies (spec §3
// `metadata.dependencies`, an id+version pin) over HTTP when a
// referenced document isn't already cached locally. It is grounded on
// the teacher's `modules/http_client` runner (a stateless request
// handler built on a shared, configurable client) generalized from a
// single-request runner into a document-shaped fetch, using
// `resty.dev/v3` — already present in the teacher's own dependency
// graph, if only indirectly — for the request/response plumbing
// instead of bare `net/http`.
package remote

import (
	"context"
	"fmt"

	"github.com/cogform/cogform/internal/schema"
	"resty.dev/v3"
)

// Fetcher resolves a DependencyRef to its document body over HTTP.
type Fetcher struct {
	client  *resty.Client
	baseURL string
}

// New builds a Fetcher against baseURL, the registry a deployment points
// its dependency resolution at (e.g. `https://forms.example.com/docs`).
func New(baseURL string) *Fetcher {
	return &Fetcher{client: resty.New(), baseURL: baseURL}
}

// Close releases the underlying client's idle connections.
func (f *Fetcher) Close() error {
	return f.client.Close()
}

// Fetch retrieves and decodes the document a DependencyRef names, at
// `{baseURL}/{id}?version={version}`.
func (f *Fetcher) Fetch(ctx context.Context, ref schema.DependencyRef) (*schema.Document, error) {
	var doc schema.Document
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("version", ref.Version).
		SetResult(&doc).
		Get(fmt.Sprintf("%s/%s", f.baseURL, ref.ID))
	if err != nil {
		return nil, fmt.Errorf("remote: fetch dependency %s@%s: %w", ref.ID, ref.Version, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote: dependency %s@%s: server returned %s", ref.ID, ref.Version, resp.Status())
	}
	return &doc, nil
}

// FetchAll resolves every dependency in refs, stopping at the first
// failure.
func (f *Fetcher) FetchAll(ctx context.Context, refs []schema.DependencyRef) (map[string]*schema.Document, error) {
	docs := make(map[string]*schema.Document, len(refs))
	for _, ref := range refs {
		doc, err := f.Fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		docs[ref.ID] = doc
	}
	return docs, nil
}
