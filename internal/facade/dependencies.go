package facade

import (
	"context"
	"fmt"

	"github.com/cogform/cogform/internal/remote"
)

// WithFetcher attaches a dependency fetcher: ResolveDependencies can then
// pull in any `metadata.dependencies` entry not already cached.
func (f *Facade) WithFetcher(fetcher *remote.Fetcher) *Facade {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetcher = fetcher
	return f
}

// ResolveDependencies fetches, compiles, and caches every dependency of
// the document cached under id that isn't already cached itself,
// returning the ids it newly resolved.
func (f *Facade) ResolveDependencies(ctx context.Context, id string) ([]string, error) {
	g, ok := f.Graph(id)
	if !ok {
		return nil, fmt.Errorf("facade: no cached graph for %q", id)
	}

	f.mu.RLock()
	fetcher := f.fetcher
	f.mu.RUnlock()
	if fetcher == nil {
		return nil, fmt.Errorf("facade: no dependency fetcher configured")
	}

	var resolved []string
	for _, dep := range g.Metadata.Dependencies {
		if _, cached := f.Graph(dep.ID); cached {
			continue
		}
		doc, err := fetcher.Fetch(ctx, dep)
		if err != nil {
			return resolved, err
		}
		_, result, err := f.Compile(doc, "")
		if err != nil {
			return resolved, err
		}
		if !result.Valid {
			return resolved, fmt.Errorf("facade: dependency %q failed validation", dep.ID)
		}
		resolved = append(resolved, dep.ID)
	}
	return resolved, nil
}
