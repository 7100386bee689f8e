// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clientsearch

import (
	"errors"
	"sync"

	"github.com/pdiddy/paper-tracker/internal/searchindex"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// ErrIndexUnavailable reports that the index has not been loaded yet.
// Search degrades to empty results instead of surfacing this to the user.
var ErrIndexUnavailable = errors.New("search index unavailable")

// Index holds the loaded search index. It starts uninitialized; Load
// replaces the whole entry set atomically, so readers never observe a
// partially updated index.
type Index struct {
	mu      sync.RWMutex
	entries []types.SearchIndexEntry
	loaded  bool
}

// Load replaces the index contents.
func (ix *Index) Load(entries []types.SearchIndexEntry) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = entries
	ix.loaded = true
}

// LoadFile reads an index artifact from disk and loads it. On failure the
// index keeps its previous state.
func (ix *Index) LoadFile(path string) error {
	entries, err := searchindex.Read(path)
	if err != nil {
		return err
	}
	ix.Load(entries)
	return nil
}

// Entries returns the loaded entry set, or ErrIndexUnavailable before the
// first successful Load.
func (ix *Index) Entries() ([]types.SearchIndexEntry, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if !ix.loaded {
		return nil, ErrIndexUnavailable
	}
	return ix.entries, nil
}

// Search runs a query against the index. An unavailable index yields
// empty results; search never raises user-visible errors.
func (ix *Index) Search(query string) []types.SearchResult {
	entries, err := ix.Entries()
	if err != nil {
		return nil
	}
	return Search(query, entries)
}
