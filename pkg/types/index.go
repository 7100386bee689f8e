// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchIndexEntry is the flattened per-paper record the client-side
// search engine binds to. It is always regenerated from the corpus, never
// mutated independently. The json field names are a wire contract with the
// client; changing them breaks deployed pages.
type SearchIndexEntry struct {
	// ID is the canonical paper identifier. A version suffix is tolerated
	// here because the renderer strips it before building links.
	ID string `json:"id"`

	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`

	// Authors is a display string: the first authors joined with ", ".
	Authors string `json:"authors"`

	// Date is the publication date in YYYY-MM-DD format.
	Date string `json:"date"`

	Category string `json:"category"`

	// Score is the persisted paper relevance score in [0,10].
	Score int `json:"score"`
}

// SearchResult pairs an index entry with the search weight computed for
// one query. It lives only for the duration of a single search call.
type SearchResult struct {
	SearchIndexEntry

	// SearchScore is the cumulative field-match weight for the query.
	SearchScore int `json:"search_score"`
}
