// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clientsearch implements the search engine that runs against a
// built index: weighted multi-field substring scoring plus the
// interactive session state driven by keystrokes.
package clientsearch

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

const (
	weightTitle   = 10
	weightSummary = 5
	weightTag     = 3
	weightAuthors = 2

	// minQueryRunes is a hard threshold: shorter queries return nothing.
	minQueryRunes = 2

	// maxResults caps the rendered list.
	maxResults = 8
)

// Search scores every index entry against the query and returns the top
// matches. Matching is case-insensitive substring containment per field;
// entries with zero cumulative weight are excluded. The result order is
// deterministic: weight descending, then paper relevance score descending,
// then date descending, then id ascending.
func Search(query string, index []types.SearchIndexEntry) []types.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < minQueryRunes {
		return nil
	}

	var results []types.SearchResult
	for _, entry := range index {
		weight := entryWeight(q, entry)
		if weight == 0 {
			continue
		}
		results = append(results, types.SearchResult{
			SearchIndexEntry: entry,
			SearchScore:      weight,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.SearchScore != b.SearchScore {
			return a.SearchScore > b.SearchScore
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.ID < b.ID
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func entryWeight(q string, entry types.SearchIndexEntry) int {
	weight := 0
	if strings.Contains(strings.ToLower(entry.Title), q) {
		weight += weightTitle
	}
	if strings.Contains(strings.ToLower(entry.Summary), q) {
		weight += weightSummary
	}
	// A tag match is awarded once no matter how many tags contain the query.
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			weight += weightTag
			break
		}
	}
	if strings.Contains(strings.ToLower(entry.Authors), q) {
		weight += weightAuthors
	}
	return weight
}
