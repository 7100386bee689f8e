// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package searchindex derives the client-side search index from the paper
// corpus. The index is a pure projection: regenerated in full from the
// corpus on every build, never mutated independently.
package searchindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// maxIndexedAuthors bounds the authors display string; the client only
// ever shows the first few names.
const maxIndexedAuthors = 3

// Build projects the corpus into search index entries, preserving the
// corpus's order. Every field the client search engine scores or renders
// is carried; omitting one would break the deployed pages.
func Build(corpus []types.AnalyzedPaper) []types.SearchIndexEntry {
	entries := make([]types.SearchIndexEntry, 0, len(corpus))
	for _, p := range corpus {
		entries = append(entries, entryFor(p))
	}
	return entries
}

func entryFor(p types.AnalyzedPaper) types.SearchIndexEntry {
	authors := p.Authors
	if len(authors) > maxIndexedAuthors {
		authors = authors[:maxIndexedAuthors]
	}

	date := ""
	if !p.Published.IsZero() {
		date = p.Published.Format("2006-01-02")
	}

	return types.SearchIndexEntry{
		ID:       p.ID,
		Title:    p.Title,
		Summary:  p.Summary,
		Tags:     p.Tags,
		Authors:  strings.Join(authors, ", "),
		Date:     date,
		Category: p.Category,
		Score:    p.Score,
	}
}

// Write serializes the index to path as compact JSON, the artifact the
// client pages load.
func Write(entries []types.SearchIndexEntry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling search index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}
	return nil
}

// Read loads a previously written index artifact.
func Read(path string) ([]types.SearchIndexEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search index: %w", err)
	}
	var entries []types.SearchIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing search index: %w", err)
	}
	return entries, nil
}
