// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchindex

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func indexedPaper(id string) types.AnalyzedPaper {
	return types.AnalyzedPaper{
		ID:        id,
		Title:     "Efficient Retrieval for Long Contexts",
		Summary:   "一种长上下文检索方法。",
		Tags:      []string{"retrieval", "long-context"},
		Authors:   []string{"Alice Chen", "Bob Li"},
		Published: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		Category:  "llm",
		Score:     8,
	}
}

func TestBuildProjectsFields(t *testing.T) {
	entries := Build([]types.AnalyzedPaper{indexedPaper("2601.00001")})
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.ID != "2601.00001" {
		t.Errorf("ID = %q", e.ID)
	}
	if e.Authors != "Alice Chen, Bob Li" {
		t.Errorf("Authors = %q", e.Authors)
	}
	if e.Date != "2026-01-15" {
		t.Errorf("Date = %q", e.Date)
	}
	if e.Category != "llm" || e.Score != 8 {
		t.Errorf("Category/Score = %q/%d", e.Category, e.Score)
	}
}

func TestBuildTruncatesAuthors(t *testing.T) {
	p := indexedPaper("2601.00002")
	p.Authors = []string{"A One", "B Two", "C Three", "D Four", "E Five"}
	entries := Build([]types.AnalyzedPaper{p})
	if got := entries[0].Authors; got != "A One, B Two, C Three" {
		t.Errorf("Authors = %q, want first three", got)
	}
}

func TestBuildPreservesOrder(t *testing.T) {
	corpus := []types.AnalyzedPaper{
		indexedPaper("2601.00003"),
		indexedPaper("2601.00001"),
		indexedPaper("2601.00002"),
	}
	entries := Build(corpus)
	for i, want := range []string{"2601.00003", "2601.00001", "2601.00002"} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, want)
		}
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	entries := Build(nil)
	if entries == nil || len(entries) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", entries)
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "search_index.json")
	entries := Build([]types.AnalyzedPaper{indexedPaper("2601.00001")})
	if err := Write(entries, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2601.00001" || got[0].Summary != entries[0].Summary {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
