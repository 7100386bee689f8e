package ingest

import (
	"errors"
	"testing"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"version suffix stripped", "2401.12345v2", "2401.12345"},
		{"multi-digit version", "2401.12345v12", "2401.12345"},
		{"no version", "2401.12345", "2401.12345"},
		{"old-style id with version", "cs/0112017v1", "cs/0112017"},
		{"trailing v without digits", "2401.12345v", "2401.12345v"},
		{"v followed by letters", "paper-vnext", "paper-vnext"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalID(tt.in); got != tt.want {
				t.Errorf("CanonicalID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalIDSameForAllVersions(t *testing.T) {
	if CanonicalID("2310.06825v1") != CanonicalID("2310.06825v3") {
		t.Error("two versions of the same paper must share a canonical ID")
	}
}

func TestNormalize(t *testing.T) {
	raw := types.RawPaper{
		ArxivID:  "2401.12345v1",
		Title:    "Attention Is\n All You Need",
		Abstract: "We propose  a new\narchitecture.",
		Authors:  []string{"Ashish Vaswani", "Noam Shazeer"},
	}

	id, fields, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if id != "2401.12345" {
		t.Errorf("canonical id = %q, want %q", id, "2401.12345")
	}
	if fields.Title != "Attention Is All You Need" {
		t.Errorf("title = %q, newlines should collapse", fields.Title)
	}
	if fields.TitleLower != "attention is all you need" {
		t.Errorf("lowered title = %q", fields.TitleLower)
	}
	if fields.Abstract != "We propose a new architecture." {
		t.Errorf("abstract = %q", fields.Abstract)
	}
	if fields.AuthorsDisplay != "Ashish Vaswani, Noam Shazeer" {
		t.Errorf("authors display = %q", fields.AuthorsDisplay)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  types.RawPaper
	}{
		{"empty id", types.RawPaper{Title: "Some Title"}},
		{"empty title", types.RawPaper{ArxivID: "2401.12345"}},
		{"whitespace-only title", types.RawPaper{ArxivID: "2401.12345", Title: "  \n "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.raw)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("Normalize() error = %v, want ErrMalformedRecord", err)
			}
		})
	}
}

func TestNormalizeEmptyOptionalFields(t *testing.T) {
	raw := types.RawPaper{ArxivID: "2401.12345", Title: "T"}

	_, fields, err := Normalize(raw)
	if err != nil {
		t.Fatalf("optional fields must not cause failure: %v", err)
	}
	if fields.Abstract != "" || fields.AuthorsDisplay != "" {
		t.Errorf("empty optional fields should stay empty: %+v", fields)
	}
}
