// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest canonicalizes raw catalog records into a stable paper
// identity and normalized searchable fields. Two records that differ only
// in their version suffix normalize to the same canonical ID and are the
// same logical paper everywhere downstream.
package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// ErrMalformedRecord marks a raw paper missing its identity or title.
// Such papers are dropped from the batch; processing continues.
var ErrMalformedRecord = errors.New("malformed record")

// NormalizedFields holds case-folded copies of a paper's searchable text
// alongside the display forms. Matching always runs against the lowercased
// fields; rendering always uses the originals.
type NormalizedFields struct {
	// Title and Abstract keep original casing, with internal newlines
	// collapsed to single spaces.
	Title    string
	Abstract string

	// TitleLower and AbstractLower are the match-side copies.
	TitleLower    string
	AbstractLower string

	// Authors keeps source order; AuthorsDisplay joins them with ", ".
	Authors        []string
	AuthorsDisplay string
}

// CanonicalID strips any trailing version marker from an arXiv identifier:
// "2401.12345v2" becomes "2401.12345". Identifiers without a version
// suffix pass through unchanged.
func CanonicalID(arxivID string) string {
	idx := strings.LastIndex(arxivID, "v")
	if idx <= 0 {
		return arxivID
	}
	suffix := arxivID[idx+1:]
	if suffix == "" {
		return arxivID
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return arxivID
		}
	}
	return arxivID[:idx]
}

// Normalize canonicalizes a raw record. It fails with ErrMalformedRecord
// when the identifier or title is empty; all other fields default to empty
// values rather than failing.
func Normalize(raw types.RawPaper) (string, NormalizedFields, error) {
	id := strings.TrimSpace(raw.ArxivID)
	title := collapseWhitespace(raw.Title)

	if id == "" {
		return "", NormalizedFields{}, fmt.Errorf("%w: empty identifier", ErrMalformedRecord)
	}
	if title == "" {
		return "", NormalizedFields{}, fmt.Errorf("%w: empty title for %s", ErrMalformedRecord, id)
	}

	abstract := collapseWhitespace(raw.Abstract)

	fields := NormalizedFields{
		Title:          title,
		Abstract:       abstract,
		TitleLower:     strings.ToLower(title),
		AbstractLower:  strings.ToLower(abstract),
		Authors:        raw.Authors,
		AuthorsDisplay: strings.Join(raw.Authors, ", "),
	}
	return CanonicalID(id), fields, nil
}

// collapseWhitespace trims the string and folds newlines and runs of
// spaces into single spaces, matching how catalog feeds wrap long titles.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
