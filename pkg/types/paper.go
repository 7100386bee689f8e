// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-tracker pipeline:
// raw catalog records, AI analysis results, the merged persisted paper record,
// and the search index projections consumed by the client-side search engine.
package types

import "time"

// RawPaper is a paper record as returned by the arXiv catalog API.
// It is immutable once fetched; the ingestion stage derives everything
// else from it.
type RawPaper struct {
	// ArxivID is the catalog identifier, possibly carrying a version
	// suffix (e.g. "2401.12345v2").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Categories lists the arXiv taxonomy codes (e.g. "cs.CL", "cs.AI").
	Categories []string `json:"categories" yaml:"categories"`

	// PrimaryCategory is the primary arXiv category.
	PrimaryCategory string `json:"primary_category" yaml:"primary_category"`

	// Published is the first publication date.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the date of the most recent revision.
	Updated time.Time `json:"updated" yaml:"updated"`

	// PDFURL is the link to the PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// AbsURL is the link to the abstract page.
	AbsURL string `json:"abs_url" yaml:"abs_url"`
}

// AnalyzedPaper is the merged, persisted record for one logical paper.
// The corpus holds at most one AnalyzedPaper per canonical ID; repeated
// fetches of the same paper (new versions, additional domains) update the
// existing record in place rather than duplicating it.
type AnalyzedPaper struct {
	// ID is the canonical arXiv identifier with any version suffix
	// stripped (e.g. "2401.12345").
	ID string `json:"id" yaml:"id"`

	Title           string    `json:"title" yaml:"title"`
	Abstract        string    `json:"abstract" yaml:"abstract"`
	Authors         []string  `json:"authors" yaml:"authors"`
	Categories      []string  `json:"categories" yaml:"categories"`
	PrimaryCategory string    `json:"primary_category" yaml:"primary_category"`
	Published       time.Time `json:"published" yaml:"published"`
	Updated         time.Time `json:"updated" yaml:"updated"`
	PDFURL          string    `json:"pdf_url" yaml:"pdf_url"`
	AbsURL          string    `json:"abs_url" yaml:"abs_url"`

	// Summary is the AI-generated one-sentence summary.
	Summary string `json:"summary" yaml:"summary"`

	// KeyContributions lists the main contributions identified by the analysis.
	KeyContributions []string `json:"key_contributions" yaml:"key_contributions"`

	// Methodology is a brief description of the paper's approach.
	Methodology string `json:"methodology" yaml:"methodology"`

	// Tags holds technical tags assigned by the analysis. Order is not
	// significant; merges union the tags from all analyses of the paper.
	Tags []string `json:"tags" yaml:"tags"`

	// Category is the assigned output bucket (a configured domain slug).
	Category string `json:"category" yaml:"category"`

	// Score is the paper relevance score in [0,10]. Distinct from the
	// ephemeral search weight computed per query.
	Score int `json:"score" yaml:"score"`

	// ScoreReason explains the assigned relevance score.
	ScoreReason string `json:"score_reason,omitempty" yaml:"score_reason,omitempty"`

	// AnalyzedAt is when the analysis producing this record ran.
	AnalyzedAt time.Time `json:"analyzed_at" yaml:"analyzed_at"`

	// Provider and Model identify the AI backend used for analysis.
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
}

// DailyPapers is the per-day export record: every paper persisted on one
// calendar day, in corpus order.
type DailyPapers struct {
	// Date is the day in YYYY-MM-DD format.
	Date string `json:"date" yaml:"date"`

	Papers []AnalyzedPaper `json:"papers" yaml:"papers"`

	// ExportedAt is when the export file was written.
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
}
