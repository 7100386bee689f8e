// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AnalysisResult is the structured output of one AI analysis call for a
// single paper. The ranker treats it as opaque input apart from the score.
type AnalysisResult struct {
	// Summary is a one-sentence summary of the paper.
	Summary string `json:"summary" yaml:"summary"`

	// KeyContributions lists the main contributions (typically 2-4 points).
	KeyContributions []string `json:"key_contributions" yaml:"key_contributions"`

	// Methodology briefly describes the paper's approach.
	Methodology string `json:"methodology" yaml:"methodology"`

	// Tags are technical tags (e.g. "Transformer", "RAG", "Memory").
	Tags []string `json:"tags" yaml:"tags"`

	// Category is the assigned output bucket; always one of the
	// configured domain slugs after validation.
	Category string `json:"category" yaml:"category"`

	// RelevanceScore is the AI-assigned importance score. Consumers clamp
	// it to [0,10] before use.
	RelevanceScore int `json:"relevance_score" yaml:"relevance_score"`

	// RelevanceReason explains the score.
	RelevanceReason string `json:"relevance_reason" yaml:"relevance_reason"`
}
