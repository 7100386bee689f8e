// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank turns an analysis result into the persisted paper relevance
// score and applies the configured persistence threshold.
package rank

import "github.com/pdiddy/paper-tracker/pkg/types"

// MaxScore bounds the paper relevance scale.
const MaxScore = 10

// Clamp bounds a score to [0,10].
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Ranker computes paper relevance scores and applies the minimum-score
// persistence threshold. Deterministic for identical inputs.
type Ranker struct {
	// MinScore is the persistence threshold; papers scoring below it are
	// dropped rather than stored with a low score.
	MinScore int
}

// Score returns the paper relevance score in [0,10]. The AI-assigned
// score is primary; when the analysis carries no score at all, the
// clamped domain match strength stands in so a strongly-matched paper is
// not silently discarded.
func (r Ranker) Score(analysis types.AnalysisResult, matchStrength int) int {
	if analysis.RelevanceScore == 0 {
		return Clamp(matchStrength)
	}
	return Clamp(analysis.RelevanceScore)
}

// Accepts reports whether a score clears the persistence threshold.
func (r Ranker) Accepts(score int) bool {
	return score >= r.MinScore
}
