package rank

import (
	"testing"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 0}, {0, 0}, {5, 5}, {10, 10}, {11, 10}, {100, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScoreUsesAnalysisScore(t *testing.T) {
	r := Ranker{MinScore: 5}

	if got := r.Score(types.AnalysisResult{RelevanceScore: 8}, 1); got != 8 {
		t.Errorf("Score() = %d, want 8", got)
	}
	if got := r.Score(types.AnalysisResult{RelevanceScore: 14}, 1); got != 10 {
		t.Errorf("Score() = %d, out-of-range AI score must clamp to 10", got)
	}
}

func TestScoreFallsBackToMatchStrength(t *testing.T) {
	r := Ranker{MinScore: 5}

	if got := r.Score(types.AnalysisResult{}, 3); got != 3 {
		t.Errorf("Score() = %d, want match strength 3 when analysis has no score", got)
	}
	if got := r.Score(types.AnalysisResult{}, 25); got != 10 {
		t.Errorf("Score() = %d, fallback must clamp too", got)
	}
}

func TestAccepts(t *testing.T) {
	r := Ranker{MinScore: 5}

	if r.Accepts(4) {
		t.Error("score below threshold must be rejected")
	}
	if !r.Accepts(5) {
		t.Error("score at threshold must be accepted")
	}
	if !r.Accepts(10) {
		t.Error("max score must be accepted")
	}
}

func TestScoreDeterministic(t *testing.T) {
	r := Ranker{MinScore: 0}
	a := types.AnalysisResult{RelevanceScore: 7}

	first := r.Score(a, 2)
	for i := 0; i < 10; i++ {
		if r.Score(a, 2) != first {
			t.Fatal("Score must be deterministic for identical inputs")
		}
	}
}
