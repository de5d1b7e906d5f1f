// Package scoring holds the pure score derivation rules shared by the
// conversation engine, the grading engine and the stats reader. No I/O.
package scoring

import (
	"fmt"
	"math"
)

// Outcome tier scores for a finalized conversation.
const (
	OutcomeScoreBest    = 100
	OutcomeScoreNeutral = 70
	OutcomeScoreLow     = 40
)

// bestOutcomes is the set of final outcome labels counted as the top tier.
var bestOutcomes = map[string]bool{
	"promotion": true,
	"success":   true,
	"excellent": true,
}

var neutralOutcomes = map[string]bool{
	"neutral": true,
	"ok":      true,
}

// FacetScores holds the derived per-facet scores of a completed session.
type FacetScores struct {
	Grammar    int
	Expression int
}

// DeriveFacetScores maps a session's raw totals to grammar and expression
// scores, both capped at 100:
//
//	avg        = round(totalScore / turnCount)
//	grammar    = min(100, avg + 10)
//	expression = min(100, avg + 5)
//
// turnCount must be at least 1.
func DeriveFacetScores(totalScore, turnCount int) (FacetScores, error) {
	if turnCount < 1 {
		return FacetScores{}, fmt.Errorf("turn count must be at least 1, got %d", turnCount)
	}

	avg := int(math.Round(float64(totalScore) / float64(turnCount)))
	return FacetScores{
		Grammar:    Clamp(avg+10, 0, 100),
		Expression: Clamp(avg+5, 0, 100),
	}, nil
}

// OutcomeScore maps a final outcome label to its fixed tier score.
func OutcomeScore(label string) int {
	switch {
	case bestOutcomes[label]:
		return OutcomeScoreBest
	case neutralOutcomes[label]:
		return OutcomeScoreNeutral
	default:
		return OutcomeScoreLow
	}
}

// IsBestOutcome reports whether the label belongs to the top outcome tier.
func IsBestOutcome(label string) bool {
	return bestOutcomes[label]
}

// BestOutcomeLabels returns the top-tier labels, for IN-filter queries.
func BestOutcomeLabels() []string {
	labels := make([]string, 0, len(bestOutcomes))
	for label := range bestOutcomes {
		labels = append(labels, label)
	}
	return labels
}

// Average returns the rounded mean of xs, or 0 for an empty slice.
func Average(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return int(math.Round(float64(sum) / float64(len(xs))))
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
