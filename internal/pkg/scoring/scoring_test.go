package scoring

import (
	"sort"
	"testing"
)

func TestDeriveFacetScores(t *testing.T) {
	tests := []struct {
		name           string
		totalScore     int
		turnCount      int
		wantGrammar    int
		wantExpression int
	}{
		{"single perfect turn", 80, 1, 90, 85},
		{"two turns rounded", 140, 2, 80, 75},
		{"rounds half up", 125, 2, 73, 68},
		{"caps at 100", 100, 1, 100, 100},
		{"zero score", 0, 3, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveFacetScores(tt.totalScore, tt.turnCount)
			if err != nil {
				t.Fatalf("DeriveFacetScores(%d, %d): %v", tt.totalScore, tt.turnCount, err)
			}
			if got.Grammar != tt.wantGrammar {
				t.Errorf("grammar = %d, want %d", got.Grammar, tt.wantGrammar)
			}
			if got.Expression != tt.wantExpression {
				t.Errorf("expression = %d, want %d", got.Expression, tt.wantExpression)
			}
		})
	}
}

func TestDeriveFacetScoresRejectsZeroTurns(t *testing.T) {
	if _, err := DeriveFacetScores(100, 0); err == nil {
		t.Error("expected error for zero turns")
	}
	if _, err := DeriveFacetScores(100, -1); err == nil {
		t.Error("expected error for negative turns")
	}
}

func TestOutcomeScore(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"promotion", 100},
		{"success", 100},
		{"excellent", 100},
		{"neutral", 70},
		{"ok", 70},
		{"rejected", 40},
		{"", 40},
		{"Promotion", 40}, // labels are case sensitive
	}

	for _, tt := range tests {
		if got := OutcomeScore(tt.label); got != tt.want {
			t.Errorf("OutcomeScore(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestIsBestOutcome(t *testing.T) {
	if !IsBestOutcome("promotion") {
		t.Error("promotion should be a best outcome")
	}
	if IsBestOutcome("neutral") {
		t.Error("neutral should not be a best outcome")
	}
}

func TestBestOutcomeLabels(t *testing.T) {
	labels := BestOutcomeLabels()
	sort.Strings(labels)

	want := []string{"excellent", "promotion", "success"}
	if len(labels) != len(want) {
		t.Fatalf("got %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("got %v, want %v", labels, want)
		}
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name string
		xs   []int
		want int
	}{
		{"empty", nil, 0},
		{"single", []int{80}, 80},
		{"rounds half up", []int{80, 61}, 71},
		{"mixed", []int{80, 60}, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Average(tt.xs); got != tt.want {
				t.Errorf("Average(%v) = %d, want %d", tt.xs, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{50, 0, 100, 50},
		{-1, 0, 100, 0},
		{101, 0, 100, 100},
		{0, 0, 100, 0},
		{100, 0, 100, 100},
	}

	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
