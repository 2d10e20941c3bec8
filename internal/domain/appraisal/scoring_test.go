package appraisal

import (
	"math"
	"testing"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAchievement(t *testing.T) {
	cases := []struct {
		name           string
		actual, target float64
		want           float64
	}{
		{"on target", 10, 10, 100},
		{"half", 5, 10, 50},
		{"over target", 15, 10, 150},
		{"zero target", 5, 0, 0},
		{"negative target", 5, -3, 0},
		{"zero actual", 0, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Achievement(tc.actual, tc.target); !almostEqual(got, tc.want) {
				t.Fatalf("Achievement(%v, %v) = %v, want %v", tc.actual, tc.target, got, tc.want)
			}
		})
	}
}

func TestWeightedScore(t *testing.T) {
	if got := WeightedScore(50, 40); !almostEqual(got, 20) {
		t.Fatalf("expected 20, got %v", got)
	}
	if got := WeightedScore(0, 40); !almostEqual(got, 0) {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := WeightedScore(120, 25); !almostEqual(got, 30) {
		t.Fatalf("expected 30, got %v", got)
	}
}

func TestLineScore(t *testing.T) {
	line := Line{TargetValue: 10, ActualValue: 8, Weightage: 50}
	line.Score()
	if !almostEqual(line.Achievement, 80) {
		t.Fatalf("expected achievement 80, got %v", line.Achievement)
	}
	if !almostEqual(line.WeightedScore, 40) {
		t.Fatalf("expected weighted score 40, got %v", line.WeightedScore)
	}
}

func TestComputeScoresOKR(t *testing.T) {
	lines := []Line{
		{Section: template.SectionOKR, TargetValue: 10, ActualValue: 10, Weightage: 60},
		{Section: template.SectionOKR, TargetValue: 10, ActualValue: 5, Weightage: 40},
	}
	summary := ComputeScores(lines, template.TemplateTypeOKR)
	if !almostEqual(summary.OKRTotal, 80) {
		t.Fatalf("expected okr total 80, got %v", summary.OKRTotal)
	}
	if !almostEqual(summary.FinalScore, 80) {
		t.Fatalf("expected final score 80, got %v", summary.FinalScore)
	}
	if summary.Rating != RatingExceeds {
		t.Fatalf("expected %s, got %s", RatingExceeds, summary.Rating)
	}
}

func TestComputeScoresNinebox(t *testing.T) {
	lines := []Line{
		{Section: template.SectionPerformance, TargetValue: 100, ActualValue: 100, Weightage: 100},
		{Section: template.SectionPotential, TargetValue: 100, ActualValue: 50, Weightage: 100},
	}
	summary := ComputeScores(lines, template.TemplateTypeNinebox)
	if !almostEqual(summary.PerformanceTotal, 100) || !almostEqual(summary.PotentialTotal, 50) {
		t.Fatalf("unexpected section totals: %+v", summary)
	}
	if !almostEqual(summary.FinalScore, 75) {
		t.Fatalf("expected final score 75, got %v", summary.FinalScore)
	}
	if summary.Rating != RatingExceeds {
		t.Fatalf("expected %s, got %s", RatingExceeds, summary.Rating)
	}
}

func TestComputeScoresUpdatesLines(t *testing.T) {
	lines := []Line{{Section: template.SectionOKR, TargetValue: 4, ActualValue: 2, Weightage: 50}}
	ComputeScores(lines, template.TemplateTypeOKR)
	if !almostEqual(lines[0].Achievement, 50) || !almostEqual(lines[0].WeightedScore, 25) {
		t.Fatalf("line not rescored: %+v", lines[0])
	}
}

func TestRatingBandsAreContiguous(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, RatingOutstanding},
		{90, RatingOutstanding},
		{89.999, RatingExceeds},
		{75, RatingExceeds},
		{74.999, RatingMeets},
		{60, RatingMeets},
		{59.999, RatingNeedsImprovement},
		{40, RatingNeedsImprovement},
		{39.999, RatingUnsatisfactory},
		{0, RatingUnsatisfactory},
	}
	for _, tc := range cases {
		if got := Rating(tc.score); got != tc.want {
			t.Fatalf("Rating(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestRatingMonotonic(t *testing.T) {
	order := map[string]int{
		RatingUnsatisfactory:   0,
		RatingNeedsImprovement: 1,
		RatingMeets:            2,
		RatingExceeds:          3,
		RatingOutstanding:      4,
	}
	prev := -1
	for score := 0.0; score <= 100; score += 0.5 {
		rank := order[Rating(score)]
		if rank < prev {
			t.Fatalf("rating rank decreased at score %v", score)
		}
		prev = rank
	}
}

func TestValidateWeightage(t *testing.T) {
	if err := ValidateWeightage([]Line{{Weightage: 0}, {Weightage: 100}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateWeightage([]Line{{Weightage: -1}}); err != ErrWeightageOutOfRange {
		t.Fatalf("expected ErrWeightageOutOfRange, got %v", err)
	}
	if err := ValidateWeightage([]Line{{Weightage: 101}}); err != ErrWeightageOutOfRange {
		t.Fatalf("expected ErrWeightageOutOfRange, got %v", err)
	}
}
