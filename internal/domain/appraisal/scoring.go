package appraisal

import (
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

// Achievement returns actual/target as a percentage, or 0 when the
// target is non-positive.
func Achievement(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return actual / target * 100
}

// WeightedScore scales the line's weightage by its achievement.
func WeightedScore(achievement, weightage float64) float64 {
	return achievement / 100 * weightage
}

// Score recomputes the line's derived fields in place.
func (l *Line) Score() {
	l.Achievement = Achievement(l.ActualValue, l.TargetValue)
	l.WeightedScore = WeightedScore(l.Achievement, l.Weightage)
}

// ValidateWeightage enforces the 0..100 bound on every line.
func ValidateWeightage(lines []Line) error {
	for _, line := range lines {
		if line.Weightage < 0 || line.Weightage > 100 {
			return ErrWeightageOutOfRange
		}
	}
	return nil
}

// ComputeScores totals the weighted scores per section and derives the
// final score for the template type: the OKR total for OKR appraisals,
// the average of the performance and potential totals for 9-box.
func ComputeScores(lines []Line, templateType string) ScoreSummary {
	var summary ScoreSummary
	for i := range lines {
		lines[i].Score()
		switch lines[i].Section {
		case template.SectionPerformance:
			summary.PerformanceTotal += lines[i].WeightedScore
		case template.SectionPotential:
			summary.PotentialTotal += lines[i].WeightedScore
		default:
			summary.OKRTotal += lines[i].WeightedScore
		}
	}

	switch templateType {
	case template.TemplateTypeNinebox:
		summary.FinalScore = (summary.PerformanceTotal + summary.PotentialTotal) / 2
	default:
		summary.FinalScore = summary.OKRTotal
	}
	summary.Rating = Rating(summary.FinalScore)
	return summary
}

// Rating maps a 0..100 score to the five qualitative bands.
func Rating(score float64) string {
	switch {
	case score >= 90:
		return RatingOutstanding
	case score >= 75:
		return RatingExceeds
	case score >= 60:
		return RatingMeets
	case score >= 40:
		return RatingNeedsImprovement
	default:
		return RatingUnsatisfactory
	}
}
