package appraisal

const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	RatingOutstanding      = "outstanding"
	RatingExceeds          = "exceeds_expectations"
	RatingMeets            = "meets_expectations"
	RatingNeedsImprovement = "needs_improvement"
	RatingUnsatisfactory   = "unsatisfactory"
)
