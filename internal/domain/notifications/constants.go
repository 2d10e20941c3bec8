package notifications

const (
	KindCriteriaLoaded     = "criteria_loaded"
	KindAppraisalCompleted = "appraisal_completed"
)
