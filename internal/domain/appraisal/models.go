package appraisal

import "time"

type Appraisal struct {
	ID                 string    `json:"id"`
	EmployeeID         string    `json:"employeeId"`
	EmployeeName       string    `json:"employeeName,omitempty"`
	BadgeCode          string    `json:"badgeCode,omitempty"`
	TeamID             string    `json:"teamId,omitempty"`
	TeamName           string    `json:"teamName,omitempty"`
	TemplateType       string    `json:"templateType"`
	OKRTemplateID      string    `json:"okrTemplateId,omitempty"`
	NineboxTemplateID  string    `json:"nineboxTemplateId,omitempty"`
	EvaluationTypeID   string    `json:"evaluationTypeId,omitempty"`
	EvaluationTypeCode string    `json:"evaluationTypeCode,omitempty"`
	SelectedTemplate   string    `json:"selectedTemplate,omitempty"`
	CriteriaLoaded     bool      `json:"criteriaLoaded"`
	FinalScore         float64   `json:"finalScore"`
	Rating             string    `json:"rating,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Line is one loaded criteria row. Section is okr, performance or
// potential; LineType is department, role or common. Achievement and
// WeightedScore are derived, recomputed whenever actuals change.
type Line struct {
	ID            string  `json:"id"`
	AppraisalID   string  `json:"appraisalId"`
	Section       string  `json:"section"`
	LineType      string  `json:"lineType"`
	Sequence      int     `json:"sequence"`
	Objective     string  `json:"objective"`
	Priority      string  `json:"priority,omitempty"`
	Metric        string  `json:"metric,omitempty"`
	TargetValue   float64 `json:"targetValue"`
	ActualValue   float64 `json:"actualValue"`
	Weightage     float64 `json:"weightage"`
	TeamName      string  `json:"teamName,omitempty"`
	Achievement   float64 `json:"achievementPercentage"`
	WeightedScore float64 `json:"weightedScore"`
}

// ScoreSummary aggregates the loaded lines of one appraisal.
type ScoreSummary struct {
	OKRTotal         float64 `json:"okrTotal"`
	PerformanceTotal float64 `json:"performanceTotal"`
	PotentialTotal   float64 `json:"potentialTotal"`
	FinalScore       float64 `json:"finalScore"`
	Rating           string  `json:"rating"`
}
