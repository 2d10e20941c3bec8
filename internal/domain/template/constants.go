package template

const (
	TemplateTypeSurvey  = "survey"
	TemplateTypeOKR     = "okr"
	TemplateTypeNinebox = "ninebox"

	SectionOKR         = "okr"
	SectionPerformance = "performance"
	SectionPotential   = "potential"

	LineTypeDepartment = "department"
	LineTypeRole       = "role"
	LineTypeCommon     = "common"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	MetricPercentage = "percentage"
	MetricCount      = "count"
	MetricRating     = "rating"
	MetricScore      = "score"
)

var LineTypes = []string{LineTypeDepartment, LineTypeRole, LineTypeCommon}

var TemplateTypes = []string{TemplateTypeSurvey, TemplateTypeOKR, TemplateTypeNinebox}
