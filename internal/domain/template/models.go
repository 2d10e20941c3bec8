package template

type EvaluationType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Sequence int    `json:"sequence"`
	Active   bool   `json:"active"`
}

type OKRTemplate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	Active       bool   `json:"active"`
}

type NineboxTemplate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	Active       bool   `json:"active"`
}

// TemplateLine is one key result (OKR) or criteria line (9-box) of a
// template. Section is always "okr" for OKR templates; "performance"
// or "potential" for 9-box templates.
type TemplateLine struct {
	ID          string  `json:"id"`
	TemplateID  string  `json:"templateId"`
	Section     string  `json:"section"`
	LineType    string  `json:"lineType"`
	Sequence    int     `json:"sequence"`
	Objective   string  `json:"objective"`
	Priority    string  `json:"priority"`
	Metric      string  `json:"metric"`
	TargetValue float64 `json:"targetValue"`
	Weightage   float64 `json:"weightage"`
	TeamID      string  `json:"teamId,omitempty"`
	TeamName    string  `json:"teamName,omitempty"`
}

// Detection is the outcome of template auto-detection for an employee.
type Detection struct {
	TeamID            string `json:"teamId,omitempty"`
	TeamName          string `json:"teamName,omitempty"`
	TemplateType      string `json:"templateType,omitempty"`
	OKRTemplateID     string `json:"okrTemplateId,omitempty"`
	NineboxTemplateID string `json:"nineboxTemplateId,omitempty"`
}
