package appraisal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/directory"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
)

type Service struct {
	Store     *Store
	Templates *template.Service
	Directory *directory.Store
}

func NewService(store *Store, templates *template.Service, dir *directory.Store) *Service {
	return &Service{Store: store, Templates: templates, Directory: dir}
}

type CreateRequest struct {
	EmployeeID       string
	BadgeCode        string
	EvaluationTypeID string
}

// Create starts an appraisal for the employee (resolved from the badge
// code when no employee id is given), auto-detecting the team and
// template from the employee's department the way the appraisal form
// does on employee selection.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Appraisal, error) {
	employeeID := req.EmployeeID
	if employeeID == "" && req.BadgeCode != "" {
		employee, err := s.Directory.EmployeeByBadgeCode(ctx, req.BadgeCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Appraisal{}, fmt.Errorf("badge %q: %w", req.BadgeCode, ErrEmployeeRequired)
			}
			return Appraisal{}, err
		}
		employeeID = employee.ID
	}
	if employeeID == "" {
		return Appraisal{}, ErrEmployeeRequired
	}

	detection, err := s.Templates.Detect(ctx, employeeID)
	if err != nil {
		return Appraisal{}, err
	}

	a := Appraisal{
		EmployeeID:        employeeID,
		TeamID:            detection.TeamID,
		TeamName:          detection.TeamName,
		TemplateType:      template.TemplateTypeSurvey,
		OKRTemplateID:     detection.OKRTemplateID,
		NineboxTemplateID: detection.NineboxTemplateID,
		EvaluationTypeID:  req.EvaluationTypeID,
		Status:            StatusDraft,
	}
	if detection.TemplateType != "" {
		a.TemplateType = detection.TemplateType
	}

	id, err := s.Store.Create(ctx, a)
	if err != nil {
		return Appraisal{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Appraisal, error) {
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	a.SelectedTemplate, err = s.templateDisplay(ctx, a)
	if err != nil {
		return Appraisal{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, employeeID, status string, limit, offset int) ([]Appraisal, error) {
	return s.Store.List(ctx, employeeID, status, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

func (s *Service) Lines(ctx context.Context, id string) ([]Line, error) {
	if _, err := s.Store.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Store.ListLines(ctx, id)
}

// SelectEmployee switches the appraisal to another employee. Loaded
// criteria are dropped, the loaded flag resets and team/template are
// re-detected for the new employee.
func (s *Service) SelectEmployee(ctx context.Context, id, employeeID string) (Appraisal, error) {
	if employeeID == "" {
		return Appraisal{}, ErrEmployeeRequired
	}
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	if a.Status == StatusCompleted {
		return Appraisal{}, ErrAlreadyCompleted
	}

	detection, err := s.Templates.Detect(ctx, employeeID)
	if err != nil {
		return Appraisal{}, err
	}

	a.EmployeeID = employeeID
	a.TeamID = detection.TeamID
	a.TeamName = detection.TeamName
	a.OKRTemplateID = detection.OKRTemplateID
	a.NineboxTemplateID = detection.NineboxTemplateID
	a.TemplateType = template.TemplateTypeSurvey
	if detection.TemplateType != "" {
		a.TemplateType = detection.TemplateType
	}
	a.CriteriaLoaded = false
	a.FinalScore = 0
	a.Rating = ""
	a.Status = StatusDraft

	if err := s.Store.UpdateSelection(ctx, a, true); err != nil {
		return Appraisal{}, err
	}
	return s.Get(ctx, id)
}

// SelectBadge resolves the badge to its employee and delegates to
// SelectEmployee, mirroring the badge dropdown onchange.
func (s *Service) SelectBadge(ctx context.Context, id, badgeCode string) (Appraisal, error) {
	employee, err := s.Directory.EmployeeByBadgeCode(ctx, badgeCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appraisal{}, fmt.Errorf("badge %q: %w", badgeCode, ErrEmployeeRequired)
		}
		return Appraisal{}, err
	}
	return s.SelectEmployee(ctx, id, employee.ID)
}

// SelectEvaluationType changes the evaluation type and clears loaded
// criteria, since the filtered template rows no longer apply.
func (s *Service) SelectEvaluationType(ctx context.Context, id, evaluationTypeID string) (Appraisal, error) {
	if evaluationTypeID == "" {
		return Appraisal{}, ErrEvaluationTypeRequired
	}
	if _, err := s.Templates.Store.EvaluationTypeCode(ctx, evaluationTypeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appraisal{}, ErrEvaluationTypeRequired
		}
		return Appraisal{}, err
	}

	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	if a.Status == StatusCompleted {
		return Appraisal{}, ErrAlreadyCompleted
	}

	a.EvaluationTypeID = evaluationTypeID
	a.CriteriaLoaded = false
	a.FinalScore = 0
	a.Rating = ""
	a.Status = StatusDraft

	if err := s.Store.UpdateSelection(ctx, a, true); err != nil {
		return Appraisal{}, err
	}
	return s.Get(ctx, id)
}

// SelectTemplate sets the template type and reference. Picking an OKR
// template clears the 9-box selection and vice versa; switching to the
// survey form clears both. Loaded criteria are dropped on any change.
func (s *Service) SelectTemplate(ctx context.Context, id, templateType, templateID string) (Appraisal, error) {
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	if a.Status == StatusCompleted {
		return Appraisal{}, ErrAlreadyCompleted
	}

	switch templateType {
	case template.TemplateTypeSurvey:
		a.OKRTemplateID = ""
		a.NineboxTemplateID = ""
	case template.TemplateTypeOKR:
		if templateID == "" {
			return Appraisal{}, ErrTemplateRequired
		}
		if _, err := s.Templates.Store.GetOKRTemplate(ctx, templateID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Appraisal{}, ErrTemplateRequired
			}
			return Appraisal{}, err
		}
		a.OKRTemplateID = templateID
		a.NineboxTemplateID = ""
	case template.TemplateTypeNinebox:
		if templateID == "" {
			return Appraisal{}, ErrTemplateRequired
		}
		if _, err := s.Templates.Store.GetNineboxTemplate(ctx, templateID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Appraisal{}, ErrTemplateRequired
			}
			return Appraisal{}, err
		}
		a.NineboxTemplateID = templateID
		a.OKRTemplateID = ""
	default:
		return Appraisal{}, fmt.Errorf("unknown template type %q", templateType)
	}

	a.TemplateType = templateType
	a.CriteriaLoaded = false
	a.FinalScore = 0
	a.Rating = ""
	a.Status = StatusDraft

	if err := s.Store.UpdateSelection(ctx, a, true); err != nil {
		return Appraisal{}, err
	}
	return s.Get(ctx, id)
}

// LoadCriteria copies the selected template's rows, filtered by the
// appraisal's evaluation type and detected team, into criteria lines.
// Existing lines are deleted and regenerated; there is no history.
func (s *Service) LoadCriteria(ctx context.Context, id string) ([]Line, error) {
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCompleted {
		return nil, ErrAlreadyCompleted
	}
	if a.EmployeeID == "" {
		return nil, ErrEmployeeRequired
	}
	if a.EvaluationTypeCode == "" {
		return nil, ErrEvaluationTypeRequired
	}

	var templateLines []template.TemplateLine
	switch a.TemplateType {
	case template.TemplateTypeOKR:
		if a.OKRTemplateID == "" {
			return nil, ErrTemplateRequired
		}
		templateLines, err = s.Templates.OKRTemplateLines(ctx, a.OKRTemplateID, a.EvaluationTypeCode, a.TeamID)
	case template.TemplateTypeNinebox:
		if a.NineboxTemplateID == "" {
			return nil, ErrTemplateRequired
		}
		templateLines, err = s.Templates.NineboxTemplateLines(ctx, a.NineboxTemplateID, "", a.EvaluationTypeCode, a.TeamID)
	default:
		return nil, ErrTemplateRequired
	}
	if err != nil {
		return nil, err
	}
	if len(templateLines) == 0 {
		return nil, ErrNoCriteriaMatched
	}

	lines := make([]Line, 0, len(templateLines))
	for _, tl := range templateLines {
		line := Line{
			AppraisalID: id,
			Section:     tl.Section,
			LineType:    tl.LineType,
			Sequence:    tl.Sequence,
			Objective:   tl.Objective,
			Priority:    tl.Priority,
			Metric:      tl.Metric,
			TargetValue: tl.TargetValue,
			Weightage:   tl.Weightage,
			TeamName:    tl.TeamName,
		}
		line.Score()
		lines = append(lines, line)
	}
	if err := ValidateWeightage(lines); err != nil {
		return nil, err
	}

	if err := s.Store.ReplaceLines(ctx, id, lines, StatusInProgress); err != nil {
		return nil, err
	}
	return s.Store.ListLines(ctx, id)
}

// ActualUpdate carries one edited actual value keyed by line id.
type ActualUpdate struct {
	LineID      string  `json:"lineId"`
	ActualValue float64 `json:"actualValue"`
}

// RecordActuals applies edited actual values, rescoring the affected
// lines and the appraisal totals.
func (s *Service) RecordActuals(ctx context.Context, id string, updates []ActualUpdate) (ScoreSummary, error) {
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return ScoreSummary{}, err
	}
	if a.Status == StatusCompleted {
		return ScoreSummary{}, ErrAlreadyCompleted
	}
	if !a.CriteriaLoaded {
		return ScoreSummary{}, ErrCriteriaNotLoaded
	}

	lines, err := s.Store.ListLines(ctx, id)
	if err != nil {
		return ScoreSummary{}, err
	}

	byID := make(map[string]*Line, len(lines))
	for i := range lines {
		byID[lines[i].ID] = &lines[i]
	}

	var changed []Line
	for _, update := range updates {
		line, ok := byID[update.LineID]
		if !ok {
			return ScoreSummary{}, fmt.Errorf("line %s: %w", update.LineID, ErrNotFound)
		}
		line.ActualValue = update.ActualValue
		line.Score()
		changed = append(changed, *line)
	}
	if len(changed) > 0 {
		if err := s.Store.UpdateLineActuals(ctx, id, changed); err != nil {
			return ScoreSummary{}, err
		}
	}

	summary := ComputeScores(lines, a.TemplateType)
	if err := s.Store.UpdateScore(ctx, id, summary.FinalScore, summary.Rating, StatusInProgress); err != nil {
		return ScoreSummary{}, err
	}
	return summary, nil
}

// Score recomputes the totals without changing status.
func (s *Service) Score(ctx context.Context, id string) (ScoreSummary, error) {
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return ScoreSummary{}, err
	}
	if !a.CriteriaLoaded {
		return ScoreSummary{}, ErrCriteriaNotLoaded
	}
	lines, err := s.Store.ListLines(ctx, id)
	if err != nil {
		return ScoreSummary{}, err
	}
	return ComputeScores(lines, a.TemplateType), nil
}

// Finalize computes the final score and rating and completes the
// appraisal. Completed appraisals reject further edits.
func (s *Service) Finalize(ctx context.Context, id string) (Appraisal, error) {
	a, err := s.Store.Get(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	if a.Status == StatusCompleted {
		return Appraisal{}, ErrAlreadyCompleted
	}
	if !a.CriteriaLoaded {
		return Appraisal{}, ErrCriteriaNotLoaded
	}

	lines, err := s.Store.ListLines(ctx, id)
	if err != nil {
		return Appraisal{}, err
	}
	summary := ComputeScores(lines, a.TemplateType)
	if err := s.Store.UpdateScore(ctx, id, summary.FinalScore, summary.Rating, StatusCompleted); err != nil {
		return Appraisal{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) templateDisplay(ctx context.Context, a Appraisal) (string, error) {
	switch a.TemplateType {
	case template.TemplateTypeOKR:
		if a.OKRTemplateID == "" {
			return "", nil
		}
		tpl, err := s.Templates.Store.GetOKRTemplate(ctx, a.OKRTemplateID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", nil
			}
			return "", err
		}
		return "[OKR] " + tpl.Name, nil
	case template.TemplateTypeNinebox:
		if a.NineboxTemplateID == "" {
			return "", nil
		}
		tpl, err := s.Templates.Store.GetNineboxTemplate(ctx, a.NineboxTemplateID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", nil
			}
			return "", err
		}
		return "[9-Box] " + tpl.Name, nil
	case template.TemplateTypeSurvey:
		return "Survey Form", nil
	}
	return "", nil
}
