package template

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/directory"
)

type DirectoryAPI interface {
	GetEmployee(ctx context.Context, employeeID string) (directory.Employee, error)
	EmployeeTeamIDs(ctx context.Context, employeeID string) ([]string, error)
}

type Service struct {
	Store     *Store
	Directory DirectoryAPI
}

func NewService(store *Store, dir DirectoryAPI) *Service {
	return &Service{Store: store, Directory: dir}
}

func (s *Service) ListEvaluationTypes(ctx context.Context) ([]EvaluationType, error) {
	return s.Store.ListEvaluationTypes(ctx)
}

func (s *Service) ListOKRTemplates(ctx context.Context, departmentID string) ([]OKRTemplate, error) {
	return s.Store.ListOKRTemplates(ctx, departmentID)
}

func (s *Service) ListNineboxTemplates(ctx context.Context, departmentID string) ([]NineboxTemplate, error) {
	return s.Store.ListNineboxTemplates(ctx, departmentID)
}

func (s *Service) OKRTemplateLines(ctx context.Context, templateID, lineType, teamID string) ([]TemplateLine, error) {
	return s.Store.OKRTemplateLines(ctx, templateID, lineType, teamID)
}

func (s *Service) NineboxTemplateLines(ctx context.Context, templateID, section, lineType, teamID string) ([]TemplateLine, error) {
	return s.Store.NineboxTemplateLines(ctx, templateID, section, lineType, teamID)
}

// Detect finds the employee's appraisal team within their department
// and the template whose lines reference that team. OKR templates take
// precedence over 9-box. An empty Detection (no error) means nothing
// matched and the caller falls back to the survey form.
func (s *Service) Detect(ctx context.Context, employeeID string) (Detection, error) {
	employee, err := s.Directory.GetEmployee(ctx, employeeID)
	if err != nil {
		return Detection{}, err
	}
	if employee.DepartmentID == "" {
		return Detection{}, nil
	}

	teamIDs, err := s.Directory.EmployeeTeamIDs(ctx, employeeID)
	if err != nil {
		return Detection{}, err
	}
	if len(teamIDs) == 0 {
		return Detection{}, nil
	}

	teamID, teamName, err := s.Store.TeamInDepartment(ctx, teamIDs, employee.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detection{}, nil
		}
		return Detection{}, err
	}
	if teamID == "" {
		return Detection{}, nil
	}

	detection := Detection{TeamID: teamID, TeamName: teamName}

	okrID, err := s.Store.OKRTemplateIDForTeam(ctx, employee.DepartmentID, teamID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Detection{}, err
	}
	if okrID != "" {
		detection.TemplateType = TemplateTypeOKR
		detection.OKRTemplateID = okrID
		return detection, nil
	}

	nineboxID, err := s.Store.NineboxTemplateIDForTeam(ctx, employee.DepartmentID, teamID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Detection{}, err
	}
	if nineboxID != "" {
		detection.TemplateType = TemplateTypeNinebox
		detection.NineboxTemplateID = nineboxID
	}
	return detection, nil
}

// FilterLines keeps the template lines matching the evaluation type and
// team, preserving template order.
func FilterLines(lines []TemplateLine, lineType, teamID string) []TemplateLine {
	var matched []TemplateLine
	for _, line := range lines {
		if lineType != "" && line.LineType != lineType {
			continue
		}
		if teamID != "" && line.TeamID != teamID {
			continue
		}
		matched = append(matched, line)
	}
	return matched
}
