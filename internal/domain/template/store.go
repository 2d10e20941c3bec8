package template

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEvaluationTypes(ctx context.Context) ([]EvaluationType, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, code, sequence, active
    FROM evaluation_types
    WHERE active = true
    ORDER BY sequence, id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []EvaluationType
	for rows.Next() {
		var et EvaluationType
		if err := rows.Scan(&et.ID, &et.Name, &et.Code, &et.Sequence, &et.Active); err != nil {
			return nil, err
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

func (s *Store) EvaluationTypeCode(ctx context.Context, id string) (string, error) {
	var code string
	if err := s.DB.QueryRow(ctx, "SELECT code FROM evaluation_types WHERE id = $1 AND active = true", id).Scan(&code); err != nil {
		return "", err
	}
	return code, nil
}

func (s *Store) ListOKRTemplates(ctx context.Context, departmentID string) ([]OKRTemplate, error) {
	query := "SELECT id, name, department_id, active FROM okr_templates WHERE active = true"
	args := []any{}
	if departmentID != "" {
		query += " AND department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []OKRTemplate
	for rows.Next() {
		var tpl OKRTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.DepartmentID, &tpl.Active); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (s *Store) ListNineboxTemplates(ctx context.Context, departmentID string) ([]NineboxTemplate, error) {
	query := "SELECT id, name, department_id, active FROM ninebox_templates WHERE active = true"
	args := []any{}
	if departmentID != "" {
		query += " AND department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []NineboxTemplate
	for rows.Next() {
		var tpl NineboxTemplate
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.DepartmentID, &tpl.Active); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

func (s *Store) GetOKRTemplate(ctx context.Context, id string) (OKRTemplate, error) {
	var tpl OKRTemplate
	err := s.DB.QueryRow(ctx, "SELECT id, name, department_id, active FROM okr_templates WHERE id = $1", id).
		Scan(&tpl.ID, &tpl.Name, &tpl.DepartmentID, &tpl.Active)
	if err != nil {
		return OKRTemplate{}, err
	}
	return tpl, nil
}

func (s *Store) GetNineboxTemplate(ctx context.Context, id string) (NineboxTemplate, error) {
	var tpl NineboxTemplate
	err := s.DB.QueryRow(ctx, "SELECT id, name, department_id, active FROM ninebox_templates WHERE id = $1", id).
		Scan(&tpl.ID, &tpl.Name, &tpl.DepartmentID, &tpl.Active)
	if err != nil {
		return NineboxTemplate{}, err
	}
	return tpl, nil
}

// OKRTemplateLines returns the template's key results, optionally
// filtered by line type and team.
func (s *Store) OKRTemplateLines(ctx context.Context, templateID, lineType, teamID string) ([]TemplateLine, error) {
	query := `
    SELECT kr.id, kr.template_id, 'okr', kr.line_type, kr.sequence, kr.objective,
           COALESCE(kr.priority, ''), COALESCE(kr.metric, ''), kr.target_value, kr.weightage,
           COALESCE(kr.team_id::text, ''), COALESCE(t.name, '')
    FROM okr_key_results kr
    LEFT JOIN appraisal_teams t ON t.id = kr.team_id
    WHERE kr.template_id = $1
  `
	args := []any{templateID}
	if lineType != "" {
		args = append(args, lineType)
		query += " AND kr.line_type = $2"
	}
	if teamID != "" {
		args = append(args, teamID)
		query += " AND kr.team_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY kr.sequence, kr.id"
	return s.queryLines(ctx, query, args...)
}

// NineboxTemplateLines returns the template's performance/potential
// lines, optionally filtered by section, line type and team.
func (s *Store) NineboxTemplateLines(ctx context.Context, templateID, section, lineType, teamID string) ([]TemplateLine, error) {
	query := `
    SELECT l.id, l.template_id, l.section, l.line_type, l.sequence, l.objective,
           COALESCE(l.priority, ''), COALESCE(l.metric, ''), l.target_value, l.weightage,
           COALESCE(l.team_id::text, ''), COALESCE(t.name, '')
    FROM ninebox_lines l
    LEFT JOIN appraisal_teams t ON t.id = l.team_id
    WHERE l.template_id = $1
  `
	args := []any{templateID}
	if section != "" {
		args = append(args, section)
		query += " AND l.section = $" + strconv.Itoa(len(args))
	}
	if lineType != "" {
		args = append(args, lineType)
		query += " AND l.line_type = $" + strconv.Itoa(len(args))
	}
	if teamID != "" {
		args = append(args, teamID)
		query += " AND l.team_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY l.section, l.sequence, l.id"
	return s.queryLines(ctx, query, args...)
}

func (s *Store) queryLines(ctx context.Context, query string, args ...any) ([]TemplateLine, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []TemplateLine
	for rows.Next() {
		var line TemplateLine
		if err := rows.Scan(&line.ID, &line.TemplateID, &line.Section, &line.LineType, &line.Sequence,
			&line.Objective, &line.Priority, &line.Metric, &line.TargetValue, &line.Weightage,
			&line.TeamID, &line.TeamName); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// OKRTemplateIDForTeam finds an active OKR template in the department
// whose key results reference the team.
func (s *Store) OKRTemplateIDForTeam(ctx context.Context, departmentID, teamID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT tpl.id
    FROM okr_templates tpl
    WHERE tpl.department_id = $1 AND tpl.active = true
      AND EXISTS (SELECT 1 FROM okr_key_results kr WHERE kr.template_id = tpl.id AND kr.team_id = $2)
    ORDER BY tpl.name
    LIMIT 1
  `, departmentID, teamID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// NineboxTemplateIDForTeam finds an active 9-box template in the
// department with a performance or potential line for the team.
func (s *Store) NineboxTemplateIDForTeam(ctx context.Context, departmentID, teamID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT tpl.id
    FROM ninebox_templates tpl
    WHERE tpl.department_id = $1 AND tpl.active = true
      AND EXISTS (SELECT 1 FROM ninebox_lines l WHERE l.template_id = tpl.id AND l.team_id = $2)
    ORDER BY tpl.name
    LIMIT 1
  `, departmentID, teamID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// TeamInDepartment picks the first of the employee's teams that belongs
// to the department.
func (s *Store) TeamInDepartment(ctx context.Context, teamIDs []string, departmentID string) (string, string, error) {
	if len(teamIDs) == 0 || departmentID == "" {
		return "", "", nil
	}
	var id, name string
	err := s.DB.QueryRow(ctx, `
    SELECT id, name
    FROM appraisal_teams
    WHERE id = ANY($1) AND department_id = $2
    ORDER BY name
    LIMIT 1
  `, teamIDs, departmentID).Scan(&id, &name)
	if err != nil {
		return "", "", err
	}
	return id, name, nil
}
