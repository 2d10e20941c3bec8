package directory

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

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (s *Store) ListTeams(ctx context.Context, departmentID string) ([]Team, error) {
	query := "SELECT id, name, department_id FROM appraisal_teams"
	args := []any{}
	if departmentID != "" {
		query += " WHERE department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.DepartmentID); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(user_id::text, ''), name, COALESCE(badge_code, ''), COALESCE(department_id::text, ''), active
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.UserID, &emp.Name, &emp.BadgeCode, &emp.DepartmentID, &emp.Active)
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context, departmentID string, limit, offset int) ([]Employee, error) {
	query := `
    SELECT id, COALESCE(user_id::text, ''), name, COALESCE(badge_code, ''), COALESCE(department_id::text, ''), active
    FROM employees
    WHERE active = true
  `
	args := []any{}
	if departmentID != "" {
		query += " AND department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY name"
	if limit > 0 {
		args = append(args, limit, offset)
		query += " LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.UserID, &emp.Name, &emp.BadgeCode, &emp.DepartmentID, &emp.Active); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// EmployeeTeamIDs returns the appraisal teams the employee belongs to.
func (s *Store) EmployeeTeamIDs(ctx context.Context, employeeID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT team_id FROM appraisal_team_members WHERE employee_id = $1", employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teamIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		teamIDs = append(teamIDs, id)
	}
	return teamIDs, rows.Err()
}

// SearchBadges matches the badge code, the employee name, or the
// combined display name, like the badge dropdown in the appraisal form.
func (s *Store) SearchBadges(ctx context.Context, term string, limit int) ([]Badge, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
    SELECT id, badge_code, name
    FROM employees
    WHERE active = true AND badge_code IS NOT NULL AND badge_code <> ''
  `
	args := []any{}
	if term != "" {
		query += " AND (badge_code ILIKE $1 OR name ILIKE $1 OR badge_code || ' (' || name || ')' ILIKE $1)"
		args = append(args, "%"+term+"%")
	}
	args = append(args, limit)
	query += " ORDER BY badge_code LIMIT $" + strconv.Itoa(len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []Badge
	for rows.Next() {
		var badge Badge
		if err := rows.Scan(&badge.EmployeeID, &badge.BadgeCode, &badge.EmployeeName); err != nil {
			return nil, err
		}
		badge.DisplayName = badge.BadgeCode + " (" + badge.EmployeeName + ")"
		badges = append(badges, badge)
	}
	return badges, rows.Err()
}

func (s *Store) BadgeByEmployee(ctx context.Context, employeeID string) (Badge, error) {
	var badge Badge
	err := s.DB.QueryRow(ctx, `
    SELECT id, badge_code, name
    FROM employees
    WHERE id = $1 AND active = true AND badge_code IS NOT NULL AND badge_code <> ''
  `, employeeID).Scan(&badge.EmployeeID, &badge.BadgeCode, &badge.EmployeeName)
	if err != nil {
		return Badge{}, err
	}
	badge.DisplayName = badge.BadgeCode + " (" + badge.EmployeeName + ")"
	return badge, nil
}

func (s *Store) EmployeeByBadgeCode(ctx context.Context, badgeCode string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, COALESCE(user_id::text, ''), name, COALESCE(badge_code, ''), COALESCE(department_id::text, ''), active
    FROM employees
    WHERE badge_code = $1 AND active = true
  `, badgeCode).Scan(&emp.ID, &emp.UserID, &emp.Name, &emp.BadgeCode, &emp.DepartmentID, &emp.Active)
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

