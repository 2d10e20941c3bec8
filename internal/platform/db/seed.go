package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensurePermissions(ctx, pool); err != nil {
		return err
	}

	roleIDs, err := ensureRoles(ctx, pool)
	if err != nil {
		return err
	}

	if err := ensureRolePermissions(ctx, pool, roleIDs); err != nil {
		return err
	}

	if err := ensureAdminUser(ctx, pool, roleIDs[auth.RoleHR], cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}

	if err := ensureEvaluationTypes(ctx, pool); err != nil {
		return err
	}

	if cfg.SeedSampleData {
		if err := seedSampleData(ctx, pool); err != nil {
			return err
		}
	}

	return nil
}

func ensurePermissions(ctx context.Context, pool *pgxpool.Pool) error {
	for _, perm := range auth.DefaultPermissions {
		_, err := pool.Exec(ctx, "INSERT INTO permissions (key) VALUES ($1) ON CONFLICT (key) DO NOTHING", perm)
		if err != nil {
			return err
		}
	}
	return nil
}

func ensureRoles(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	roleIDs := map[string]string{}
	for roleName := range auth.RolePermissions {
		var id string
		err := pool.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", roleName).Scan(&id)
		if err == nil {
			roleIDs[roleName] = id
			continue
		}

		err = pool.QueryRow(ctx, "INSERT INTO roles (name) VALUES ($1) RETURNING id", roleName).Scan(&id)
		if err != nil {
			return nil, err
		}
		roleIDs[roleName] = id
	}
	return roleIDs, nil
}

func ensureRolePermissions(ctx context.Context, pool *pgxpool.Pool, roleIDs map[string]string) error {
	permMap := map[string]string{}
	rows, err := pool.Query(ctx, "SELECT id, key FROM permissions")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, key string
		if err := rows.Scan(&id, &key); err != nil {
			return err
		}
		permMap[key] = id
	}

	for roleName, perms := range auth.RolePermissions {
		roleID := roleIDs[roleName]
		for _, permKey := range perms {
			permID, ok := permMap[permKey]
			if !ok {
				return errors.New("permission not found: " + permKey)
			}
			_, err := pool.Exec(ctx, "INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", roleID, permID)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, roleID, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = pool.QueryRow(ctx, "INSERT INTO users (email, password_hash, role_id) VALUES ($1, $2, $3) RETURNING id", email, hash, roleID).Scan(&id)
	if err != nil {
		return err
	}
	return nil
}

// ensureEvaluationTypes seeds the fixed evaluation type vocabulary the
// criteria filter matches template lines against.
func ensureEvaluationTypes(ctx context.Context, pool *pgxpool.Pool) error {
	types := []struct {
		name     string
		code     string
		sequence int
	}{
		{"Department Wise", template.LineTypeDepartment, 1},
		{"Role Wise", template.LineTypeRole, 2},
		{"Common", template.LineTypeCommon, 3},
	}
	for _, et := range types {
		_, err := pool.Exec(ctx, `
      INSERT INTO evaluation_types (name, code, sequence)
      VALUES ($1, $2, $3)
      ON CONFLICT (code) DO NOTHING
    `, et.name, et.code, et.sequence)
		if err != nil {
			return err
		}
	}
	return nil
}

// seedSampleData loads a small demo dataset: a department with one
// appraisal team, badged employees and an OKR plus 9-box template with
// lines for that team.
func seedSampleData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM departments").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var departmentID string
	if err := pool.QueryRow(ctx, "INSERT INTO departments (name) VALUES ('Engineering') RETURNING id").Scan(&departmentID); err != nil {
		return err
	}

	var teamID string
	if err := pool.QueryRow(ctx,
		"INSERT INTO appraisal_teams (name, department_id) VALUES ('Platform', $1) RETURNING id",
		departmentID).Scan(&teamID); err != nil {
		return err
	}

	employees := []struct {
		name  string
		badge string
	}{
		{"Jordan Blake", "EMP001"},
		{"Riley Chen", "EMP002"},
		{"Sam Okafor", "EMP003"},
	}
	for _, emp := range employees {
		var employeeID string
		if err := pool.QueryRow(ctx,
			"INSERT INTO employees (name, badge_code, department_id) VALUES ($1, $2, $3) RETURNING id",
			emp.name, emp.badge, departmentID).Scan(&employeeID); err != nil {
			return err
		}
		if _, err := pool.Exec(ctx,
			"INSERT INTO appraisal_team_members (team_id, employee_id) VALUES ($1, $2)",
			teamID, employeeID); err != nil {
			return err
		}
	}

	var okrTemplateID string
	if err := pool.QueryRow(ctx,
		"INSERT INTO okr_templates (name, department_id) VALUES ('Engineering OKR', $1) RETURNING id",
		departmentID).Scan(&okrTemplateID); err != nil {
		return err
	}

	okrLines := []struct {
		lineType  string
		sequence  int
		objective string
		priority  string
		metric    string
		target    float64
		weightage float64
	}{
		{template.LineTypeDepartment, 10, "Ship the v2 platform", "high", "count", 10, 40},
		{template.LineTypeDepartment, 20, "Reduce p99 latency", "medium", "percentage", 30, 30},
		{template.LineTypeCommon, 30, "Complete security training", "low", "count", 1, 30},
	}
	for _, line := range okrLines {
		if _, err := pool.Exec(ctx, `
      INSERT INTO okr_key_results (template_id, line_type, sequence, objective, priority, metric, target_value, weightage, team_id)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, okrTemplateID, line.lineType, line.sequence, line.objective, line.priority, line.metric, line.target, line.weightage, teamID); err != nil {
			return err
		}
	}

	var nineboxTemplateID string
	if err := pool.QueryRow(ctx,
		"INSERT INTO ninebox_templates (name, department_id) VALUES ('Engineering 9-Box', $1) RETURNING id",
		departmentID).Scan(&nineboxTemplateID); err != nil {
		return err
	}

	nineboxLines := []struct {
		section   string
		lineType  string
		sequence  int
		objective string
		target    float64
		weightage float64
	}{
		{template.SectionPerformance, template.LineTypeDepartment, 10, "Deliver committed roadmap items", 100, 60},
		{template.SectionPerformance, template.LineTypeCommon, 20, "Code review participation", 50, 40},
		{template.SectionPotential, template.LineTypeDepartment, 10, "Leadership readiness", 5, 50},
		{template.SectionPotential, template.LineTypeCommon, 20, "Cross-team collaboration", 5, 50},
	}
	for _, line := range nineboxLines {
		if _, err := pool.Exec(ctx, `
      INSERT INTO ninebox_lines (template_id, section, line_type, sequence, objective, target_value, weightage, team_id)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, nineboxTemplateID, line.section, line.lineType, line.sequence, line.objective, line.target, line.weightage, teamID); err != nil {
			return err
		}
	}

	return nil
}
