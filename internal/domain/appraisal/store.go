package appraisal

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const appraisalColumns = `
    a.id, a.employee_id, e.name, COALESCE(e.badge_code, ''),
    COALESCE(a.team_id::text, ''), COALESCE(a.team_name, ''),
    a.template_type, COALESCE(a.okr_template_id::text, ''), COALESCE(a.ninebox_template_id::text, ''),
    COALESCE(a.evaluation_type_id::text, ''), COALESCE(et.code, ''),
    a.criteria_loaded, a.final_score, COALESCE(a.rating, ''), a.status,
    a.created_at, a.updated_at
`

func scanAppraisal(row pgx.Row) (Appraisal, error) {
	var a Appraisal
	err := row.Scan(&a.ID, &a.EmployeeID, &a.EmployeeName, &a.BadgeCode,
		&a.TeamID, &a.TeamName,
		&a.TemplateType, &a.OKRTemplateID, &a.NineboxTemplateID,
		&a.EvaluationTypeID, &a.EvaluationTypeCode,
		&a.CriteriaLoaded, &a.FinalScore, &a.Rating, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Appraisal{}, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, a Appraisal) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO appraisals (employee_id, team_id, team_name, template_type,
                            okr_template_id, ninebox_template_id, evaluation_type_id, status)
    VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, ''), $4,
            NULLIF($5, '')::uuid, NULLIF($6, '')::uuid, NULLIF($7, '')::uuid, $8)
    RETURNING id
  `, a.EmployeeID, a.TeamID, a.TeamName, a.TemplateType,
		a.OKRTemplateID, a.NineboxTemplateID, a.EvaluationTypeID, a.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (Appraisal, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+appraisalColumns+`
    FROM appraisals a
    JOIN employees e ON e.id = a.employee_id
    LEFT JOIN evaluation_types et ON et.id = a.evaluation_type_id
    WHERE a.id = $1
  `, id)
	a, err := scanAppraisal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appraisal{}, ErrNotFound
	}
	return a, err
}

func (s *Store) List(ctx context.Context, employeeID, status string, limit, offset int) ([]Appraisal, error) {
	query := `
    SELECT ` + appraisalColumns + `
    FROM appraisals a
    JOIN employees e ON e.id = a.employee_id
    LEFT JOIN evaluation_types et ON et.id = a.evaluation_type_id
    WHERE 1 = 1
  `
	args := []any{}
	if employeeID != "" {
		args = append(args, employeeID)
		query += " AND a.employee_id = $1"
	}
	if status != "" {
		args = append(args, status)
		query += " AND a.status = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY a.created_at DESC"
	if limit > 0 {
		args = append(args, limit, offset)
		query += " LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appraisals []Appraisal
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, err
		}
		appraisals = append(appraisals, a)
	}
	return appraisals, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM appraisals WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSelection rewrites the selection fields and, when resetLines is
// set, drops the loaded criteria in the same transaction.
func (s *Store) UpdateSelection(ctx context.Context, a Appraisal, resetLines bool) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE appraisals
    SET employee_id = $2,
        team_id = NULLIF($3, '')::uuid,
        team_name = NULLIF($4, ''),
        template_type = $5,
        okr_template_id = NULLIF($6, '')::uuid,
        ninebox_template_id = NULLIF($7, '')::uuid,
        evaluation_type_id = NULLIF($8, '')::uuid,
        criteria_loaded = $9,
        final_score = $10,
        rating = NULLIF($11, ''),
        status = $12,
        updated_at = $13
    WHERE id = $1
  `, a.ID, a.EmployeeID, a.TeamID, a.TeamName, a.TemplateType,
		a.OKRTemplateID, a.NineboxTemplateID, a.EvaluationTypeID,
		a.CriteriaLoaded, a.FinalScore, a.Rating, a.Status, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if resetLines {
		if _, err := tx.Exec(ctx, "DELETE FROM appraisal_lines WHERE appraisal_id = $1", a.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) UpdateScore(ctx context.Context, id string, finalScore float64, rating, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE appraisals
    SET final_score = $2, rating = NULLIF($3, ''), status = $4, updated_at = $5
    WHERE id = $1
  `, id, finalScore, rating, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, "SELECT status, COUNT(1) FROM appraisals GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *Store) AverageFinalScore(ctx context.Context) (float64, error) {
	var avg float64
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(AVG(final_score), 0) FROM appraisals WHERE status = $1", StatusCompleted).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg, nil
}
