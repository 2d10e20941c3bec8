package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) AppraisalCountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM appraisals WHERE status = $1", status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) AverageFinalScore(ctx context.Context) (float64, error) {
	var avg float64
	if err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(AVG(final_score), 0) FROM appraisals WHERE status = 'completed'
  `).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func (s *Store) RatingDistribution(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT rating, COUNT(1)
    FROM appraisals
    WHERE status = 'completed' AND rating <> ''
    GROUP BY rating
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := map[string]int{}
	for rows.Next() {
		var rating string
		var count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		distribution[rating] = count
	}
	return distribution, rows.Err()
}

type DepartmentScore struct {
	DepartmentID   string  `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	Completed      int     `json:"completed"`
	AverageScore   float64 `json:"averageScore"`
}

func (s *Store) DepartmentScores(ctx context.Context) ([]DepartmentScore, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.name, COUNT(a.id), COALESCE(AVG(a.final_score), 0)
    FROM departments d
    JOIN employees e ON e.department_id = d.id
    JOIN appraisals a ON a.employee_id = e.id AND a.status = 'completed'
    GROUP BY d.id, d.name
    ORDER BY d.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []DepartmentScore
	for rows.Next() {
		var ds DepartmentScore
		if err := rows.Scan(&ds.DepartmentID, &ds.DepartmentName, &ds.Completed, &ds.AverageScore); err != nil {
			return nil, err
		}
		scores = append(scores, ds)
	}
	return scores, rows.Err()
}

func (s *Store) TemplateUsage(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT selected_template, COUNT(1)
    FROM appraisals
    WHERE selected_template <> ''
    GROUP BY selected_template
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := map[string]int{}
	for rows.Next() {
		var templateType string
		var count int
		if err := rows.Scan(&templateType, &count); err != nil {
			return nil, err
		}
		usage[templateType] = count
	}
	return usage, rows.Err()
}
