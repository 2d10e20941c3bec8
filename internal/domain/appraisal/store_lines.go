package appraisal

import (
	"context"
	"time"
)

func (s *Store) ListLines(ctx context.Context, appraisalID string) ([]Line, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, appraisal_id, section, line_type, sequence, objective,
           COALESCE(priority, ''), COALESCE(metric, ''), target_value, actual_value,
           weightage, COALESCE(team_name, ''), achievement, weighted_score
    FROM appraisal_lines
    WHERE appraisal_id = $1
    ORDER BY section, sequence, id
  `, appraisalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ID, &line.AppraisalID, &line.Section, &line.LineType, &line.Sequence,
			&line.Objective, &line.Priority, &line.Metric, &line.TargetValue, &line.ActualValue,
			&line.Weightage, &line.TeamName, &line.Achievement, &line.WeightedScore); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ReplaceLines drops previously loaded criteria and inserts the new
// set atomically, marking the appraisal loaded. There is no versioning
// of prior criteria states.
func (s *Store) ReplaceLines(ctx context.Context, appraisalID string, lines []Line, status string) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM appraisal_lines WHERE appraisal_id = $1", appraisalID); err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := tx.Exec(ctx, `
      INSERT INTO appraisal_lines (appraisal_id, section, line_type, sequence, objective,
                                   priority, metric, target_value, actual_value, weightage,
                                   team_name, achievement, weighted_score)
      VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, NULLIF($11, ''), $12, $13)
    `, appraisalID, line.Section, line.LineType, line.Sequence, line.Objective,
			line.Priority, line.Metric, line.TargetValue, line.ActualValue, line.Weightage,
			line.TeamName, line.Achievement, line.WeightedScore); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `
    UPDATE appraisals
    SET criteria_loaded = true, status = $2, updated_at = $3
    WHERE id = $1
  `, appraisalID, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// UpdateLineActuals writes new actual values and their recomputed
// derived fields for the given lines of one appraisal.
func (s *Store) UpdateLineActuals(ctx context.Context, appraisalID string, lines []Line) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, line := range lines {
		tag, err := tx.Exec(ctx, `
      UPDATE appraisal_lines
      SET actual_value = $3, achievement = $4, weighted_score = $5
      WHERE id = $1 AND appraisal_id = $2
    `, line.ID, appraisalID, line.ActualValue, line.Achievement, line.WeightedScore)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}
	return tx.Commit(ctx)
}
