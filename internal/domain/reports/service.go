package reports

import (
	"context"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

type Dashboard struct {
	Draft              int               `json:"draft"`
	InProgress         int               `json:"inProgress"`
	Completed          int               `json:"completed"`
	AverageFinalScore  float64           `json:"averageFinalScore"`
	RatingDistribution map[string]int    `json:"ratingDistribution"`
	TemplateUsage      map[string]int    `json:"templateUsage"`
	DepartmentScores   []DepartmentScore `json:"departmentScores"`
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	var err error

	if d.Draft, err = s.Store.AppraisalCountByStatus(ctx, appraisal.StatusDraft); err != nil {
		return Dashboard{}, err
	}
	if d.InProgress, err = s.Store.AppraisalCountByStatus(ctx, appraisal.StatusInProgress); err != nil {
		return Dashboard{}, err
	}
	if d.Completed, err = s.Store.AppraisalCountByStatus(ctx, appraisal.StatusCompleted); err != nil {
		return Dashboard{}, err
	}
	if d.AverageFinalScore, err = s.Store.AverageFinalScore(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.RatingDistribution, err = s.Store.RatingDistribution(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.TemplateUsage, err = s.Store.TemplateUsage(ctx); err != nil {
		return Dashboard{}, err
	}
	if d.DepartmentScores, err = s.Store.DepartmentScores(ctx); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
