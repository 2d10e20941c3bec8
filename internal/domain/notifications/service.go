package notifications

import (
	"context"
	"fmt"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// NotifyCriteriaLoaded tells the appraised user their evaluation
// criteria are ready. A missing user id is a no-op so appraisals for
// employees without accounts still load cleanly.
func (s *Service) NotifyCriteriaLoaded(ctx context.Context, userID, appraisalID, templateName string, lineCount int) error {
	if userID == "" {
		return nil
	}
	n := &Notification{
		UserID:      userID,
		Kind:        KindCriteriaLoaded,
		Title:       "Appraisal criteria loaded",
		Body:        fmt.Sprintf("%d evaluation criteria loaded from %s", lineCount, templateName),
		AppraisalID: appraisalID,
	}
	return s.Store.Create(ctx, n)
}

func (s *Service) NotifyAppraisalCompleted(ctx context.Context, userID, appraisalID string, finalScore float64, rating string) error {
	if userID == "" {
		return nil
	}
	n := &Notification{
		UserID:      userID,
		Kind:        KindAppraisalCompleted,
		Title:       "Appraisal completed",
		Body:        fmt.Sprintf("Final score %.2f (%s)", finalScore, rating),
		AppraisalID: appraisalID,
	}
	return s.Store.Create(ctx, n)
}
