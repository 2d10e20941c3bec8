package notifications

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("notification not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, n *Notification) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO notifications (user_id, kind, title, body, appraisal_id)
    VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)
    RETURNING id, created_at
  `, n.UserID, n.Kind, n.Title, n.Body, n.AppraisalID).Scan(&n.ID, &n.CreatedAt)
}

func (s *Store) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
    SELECT id, user_id, kind, title, body, COALESCE(appraisal_id::text, ''), read, created_at
    FROM notifications
    WHERE user_id = $1
  `
	if unreadOnly {
		query += " AND read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT $2"

	rows, err := s.DB.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.AppraisalID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// MarkRead only flips notifications owned by the caller.
func (s *Store) MarkRead(ctx context.Context, userID, notificationID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
  `, notificationID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE
  `, userID)
	return err
}

func (s *Store) UnreadCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE
  `, userID).Scan(&count)
	return count, err
}
