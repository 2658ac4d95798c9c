package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// NotificationRepository manages notification persistence.
type NotificationRepository interface {
	// MarkAllReadForUser flags every notification of the user as read and
	// returns them in their updated state.
	MarkAllReadForUser(ctx context.Context, userID string) ([]domain.Notification, error)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository constructs repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) MarkAllReadForUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	const query = `
        UPDATE notifications SET read=TRUE
        WHERE user_id=$1 AND NOT read`

	var result []domain.Notification
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, userID); err != nil {
			return err
		}
		var err error
		result, err = listNotifications(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func listNotifications(ctx context.Context, q querier, userID string) ([]domain.Notification, error) {
	const query = `
        SELECT id, user_id, message_id, read, created_at
        FROM notifications WHERE user_id=$1 ORDER BY created_at ASC`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.MessageID,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}
