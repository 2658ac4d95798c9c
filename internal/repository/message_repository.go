package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// MessageRepository manages direct messages.
type MessageRepository interface {
	// CreateWithNotification stores the message and the receiver's
	// notification atomically.
	CreateWithNotification(ctx context.Context, msg *domain.Message) (*domain.Notification, error)
	ListByReceiver(ctx context.Context, receiverID string) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) CreateWithNotification(ctx context.Context, msg *domain.Message) (*domain.Notification, error) {
	const insertMessage = `
        INSERT INTO messages (text, sender_id, receiver_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	const insertNotification = `
        INSERT INTO notifications (user_id, message_id)
        VALUES ($1,$2)
        RETURNING id, read, created_at`

	notification := &domain.Notification{UserID: msg.ReceiverID}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertMessage,
			msg.Text,
			msg.SenderID,
			msg.ReceiverID,
		).Scan(&msg.ID, &msg.CreatedAt); err != nil {
			return err
		}
		notification.MessageID = msg.ID
		return tx.QueryRow(ctx, insertNotification,
			notification.UserID,
			notification.MessageID,
		).Scan(&notification.ID, &notification.Read, &notification.CreatedAt)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrMissingReference
		}
		return nil, err
	}
	return notification, nil
}

func (r *messageRepository) ListByReceiver(ctx context.Context, receiverID string) ([]domain.Message, error) {
	const query = `
        SELECT id, text, sender_id, receiver_id, created_at
        FROM messages WHERE receiver_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.Text,
			&msg.SenderID,
			&msg.ReceiverID,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
