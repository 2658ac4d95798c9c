package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// NotificationResponse is the wire form of a notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationListResponse converts a slice of notifications.
func NewNotificationListResponse(items []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			MessageID: n.MessageID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
