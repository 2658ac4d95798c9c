package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// SendMessageRequest payload for POST /messages.
type SendMessageRequest struct {
	Text       string `json:"text"`
	ReceiverID string `json:"receiver_id"`
}

// MessageResponse is the wire form of a message.
type MessageResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMessageResponse converts a domain message.
func NewMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		Text:       m.Text,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		CreatedAt:  m.CreatedAt,
	}
}

// NewMessageListResponse converts a slice of messages.
func NewMessageListResponse(messages []domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, NewMessageResponse(&messages[i]))
	}
	return out
}
