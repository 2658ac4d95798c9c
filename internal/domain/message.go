package domain

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         string
	Text       string
	SenderID   string
	ReceiverID string
	CreatedAt  time.Time
}
