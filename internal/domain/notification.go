package domain

import "time"

// Notification tells a user that a message arrived for them.
type Notification struct {
	ID        string
	UserID    string
	MessageID string
	Read      bool
	CreatedAt time.Time
}
