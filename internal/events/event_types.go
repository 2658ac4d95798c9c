package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMessageSent EventType = "message_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MessageSentPayload describes a newly stored message and the notification
// created for its receiver.
type MessageSentPayload struct {
	MessageID      string `json:"message_id"`
	NotificationID string `json:"notification_id"`
	SenderID       string `json:"sender_id"`
	ReceiverID     string `json:"receiver_id"`
	Preview        string `json:"preview"`
}
