package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/events"
	"github.com/spec-kit/messaging-service/internal/repository"
)

const previewRunes = 80

// SendMessageInput describes a direct message to deliver.
type SendMessageInput struct {
	Text       string
	ReceiverID string
}

// MessageService coordinates direct messages.
type MessageService struct {
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MessageDependencies bundles requirements for the message service.
type MessageDependencies struct {
	MessageRepo repository.MessageRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewMessageService builds the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		messages:   deps.MessageRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Send stores a message from senderID together with the receiver's
// notification. The receiver must exist, be active and differ from the
// sender.
func (s *MessageService) Send(ctx context.Context, senderID string, in SendMessageInput) (*domain.Message, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrBadRequest
	}
	if _, err := uuid.Parse(in.ReceiverID); err != nil {
		return nil, ErrBadRequest
	}
	if in.ReceiverID == senderID {
		return nil, ErrBadRequest
	}

	receiver, err := s.users.GetByID(ctx, in.ReceiverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBadRequest
		}
		return nil, err
	}
	if !receiver.Active {
		return nil, ErrBadRequest
	}

	msg := &domain.Message{
		Text:       in.Text,
		SenderID:   senderID,
		ReceiverID: receiver.ID,
	}
	notification, err := s.messages.CreateWithNotification(ctx, msg)
	if err != nil {
		// Sender or receiver removed since the checks above.
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, ErrBadRequest
		}
		return nil, err
	}

	s.publishSent(ctx, msg, notification)
	return msg, nil
}

// ListReceived returns the messages addressed to userID.
func (s *MessageService) ListReceived(ctx context.Context, userID string) ([]domain.Message, error) {
	return s.messages.ListByReceiver(ctx, userID)
}

func (s *MessageService) publishSent(ctx context.Context, msg *domain.Message, notification *domain.Notification) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMessageSent,
		ActorID:   msg.SenderID,
		Timestamp: time.Now().UTC(),
		Payload: events.MessageSentPayload{
			MessageID:      msg.ID,
			NotificationID: notification.ID,
			SenderID:       msg.SenderID,
			ReceiverID:     msg.ReceiverID,
			Preview:        preview(msg.Text),
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("message_sent handlers failed",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewRunes]) + "…"
}
