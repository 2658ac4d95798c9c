package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/events"
	"github.com/spec-kit/messaging-service/internal/notify"
	"github.com/spec-kit/messaging-service/internal/repository"
)

// NotificationService reads a user's notifications and forwards new ones to
// the live publisher.
type NotificationService struct {
	repo       repository.NotificationRepository
	dispatcher events.Dispatcher
	publisher  notify.Publisher
	logger     *zap.Logger
}

// NotificationDependencies bundles requirements for the notification service.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	Dispatcher       events.Dispatcher
	Publisher        notify.Publisher
	Logger           *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		repo:       deps.NotificationRepo,
		dispatcher: deps.Dispatcher,
		publisher:  deps.Publisher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
}

// ReadAll marks every notification of userID as read and returns them.
func (n *NotificationService) ReadAll(ctx context.Context, userID string) ([]domain.Notification, error) {
	return n.repo.MarkAllReadForUser(ctx, userID)
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("MessageSent",
		zap.String("message_id", payload.MessageID),
		zap.String("receiver_id", payload.ReceiverID))

	if n.publisher == nil {
		return nil
	}
	if err := n.publisher.Publish(ctx, payload.ReceiverID, event); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
