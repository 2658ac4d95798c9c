package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/service"
)

// NotificationsHandler exposes the caller's notifications.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// ReadAll handles GET /notifications. Every returned notification is marked
// read.
func (h *NotificationsHandler) ReadAll(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	items, err := h.notifications.ReadAll(c.UserContext(), identity.SubjectID)
	if err != nil {
		return serviceError(err, "")
	}
	return c.JSON(fiber.Map{"data": dto.NewNotificationListResponse(items)})
}
