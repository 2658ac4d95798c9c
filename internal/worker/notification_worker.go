package worker

import (
	"github.com/spec-kit/messaging-service/internal/service"
)

// StartNotificationWorker registers the handlers that fan message_sent
// events out to the live notification channel.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
