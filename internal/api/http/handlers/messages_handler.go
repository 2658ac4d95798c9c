package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util/errorutil"
)

// MessagesHandler exposes direct message endpoints.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messageService}
}

// Send handles POST /messages.
func (h *MessagesHandler) Send(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	msg, err := h.messages.Send(c.UserContext(), identity.SubjectID, service.SendMessageInput{
		Text:       req.Text,
		ReceiverID: req.ReceiverID,
	})
	if err != nil {
		return serviceError(err, "cannot send message to this receiver")
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMessageResponse(msg)})
}

// Received handles GET /messages.
func (h *MessagesHandler) Received(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	messages, err := h.messages.ListReceived(c.UserContext(), identity.SubjectID)
	if err != nil {
		return serviceError(err, "")
	}
	return c.JSON(fiber.Map{"data": dto.NewMessageListResponse(messages)})
}
