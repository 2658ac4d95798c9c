package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util/errorutil"
)

// AuthHandler exposes sign-in and the caller's token claims.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	token, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return serviceError(err, "invalid credentials")
	}
	return c.JSON(dto.AccessTokenResponse{AccessToken: token.AccessToken, ExpiresAt: token.ExpiresAt})
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProfileResponse{
		SubjectID: identity.SubjectID,
		Email:     identity.Email,
		IssuedAt:  identity.IssuedAt,
		ExpiresAt: identity.ExpiresAt,
	})
}
