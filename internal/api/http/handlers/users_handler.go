package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/api/dto"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util/errorutil"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Signup handles POST /users/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return apperrors.NewValidationError("password must be at most 72 bytes", nil)
	}

	token, err := h.auth.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return serviceError(err, "email already registered")
	}
	return c.Status(http.StatusCreated).JSON(dto.AccessTokenResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
	})
}

// Get handles GET /users.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), identity.SubjectID)
	if err != nil {
		return serviceError(err, "invalid user")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update handles PUT /users.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if req.Email == nil && req.Password == nil {
		return apperrors.NewValidationError("nothing to update", nil)
	}
	if req.Password != nil && len(*req.Password) > auth.MaxPasswordBytes {
		return apperrors.NewValidationError("password must be at most 72 bytes", nil)
	}

	user, err := h.users.Update(c.UserContext(), identity.SubjectID, service.UserUpdateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return serviceError(err, "email and password must not be empty")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Status handles GET /users/status.
func (h *UsersHandler) Status(c *fiber.Ctx) error {
	identity, err := caller(c)
	if err != nil {
		return err
	}
	active, err := h.users.Active(c.UserContext(), identity.SubjectID)
	if err != nil {
		return serviceError(err, "invalid user")
	}
	return c.JSON(fiber.Map{"data": dto.UserStatusResponse{Active: active}})
}

// Active handles GET /users/active.
func (h *UsersHandler) Active(c *fiber.Ctx) error {
	users, err := h.users.ListActive(c.UserContext())
	if err != nil {
		return serviceError(err, "")
	}
	return c.JSON(fiber.Map{"data": dto.NewUserListResponse(users)})
}
