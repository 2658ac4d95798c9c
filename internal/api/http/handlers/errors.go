package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/service"
	apperrors "github.com/spec-kit/messaging-service/pkg/util/errorutil"
)

// serviceError translates service sentinels into HTTP domain errors.
func serviceError(err error, badRequest string) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return apperrors.NewUnauthorized("unauthorized")
	case errors.Is(err, service.ErrBadRequest):
		return apperrors.NewBadRequest(badRequest)
	case errors.Is(err, service.ErrNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, service.ErrConflict):
		return apperrors.NewConflict("email already in use", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}

// caller returns the identity the guard attached to the request.
func caller(c *fiber.Ctx) (*domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("unauthorized")
	}
	return identity, nil
}
