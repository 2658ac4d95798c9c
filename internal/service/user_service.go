package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/domain"
	"github.com/spec-kit/messaging-service/internal/repository"
)

// UserUpdateInput holds optional profile changes. Nil fields are left as is.
type UserUpdateInput struct {
	Email    *string
	Password *string
}

// UserService exposes account operations for authenticated callers.
type UserService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Get returns the user with id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update applies the non-nil fields of in to the user.
func (s *UserService) Update(ctx context.Context, id string, in UserUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, ErrBadRequest
		}
		user.Email = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, ErrBadRequest
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, ErrBadRequest
			}
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrConflict
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Active reports whether the user's account is active.
func (s *UserService) Active(ctx context.Context, id string) (bool, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return user.Active, nil
}

// ListActive returns every active user.
func (s *UserService) ListActive(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}
