package dto

import (
	"time"

	"github.com/spec-kit/messaging-service/internal/domain"
)

// SignupRequest payload for new users.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest carries optional profile changes.
type UserUpdateRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse is the public view of a user. The password hash is never
// part of it.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStatusResponse reports whether an account is active.
type UserStatusResponse struct {
	Active bool `json:"active"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse converts a slice of users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
