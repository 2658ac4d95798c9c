package domain

import "time"

// User is the credential record for an account. PasswordHash never leaves
// the service layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
