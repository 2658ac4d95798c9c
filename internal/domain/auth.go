package domain

import "time"

// Identity is the claim set carried by an access token. It is attached to a
// request once the token has been verified and never changes afterwards.
type Identity struct {
	SubjectID string    `json:"sub"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
