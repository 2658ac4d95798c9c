package service

import "errors"

// Service level errors. Handlers translate them into HTTP responses.
var (
	// ErrUnauthorized covers every credential failure. It deliberately does
	// not say whether the account exists.
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
