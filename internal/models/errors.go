package models

import "errors"

// Domain errors, mapped to HTTP status codes at the handler boundary.
var (
	ErrNotFound     = errors.New("event not found")
	ErrForbidden    = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
)
