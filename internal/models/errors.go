package models

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Match with errors.Is.
var (
	ErrDuplicateEmail     = errors.New("email already registered")  // 409
	ErrInvalidCredentials = errors.New("invalid email or password") // 401
	ErrNotFound           = errors.New("not found")                 // 404
	ErrUnauthorized       = errors.New("authentication required")   // 401
	ErrForbidden          = errors.New("permission denied")         // 403
	ErrValidation         = errors.New("validation failed")         // 400
	ErrStorageUnavailable = errors.New("storage unavailable")       // 503
)

var (
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrEventNotFound = fmt.Errorf("event %w", ErrNotFound)
	ErrURLTaken      = fmt.Errorf("%w: url already in use", ErrValidation)
)

// ValidationError builds an ErrValidation with a human readable reason.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
