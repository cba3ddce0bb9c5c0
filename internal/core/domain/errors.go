package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Callers match with errors.Is; entity-specific errors below
// wrap one of these so both the precise and the generic kind are matchable.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStorage            = errors.New("storage failure")
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrVideoNotFound   = fmt.Errorf("video %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)

	ErrUserExists = fmt.Errorf("username or email %w", ErrConflict)

	ErrInvalidRole         = fmt.Errorf("%w: role must be one of user, admin", ErrValidation)
	ErrUnsupportedFileType = fmt.Errorf("%w: file type not allowed, use mp4, avi, mov or webm", ErrValidation)
	ErrFileTooLarge        = fmt.Errorf("%w: file exceeds the maximum upload size", ErrValidation)
)

// Invalid returns an ErrValidation carrying a client-safe reason.
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
