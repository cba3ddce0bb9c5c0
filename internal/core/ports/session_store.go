package ports

import (
	"context"
	"time"
)

// SessionStore tracks terminated sessions until their tokens expire.
type SessionStore interface {
	// Revoke marks the session as terminated for ttl. Revoking twice is not an error.
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
