package ports

import (
	"context"

	"github.com/vidshare/platform/internal/core/domain"
)

// Session is returned by a successful login.
type Session struct {
	Token    string
	Identity *domain.Identity
}

// AuthService registers users and manages their sessions.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, actor *domain.Identity) error
	// Verify resolves a session token to the identity it was issued for.
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}
