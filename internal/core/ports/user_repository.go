package ports

import (
	"context"

	"github.com/vidshare/platform/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Username and email are unique at the store level; writes that would
// violate that return domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns up to limit users, newest first.
	List(ctx context.Context, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) error
	SetRole(ctx context.Context, id string, role domain.Role) error
	// Delete removes the user; domain.ErrUserNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
