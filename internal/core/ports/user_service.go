package ports

import (
	"context"

	"github.com/vidshare/platform/internal/core/domain"
)

// UserService exposes user use-cases. actor is nil for anonymous requests.
type UserService interface {
	List(ctx context.Context, actor *domain.Identity) ([]*domain.User, error)
	Profile(ctx context.Context, id string) (*domain.UserProfile, error)
	Videos(ctx context.Context, id string) ([]*domain.Video, error)
	Update(ctx context.Context, actor *domain.Identity, id string, update domain.UserUpdate) error
	SetRole(ctx context.Context, actor *domain.Identity, id string, role string) error
	Delete(ctx context.Context, actor *domain.Identity, id string) error
}
