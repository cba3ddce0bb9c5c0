package ports

import (
	"context"

	"github.com/vidshare/platform/internal/core/domain"
)

// AdminListLimit caps every bulk listing of the admin surface.
const AdminListLimit = 200

// AdminOverview is the moderation dashboard content.
type AdminOverview struct {
	Users    []*domain.User    `json:"users"`
	Videos   []*domain.Video   `json:"videos"`
	Comments []*domain.Comment `json:"comments"`
}

// AdminService exposes bulk listings restricted to admins.
type AdminService interface {
	Overview(ctx context.Context, actor *domain.Identity) (*AdminOverview, error)
	Videos(ctx context.Context, actor *domain.Identity) ([]*domain.Video, error)
	Comments(ctx context.Context, actor *domain.Identity) ([]*domain.Comment, error)
}
