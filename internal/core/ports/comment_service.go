package ports

import (
	"context"

	"github.com/vidshare/platform/internal/core/domain"
)

// CommentService exposes comment use-cases. actor is nil for anonymous requests.
type CommentService interface {
	Post(ctx context.Context, actor *domain.Identity, videoID, text string) (*domain.Comment, error)
	// Update replaces the text; a nil text leaves the comment unchanged.
	Update(ctx context.Context, actor *domain.Identity, id string, text *string) error
	Delete(ctx context.Context, actor *domain.Identity, id string) error
}
