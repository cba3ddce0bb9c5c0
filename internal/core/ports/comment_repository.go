package ports

import (
	"context"

	"github.com/vidshare/platform/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByVideo returns the comments of a video, newest first.
	ListByVideo(ctx context.Context, videoID string) ([]*domain.Comment, error)
	// List returns up to limit comments across all videos, newest first.
	List(ctx context.Context, limit int) ([]*domain.Comment, error)
	CountByAuthor(ctx context.Context, author string) (int64, error)
	UpdateText(ctx context.Context, id string, text string) error
	// Delete removes one comment; domain.ErrCommentNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
	DeleteByVideo(ctx context.Context, videoID string) (int64, error)
	DeleteByAuthor(ctx context.Context, author string) (int64, error)
}
