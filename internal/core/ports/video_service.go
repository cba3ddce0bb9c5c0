package ports

import (
	"context"
	"io"

	"github.com/vidshare/platform/internal/core/domain"
)

// UploadVideoInput carries an uploaded file and its metadata.
type UploadVideoInput struct {
	Title        string
	Description  string
	OriginalName string
	Size         int64
	Content      io.Reader
}

// VideoService exposes video use-cases. actor is nil for anonymous requests.
type VideoService interface {
	Upload(ctx context.Context, actor *domain.Identity, in UploadVideoInput) (*domain.Video, error)
	// Detail loads a video page and counts a view.
	Detail(ctx context.Context, id string) (*domain.VideoDetail, error)
	Latest(ctx context.Context) ([]*domain.Video, error)
	Trending(ctx context.Context) ([]*domain.Video, error)
	Search(ctx context.Context, query string) ([]*domain.Video, error)
	Library(ctx context.Context, actor *domain.Identity) ([]*domain.Video, error)
	Update(ctx context.Context, actor *domain.Identity, id string, update domain.VideoUpdate) error
	AttachCode(ctx context.Context, actor *domain.Identity, id string, code string) error
	Delete(ctx context.Context, actor *domain.Identity, id string) error
}
