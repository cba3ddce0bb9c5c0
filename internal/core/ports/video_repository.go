package ports

import (
	"context"

	"github.com/vidshare/platform/internal/core/domain"
)

// VideoSort selects the ordering of a video listing.
type VideoSort int

const (
	SortNone VideoSort = iota
	SortNewest
	SortMostViewed
)

// VideoFilter carries the query parameters for listing videos.
// Zero values mean "no constraint"; Limit <= 0 means unlimited.
type VideoFilter struct {
	OwnerID       string
	TitleContains string // case-insensitive substring
	ExcludeID     string
	Sort          VideoSort
	Limit         int
}

// ViewCounter bumps a video's view counter.
type ViewCounter interface {
	IncrementViews(ctx context.Context, id string) error
}

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	ViewCounter

	Create(ctx context.Context, v *domain.Video) (*domain.Video, error)
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context, filter VideoFilter) ([]*domain.Video, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, id string, update domain.VideoUpdate) error
	SetCode(ctx context.Context, id string, code string) error
	// Delete removes the video record; domain.ErrVideoNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
