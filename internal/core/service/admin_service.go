package service

import (
	"context"

	"github.com/vidshare/platform/internal/core/authz"
	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

type AdminService struct {
	users    ports.UserRepository
	videos   ports.VideoRepository
	comments ports.CommentRepository
}

func NewAdminService(users ports.UserRepository, videos ports.VideoRepository, comments ports.CommentRepository) *AdminService {
	return &AdminService{users: users, videos: videos, comments: comments}
}

// Overview returns the newest users, videos and comments, each capped at
// ports.AdminListLimit.
func (s *AdminService) Overview(ctx context.Context, actor *domain.Identity) (*ports.AdminOverview, error) {
	if err := authorize(actor, authz.AdminPanel, authz.Resource{}); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, ports.AdminListLimit)
	if err != nil {
		return nil, err
	}
	videos, err := s.videos.List(ctx, ports.VideoFilter{Sort: ports.SortNewest, Limit: ports.AdminListLimit})
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.List(ctx, ports.AdminListLimit)
	if err != nil {
		return nil, err
	}
	return &ports.AdminOverview{Users: users, Videos: videos, Comments: comments}, nil
}

func (s *AdminService) Videos(ctx context.Context, actor *domain.Identity) ([]*domain.Video, error) {
	if err := authorize(actor, authz.AdminPanel, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.videos.List(ctx, ports.VideoFilter{Sort: ports.SortNewest, Limit: ports.AdminListLimit})
}

func (s *AdminService) Comments(ctx context.Context, actor *domain.Identity) ([]*domain.Comment, error) {
	if err := authorize(actor, authz.AdminPanel, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.comments.List(ctx, ports.AdminListLimit)
}
