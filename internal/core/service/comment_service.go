package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidshare/platform/internal/core/authz"
	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

type CommentService struct {
	comments  ports.CommentRepository
	videos    ports.VideoRepository
	lifecycle *Lifecycle
	log       zerolog.Logger
	now       func() time.Time
}

func NewCommentService(comments ports.CommentRepository, videos ports.VideoRepository, lifecycle *Lifecycle, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, videos: videos, lifecycle: lifecycle, log: log, now: time.Now}
}

// Post adds a comment to an existing video. Anonymous comments are recorded
// under domain.AnonymousAuthor.
func (s *CommentService) Post(ctx context.Context, actor *domain.Identity, videoID, text string) (*domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.Invalid("comment is empty")
	}
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, authz.PostComment, authz.Resource{OwnerID: video.OwnerID}); err != nil {
		return nil, err
	}

	author := domain.AnonymousAuthor
	if actor != nil {
		author = actor.Username
	}
	return s.comments.Create(ctx, &domain.Comment{
		VideoID:   video.ID,
		Author:    author,
		Text:      text,
		CreatedAt: s.now().UTC(),
	})
}

func (s *CommentService) Update(ctx context.Context, actor *domain.Identity, id string, text *string) error {
	comment, err := s.authoredComment(ctx, actor, authz.UpdateComment, id)
	if err != nil {
		return err
	}
	if text == nil {
		return nil
	}
	if strings.TrimSpace(*text) == "" {
		return domain.Invalid("comment is empty")
	}
	return s.comments.UpdateText(ctx, comment.ID, *text)
}

func (s *CommentService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	comment, err := s.authoredComment(ctx, actor, authz.DeleteComment, id)
	if err != nil {
		return err
	}
	if err := s.lifecycle.DeleteComment(ctx, comment.ID); err != nil {
		return err
	}
	s.log.Info().Str("comment_id", comment.ID).Str("actor_id", actor.UserID).Msg("comment deleted")
	return nil
}

func (s *CommentService) authoredComment(ctx context.Context, actor *domain.Identity, action authz.Action, id string) (*domain.Comment, error) {
	if err := authz.RequireIdentity(actor); err != nil {
		return nil, err
	}
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, action, authz.Resource{Author: comment.Author}); err != nil {
		return nil, err
	}
	return comment, nil
}
