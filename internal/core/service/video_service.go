package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vidshare/platform/internal/core/authz"
	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
	"github.com/vidshare/platform/internal/pkg/metrics"
)

const (
	feedLimit        = 10
	suggestionsLimit = 6
	defaultTitle     = "Untitled"
)

type VideoService struct {
	videos    ports.VideoRepository
	comments  ports.CommentRepository
	blobs     ports.BlobStore
	lifecycle *Lifecycle
	log       zerolog.Logger
	now       func() time.Time
}

func NewVideoService(
	videos ports.VideoRepository,
	comments ports.CommentRepository,
	blobs ports.BlobStore,
	lifecycle *Lifecycle,
	log zerolog.Logger,
) *VideoService {
	return &VideoService{
		videos:    videos,
		comments:  comments,
		blobs:     blobs,
		lifecycle: lifecycle,
		log:       log,
		now:       time.Now,
	}
}

// Upload stores the file first and then records the video. If the record
// cannot be written the stored file is removed again.
func (s *VideoService) Upload(ctx context.Context, actor *domain.Identity, in ports.UploadVideoInput) (*domain.Video, error) {
	if err := authorize(actor, authz.UploadVideo, authz.Resource{}); err != nil {
		return nil, err
	}
	if in.Content == nil || in.OriginalName == "" {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.Invalid("no file provided")
	}
	ext, err := domain.VideoExtension(in.OriginalName)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	now := s.now().UTC()
	name := blobName(now, ext)
	size, err := s.blobs.Save(ctx, name, in.Content)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("save video file: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultTitle
	}
	created, err := s.videos.Create(ctx, &domain.Video{
		Title:         title,
		Description:   in.Description,
		Filename:      name,
		OwnerID:       actor.UserID,
		OwnerUsername: actor.Username,
		UploadedAt:    now,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		if derr := s.blobs.Delete(ctx, name); derr != nil {
			s.log.Warn().Err(derr).Str("filename", name).Msg("failed to remove file of unrecorded upload")
		}
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	metrics.UploadedBytes.Observe(float64(size))
	s.log.Info().
		Str("video_id", created.ID).
		Str("owner_id", actor.UserID).
		Int64("bytes", size).
		Msg("video uploaded")
	return created, nil
}

// Detail returns the video page and counts one view. The view is counted as
// soon as the video is found, whatever happens to the rest of the page.
func (s *VideoService) Detail(ctx context.Context, id string) (*domain.VideoDetail, error) {
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.lifecycle.IncrementViews(video.ID)

	suggestions, err := s.videos.List(ctx, ports.VideoFilter{ExcludeID: video.ID, Limit: suggestionsLimit})
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByVideo(ctx, video.ID)
	if err != nil {
		return nil, err
	}
	return &domain.VideoDetail{Video: video, Suggestions: suggestions, Comments: comments}, nil
}

func (s *VideoService) Latest(ctx context.Context) ([]*domain.Video, error) {
	return s.videos.List(ctx, ports.VideoFilter{Sort: ports.SortNewest, Limit: feedLimit})
}

func (s *VideoService) Trending(ctx context.Context) ([]*domain.Video, error) {
	return s.videos.List(ctx, ports.VideoFilter{Sort: ports.SortMostViewed, Limit: feedLimit})
}

// Search matches titles containing query, ignoring case.
func (s *VideoService) Search(ctx context.Context, query string) ([]*domain.Video, error) {
	return s.videos.List(ctx, ports.VideoFilter{
		TitleContains: strings.TrimSpace(query),
		Sort:          ports.SortNewest,
		Limit:         feedLimit,
	})
}

// Library lists the actor's own videos.
func (s *VideoService) Library(ctx context.Context, actor *domain.Identity) ([]*domain.Video, error) {
	if err := authz.RequireIdentity(actor); err != nil {
		return nil, err
	}
	return s.videos.List(ctx, ports.VideoFilter{OwnerID: actor.UserID, Sort: ports.SortNewest})
}

func (s *VideoService) Update(ctx context.Context, actor *domain.Identity, id string, update domain.VideoUpdate) error {
	video, err := s.ownedVideo(ctx, actor, authz.UpdateVideo, id)
	if err != nil {
		return err
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return domain.Invalid("title cannot be empty")
	}
	if update.Empty() {
		return nil
	}
	if err := s.videos.Update(ctx, video.ID, update); err != nil {
		return err
	}
	s.log.Info().Str("video_id", video.ID).Str("actor_id", actor.UserID).Msg("video updated")
	return nil
}

// AttachCode stores free-form text alongside the video; an empty code clears it.
func (s *VideoService) AttachCode(ctx context.Context, actor *domain.Identity, id string, code string) error {
	video, err := s.ownedVideo(ctx, actor, authz.AttachCode, id)
	if err != nil {
		return err
	}
	return s.videos.SetCode(ctx, video.ID, code)
}

func (s *VideoService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	video, err := s.ownedVideo(ctx, actor, authz.DeleteVideo, id)
	if err != nil {
		return err
	}
	return s.lifecycle.DeleteVideo(ctx, video)
}

// ownedVideo loads the video and checks that actor may perform action on it.
// A missing video is reported before a missing permission.
func (s *VideoService) ownedVideo(ctx context.Context, actor *domain.Identity, action authz.Action, id string) (*domain.Video, error) {
	if err := authz.RequireIdentity(actor); err != nil {
		return nil, err
	}
	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, action, authz.Resource{OwnerID: video.OwnerID}); err != nil {
		return nil, err
	}
	return video, nil
}

// blobName returns a unique storage key: <unix>_<uuid>.<ext>.
func blobName(now time.Time, ext string) string {
	return fmt.Sprintf("%d_%s.%s", now.Unix(), uuid.NewString(), ext)
}
