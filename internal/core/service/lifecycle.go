package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
	"github.com/vidshare/platform/internal/pkg/metrics"
)

// ViewQueue accepts view increments for asynchronous processing.
type ViewQueue interface {
	// Enqueue reports whether the increment was accepted.
	Enqueue(videoID string) bool
}

// Lifecycle applies deletes and their cascades across users, videos and
// comments. The store has no transactions, so each cascade is a sequence of
// independent steps: a failed step aborts the remaining ones but completed
// steps are not rolled back. Blob removal never aborts a cascade.
//
// Callers are responsible for authorization; Lifecycle acts unconditionally.
type Lifecycle struct {
	users    ports.UserRepository
	videos   ports.VideoRepository
	comments ports.CommentRepository
	blobs    ports.BlobStore
	sessions ports.SessionStore
	views    ViewQueue
	log      zerolog.Logger
	now      func() time.Time
}

func NewLifecycle(
	users ports.UserRepository,
	videos ports.VideoRepository,
	comments ports.CommentRepository,
	blobs ports.BlobStore,
	sessions ports.SessionStore,
	views ViewQueue,
	log zerolog.Logger,
) *Lifecycle {
	return &Lifecycle{
		users:    users,
		videos:   videos,
		comments: comments,
		blobs:    blobs,
		sessions: sessions,
		views:    views,
		log:      log,
		now:      time.Now,
	}
}

// DeleteUser removes user with everything that references it:
//
//  1. every video the user owns, each with its blob and its comments;
//  2. every comment authored under the user's username;
//  3. the user record;
//  4. the actor's session, when actors delete themselves.
func (l *Lifecycle) DeleteUser(ctx context.Context, actor *domain.Identity, user *domain.User) error {
	owned, err := l.videos.List(ctx, ports.VideoFilter{OwnerID: user.ID})
	if err != nil {
		return fmt.Errorf("delete user %s: list videos: %w", user.ID, err)
	}
	for _, v := range owned {
		if err := l.deleteVideo(ctx, v); err != nil {
			if errors.Is(err, domain.ErrVideoNotFound) {
				continue // removed concurrently
			}
			return fmt.Errorf("delete user %s: %w", user.ID, err)
		}
		metrics.CascadeRemovedRecordsTotal.WithLabelValues("video").Inc()
	}

	removed, err := l.comments.DeleteByAuthor(ctx, user.Username)
	if err != nil {
		return fmt.Errorf("delete user %s: delete comments: %w", user.ID, err)
	}
	metrics.CascadeRemovedRecordsTotal.WithLabelValues("comment").Add(float64(removed))

	if err := l.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user %s: %w", user.ID, err)
	}

	if actor != nil && actor.UserID == user.ID {
		if err := terminateSession(ctx, l.sessions, actor, l.now()); err != nil {
			l.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to terminate session of deleted user")
		}
	}

	metrics.CascadeDeletesTotal.WithLabelValues("user").Inc()
	l.log.Info().
		Str("user_id", user.ID).
		Int("videos", len(owned)).
		Int64("comments", removed).
		Msg("user deleted")
	return nil
}

// DeleteVideo removes video, its blob and every comment on it.
func (l *Lifecycle) DeleteVideo(ctx context.Context, video *domain.Video) error {
	if err := l.deleteVideo(ctx, video); err != nil {
		return fmt.Errorf("delete video %s: %w", video.ID, err)
	}
	metrics.CascadeDeletesTotal.WithLabelValues("video").Inc()
	l.log.Info().Str("video_id", video.ID).Str("owner_id", video.OwnerID).Msg("video deleted")
	return nil
}

// DeleteComment removes a single comment.
func (l *Lifecycle) DeleteComment(ctx context.Context, id string) error {
	if err := l.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	metrics.CascadeDeletesTotal.WithLabelValues("comment").Inc()
	return nil
}

// IncrementViews counts one view of the video without waiting for the write.
// A dropped or failed increment is never reported to the caller.
func (l *Lifecycle) IncrementViews(videoID string) {
	if !l.views.Enqueue(videoID) {
		l.log.Debug().Str("video_id", videoID).Msg("view increment dropped")
	}
}

func (l *Lifecycle) deleteVideo(ctx context.Context, v *domain.Video) error {
	if err := l.blobs.Delete(ctx, v.Filename); err != nil {
		metrics.BlobDeleteFailuresTotal.Inc()
		l.log.Warn().Err(err).
			Str("video_id", v.ID).
			Str("filename", v.Filename).
			Msg("failed to delete video file, continuing")
	}

	if err := l.videos.Delete(ctx, v.ID); err != nil {
		return err
	}

	removed, err := l.comments.DeleteByVideo(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("delete comments of video %s: %w", v.ID, err)
	}
	metrics.CascadeRemovedRecordsTotal.WithLabelValues("comment").Add(float64(removed))
	return nil
}
