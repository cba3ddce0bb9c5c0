package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidshare/platform/internal/core/authz"
	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

type UserService struct {
	users     ports.UserRepository
	videos    ports.VideoRepository
	comments  ports.CommentRepository
	lifecycle *Lifecycle
	log       zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	videos ports.VideoRepository,
	comments ports.CommentRepository,
	lifecycle *Lifecycle,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, videos: videos, comments: comments, lifecycle: lifecycle, log: log}
}

// List returns every user, capped at the admin listing limit.
func (s *UserService) List(ctx context.Context, actor *domain.Identity) ([]*domain.User, error) {
	if err := authorize(actor, authz.ListUsers, authz.Resource{}); err != nil {
		return nil, err
	}
	return s.users.List(ctx, ports.AdminListLimit)
}

// Profile returns a user with publication counts.
func (s *UserService) Profile(ctx context.Context, id string) (*domain.UserProfile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	videos, err := s.videos.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.CountByAuthor(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	return &domain.UserProfile{
		User:  user,
		Stats: domain.UserStats{Videos: videos, Comments: comments},
	}, nil
}

// Videos lists the videos owned by a user, newest first.
func (s *UserService) Videos(ctx context.Context, id string) ([]*domain.Video, error) {
	return s.videos.List(ctx, ports.VideoFilter{OwnerID: id, Sort: ports.SortNewest})
}

// Update changes the username and/or email of a user. Videos and comments keep
// the username they were created with.
func (s *UserService) Update(ctx context.Context, actor *domain.Identity, id string, update domain.UserUpdate) error {
	if err := authz.RequireIdentity(actor); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, authz.UpdateUser, authz.Resource{OwnerID: user.ID}); err != nil {
		return err
	}

	update.Username = trimmed(update.Username)
	update.Email = trimmed(update.Email)
	if update.Username != nil && *update.Username == "" {
		return domain.Invalid("username cannot be empty")
	}
	if update.Username != nil && strings.EqualFold(*update.Username, domain.AnonymousAuthor) {
		return domain.Invalid("username is reserved")
	}
	if update.Email != nil && *update.Email == "" {
		return domain.Invalid("email cannot be empty")
	}
	if update.Empty() {
		return nil
	}

	if err := s.users.Update(ctx, user.ID, update); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Str("actor_id", actor.UserID).Msg("user updated")
	return nil
}

// SetRole assigns role to a user. Only admins may do so, and only the known
// roles are accepted.
func (s *UserService) SetRole(ctx context.Context, actor *domain.Identity, id string, role string) error {
	if err := authz.RequireIdentity(actor); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, authz.SetRole, authz.Resource{OwnerID: user.ID}); err != nil {
		return err
	}

	r := domain.Role(role)
	if !r.Valid() {
		return domain.ErrInvalidRole
	}
	if err := s.users.SetRole(ctx, user.ID, r); err != nil {
		return err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("role", role).
		Str("actor_id", actor.UserID).
		Msg("user role changed")
	return nil
}

// Delete removes a user and everything the user owns or authored.
func (s *UserService) Delete(ctx context.Context, actor *domain.Identity, id string) error {
	if err := authz.RequireIdentity(actor); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, authz.DeleteUser, authz.Resource{OwnerID: user.ID}); err != nil {
		return err
	}
	return s.lifecycle.DeleteUser(ctx, actor, user)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
