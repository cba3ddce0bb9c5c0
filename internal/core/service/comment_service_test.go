package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vidshare/platform/internal/core/domain"
)

func TestCommentService_Post(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)
	v := f.upload(t, alice, "clip")

	anon := f.post(t, nil, v.ID, "hi")
	if anon.Author != domain.AnonymousAuthor {
		t.Fatalf("expected anonymous author, got %q", anon.Author)
	}
	named := f.post(t, alice, v.ID, "hello")
	if named.Author != "alice" {
		t.Fatalf("expected author alice, got %q", named.Author)
	}

	if _, err := f.comment.Post(ctx, alice, v.ID, "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := f.comment.Post(ctx, alice, "missing", "text"); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestCommentService_UpdateDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)
	bob := f.register(t, "bob", domain.RoleUser)
	admin := f.register(t, "root", domain.RoleAdmin)
	v := f.upload(t, bob, "clip")
	c := f.post(t, alice, v.ID, "typo")
	anon := f.post(t, nil, v.ID, "drive-by")

	if err := f.comment.Update(ctx, alice, c.ID, ptr("fixed")); err != nil {
		t.Fatalf("author update: %v", err)
	}
	if err := f.comment.Update(ctx, bob, c.ID, ptr("mine now")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("video owners do not own comments, got %v", err)
	}
	if err := f.comment.Update(ctx, alice, c.ID, ptr("")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := f.comment.Update(ctx, alice, anon.ID, ptr("x")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("anonymous comments belong to nobody, got %v", err)
	}
	if err := f.comment.Delete(ctx, nil, c.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	stored, _ := f.comments.FindByID(ctx, c.ID)
	if stored.Text != "fixed" {
		t.Fatalf("unexpected text %q", stored.Text)
	}

	if err := f.comment.Delete(ctx, admin, anon.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := f.comment.Delete(ctx, alice, c.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := f.comment.Delete(ctx, alice, c.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestAdminService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := f.register(t, "root", domain.RoleAdmin)
	alice := f.register(t, "alice", domain.RoleUser)
	v := f.upload(t, alice, "clip")
	f.post(t, alice, v.ID, "hello")

	if _, err := f.admin.Overview(ctx, alice); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	overview, err := f.admin.Overview(ctx, admin)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.Users) != 2 || len(overview.Videos) != 1 || len(overview.Comments) != 1 {
		t.Fatalf("unexpected overview: %d users, %d videos, %d comments",
			len(overview.Users), len(overview.Videos), len(overview.Comments))
	}
	if _, err := f.admin.Comments(ctx, nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
