package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

func TestVideoService_Upload(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)

	v, err := f.videoSvc.Upload(ctx, alice, ports.UploadVideoInput{
		Description:  "no title given",
		OriginalName: "Holiday.MOV",
		Content:      strings.NewReader("data"),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if v.Title != "Untitled" {
		t.Fatalf("expected default title, got %q", v.Title)
	}
	if v.OwnerID != alice.UserID || v.OwnerUsername != "alice" {
		t.Fatalf("unexpected owner: %+v", v)
	}
	if !strings.HasSuffix(v.Filename, ".mov") || strings.Contains(v.Filename, "Holiday") {
		t.Fatalf("expected generated .mov name, got %q", v.Filename)
	}
	if !f.blobs.has(v.Filename) {
		t.Fatalf("expected blob stored under %q", v.Filename)
	}

	again := f.upload(t, alice, "clip")
	if again.Filename == v.Filename {
		t.Fatalf("blob names must be unique")
	}
}

func TestVideoService_Upload_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)

	_, err := f.videoSvc.Upload(ctx, nil, ports.UploadVideoInput{OriginalName: "a.mp4", Content: strings.NewReader("x")})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	_, err = f.videoSvc.Upload(ctx, alice, ports.UploadVideoInput{OriginalName: "run.exe", Content: strings.NewReader("x")})
	if !errors.Is(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}

	_, err = f.videoSvc.Upload(ctx, alice, ports.UploadVideoInput{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without a file, got %v", err)
	}

	f.blobs.maxBytes = 3
	_, err = f.videoSvc.Upload(ctx, alice, ports.UploadVideoInput{OriginalName: "big.mp4", Content: strings.NewReader("four")})
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	if n := f.blobs.count(); n != 0 {
		t.Fatalf("rejected uploads must not leave blobs, got %d", n)
	}
	if vs, _ := f.videos.List(ctx, ports.VideoFilter{}); len(vs) != 0 {
		t.Fatalf("rejected uploads must not leave records, got %d", len(vs))
	}
}

func TestVideoService_Upload_RecordFailureRemovesBlob(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)

	f.db.createVideoErr = errBoom
	_, err := f.videoSvc.Upload(ctx, alice, ports.UploadVideoInput{OriginalName: "a.webm", Content: strings.NewReader("x")})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if n := f.blobs.count(); n != 0 {
		t.Fatalf("expected orphan blob removed, got %d blobs", n)
	}
}

func TestVideoService_Detail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)
	v := f.upload(t, alice, "main")
	for i := 0; i < 8; i++ {
		f.upload(t, alice, fmt.Sprintf("other-%d", i))
	}
	older := f.post(t, nil, v.ID, "older")
	newer := f.post(t, alice, v.ID, "newer")

	first, err := f.videoSvc.Detail(ctx, v.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if first.Video.Views != 0 {
		t.Fatalf("expected the page to show the count before this view, got %d", first.Video.Views)
	}
	second, err := f.videoSvc.Detail(ctx, v.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if second.Video.Views != 1 {
		t.Fatalf("expected 1 view, got %d", second.Video.Views)
	}

	if len(first.Suggestions) != 6 {
		t.Fatalf("expected 6 suggestions, got %d", len(first.Suggestions))
	}
	for _, s := range first.Suggestions {
		if s.ID == v.ID {
			t.Fatalf("suggestions must exclude the current video")
		}
	}
	if len(first.Comments) != 2 || first.Comments[0].ID != newer.ID || first.Comments[1].ID != older.ID {
		t.Fatalf("expected comments newest first, got %+v", first.Comments)
	}

	if _, err := f.videoSvc.Detail(ctx, "missing"); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestVideoService_Detail_CountsViewEvenWhenPageFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)
	v := f.upload(t, alice, "main")

	f.db.listCommentsErr = errBoom
	if _, err := f.videoSvc.Detail(ctx, v.ID); !errors.Is(err, errBoom) {
		t.Fatalf("expected store error, got %v", err)
	}
	stored, _ := f.videos.FindByID(ctx, v.ID)
	if stored.Views != 1 {
		t.Fatalf("expected the view to be counted, got %d", stored.Views)
	}
}

func TestVideoService_Feeds(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)
	bob := f.register(t, "bob", domain.RoleUser)

	var last *domain.Video
	for i := 0; i < 12; i++ {
		last = f.upload(t, alice, fmt.Sprintf("Cat video %d", i))
	}
	dog := f.upload(t, bob, "dog show")
	for i := 0; i < 3; i++ {
		if _, err := f.videoSvc.Detail(ctx, last.ID); err != nil {
			t.Fatalf("detail: %v", err)
		}
	}

	latest, err := f.videoSvc.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(latest) != 10 || latest[0].ID != dog.ID {
		t.Fatalf("expected 10 newest videos starting with the dog, got %d", len(latest))
	}

	trending, err := f.videoSvc.Trending(ctx)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if trending[0].ID != last.ID {
		t.Fatalf("expected most viewed first, got %s", trending[0].ID)
	}

	found, err := f.videoSvc.Search(ctx, "CAT")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 10 {
		t.Fatalf("expected case-insensitive matches capped at 10, got %d", len(found))
	}
	for _, v := range found {
		if v.ID == dog.ID {
			t.Fatalf("search returned a non-matching video")
		}
	}

	library, err := f.videoSvc.Library(ctx, bob)
	if err != nil {
		t.Fatalf("library: %v", err)
	}
	if len(library) != 1 || library[0].ID != dog.ID {
		t.Fatalf("expected bob's library to hold only his video, got %+v", library)
	}
	if _, err := f.videoSvc.Library(ctx, nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestVideoService_UpdateAndCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)
	bob := f.register(t, "bob", domain.RoleUser)
	admin := f.register(t, "root", domain.RoleAdmin)
	v := f.upload(t, alice, "clip")

	if err := f.videoSvc.Update(ctx, alice, v.ID, domain.VideoUpdate{Title: ptr("renamed")}); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if err := f.videoSvc.Update(ctx, bob, v.ID, domain.VideoUpdate{Title: ptr("hijack")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.videoSvc.Update(ctx, bob, "missing", domain.VideoUpdate{Title: ptr("x")}); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound before permission, got %v", err)
	}
	if err := f.videoSvc.Update(ctx, alice, v.ID, domain.VideoUpdate{Title: ptr(" ")}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := f.videoSvc.Update(ctx, admin, v.ID, domain.VideoUpdate{Description: ptr("")}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if err := f.videoSvc.AttachCode(ctx, alice, v.ID, "fmt.Println(42)"); err != nil {
		t.Fatalf("attach code: %v", err)
	}
	if err := f.videoSvc.AttachCode(ctx, bob, v.ID, "nope"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, _ := f.videos.FindByID(ctx, v.ID)
	if stored.Title != "renamed" || stored.Description != "" || stored.Code != "fmt.Println(42)" {
		t.Fatalf("unexpected video: %+v", stored)
	}
}

func TestVideoService_Delete_Forbidden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.register(t, "alice", domain.RoleUser)
	bob := f.register(t, "bob", domain.RoleUser)
	v := f.upload(t, alice, "clip")

	if err := f.videoSvc.Delete(ctx, bob, v.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.videoSvc.Delete(ctx, nil, v.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if !f.blobs.has(v.Filename) {
		t.Fatalf("blob must survive a denied delete")
	}
}
