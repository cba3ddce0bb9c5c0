package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vidshare/platform/internal/infrastructure/storage"
	"github.com/vidshare/platform/internal/pkg/config"
)

func TestOpenBlobStore_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	blobs, mediaDir, err := openBlobStore(context.Background(), config.StorageConfig{
		Backend:  config.StorageLocal,
		Dir:      dir,
		MaxBytes: 16,
	})
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	if mediaDir != dir {
		t.Fatalf("expected media dir %q, got %q", dir, mediaDir)
	}
	if _, ok := blobs.(*storage.Local); !ok {
		t.Fatalf("expected a local store, got %T", blobs)
	}
	if _, err := blobs.Save(context.Background(), "1_a.mp4", strings.NewReader("frames")); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestOpenBlobStore_S3RequiresBucket(t *testing.T) {
	_, mediaDir, err := openBlobStore(context.Background(), config.StorageConfig{Backend: config.StorageS3})
	if err == nil {
		t.Fatalf("expected an error without a bucket")
	}
	if mediaDir != "" {
		t.Fatalf("s3 backend must not expose a media dir, got %q", mediaDir)
	}
}
