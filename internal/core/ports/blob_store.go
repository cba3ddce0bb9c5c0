package ports

import (
	"context"
	"io"
)

// BlobStore persists uploaded video files under generated names.
//
// Save rejects names whose extension is not allow-listed
// (domain.ErrUnsupportedFileType) and payloads over the configured maximum
// (domain.ErrFileTooLarge), leaving nothing behind in either case.
// Delete succeeds when the blob is already gone.
type BlobStore interface {
	Save(ctx context.Context, name string, content io.Reader) (int64, error)
	Delete(ctx context.Context, name string) error
}
