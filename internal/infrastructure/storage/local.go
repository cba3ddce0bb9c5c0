package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vidshare/platform/internal/core/domain"
)

// Local stores blobs as files in a single directory.
type Local struct {
	dir      string
	maxBytes int64
}

// NewLocal creates the directory if needed. maxBytes <= 0 means unlimited.
func NewLocal(dir string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &Local{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory blobs are stored in.
func (l *Local) Dir() string { return l.dir }

// Save streams content to a temporary file and renames it into place once it
// is fully written, so a failed or oversized upload leaves nothing behind.
func (l *Local) Save(ctx context.Context, name string, content io.Reader) (int64, error) {
	if _, err := checkName(name); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	full := filepath.Join(l.dir, name)
	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp file: %w", domain.ErrStorage, err)
	}
	tmpPath := tmp.Name()
	fail := func(err error) (int64, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, err
	}

	size, err := io.Copy(tmp, newLimitReader(content, l.maxBytes))
	if err != nil {
		if isTooLarge(err) {
			return fail(domain.ErrFileTooLarge)
		}
		return fail(fmt.Errorf("%w: write %s: %w", domain.ErrStorage, name, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("%w: sync %s: %w", domain.ErrStorage, name, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("%w: close %s: %w", domain.ErrStorage, name, err)
	}
	if err := os.Rename(tmpPath, full); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("%w: rename %s: %w", domain.ErrStorage, name, err)
	}
	return size, nil
}

// Delete removes the blob. A missing blob is not an error.
func (l *Local) Delete(_ context.Context, name string) error {
	if name == "" || name != filepath.Base(name) {
		return errBadName
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: delete %s: %w", domain.ErrStorage, name, err)
	}
	return nil
}
