// Package storage implements ports.BlobStore on the local filesystem and on
// Amazon S3.
package storage

import (
	"errors"
	"io"
	"path"
	"strings"

	"github.com/vidshare/platform/internal/core/domain"
)

var errBadName = domain.Invalid("invalid blob name")

// checkName rejects names that would escape the store and names whose
// extension is not allow-listed. It returns the extension.
func checkName(name string) (string, error) {
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", errBadName
	}
	return domain.VideoExtension(name)
}

// limitReader fails with domain.ErrFileTooLarge once more than max bytes have
// been read. A max <= 0 disables the limit.
type limitReader struct {
	r    io.Reader
	max  int64
	read int64
}

func newLimitReader(r io.Reader, max int64) *limitReader {
	return &limitReader{r: r, max: max}
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.max > 0 && l.read > l.max {
		return n, domain.ErrFileTooLarge
	}
	return n, err
}

func isTooLarge(err error) bool {
	return errors.Is(err, domain.ErrFileTooLarge)
}
