package domain

import (
	"path"
	"strings"
)

// MaxVideoBytes is the default upper bound of an uploaded video (500 MiB).
const MaxVideoBytes int64 = 500 << 20

var videoExtensions = map[string]string{
	"mp4":  "video/mp4",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"webm": "video/webm",
}

// VideoExtension returns the lower-cased extension of filename, or
// ErrUnsupportedFileType when it is missing or not allow-listed.
func VideoExtension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if _, ok := videoExtensions[ext]; !ok {
		return "", ErrUnsupportedFileType
	}
	return ext, nil
}

// VideoContentType maps an allow-listed extension to its MIME type.
func VideoContentType(ext string) string {
	if ct, ok := videoExtensions[strings.ToLower(ext)]; ok {
		return ct
	}
	return "application/octet-stream"
}
