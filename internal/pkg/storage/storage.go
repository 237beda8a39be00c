package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL generates a presigned/public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}

// FileFilter decides whether an upload is acceptable based on its
// declared mimetype and file extension.
type FileFilter func(mimetype string, extension string) error

// UploadPolicy couples a filter with a size ceiling. Handlers apply the
// policy before touching the storage backend.
type UploadPolicy struct {
	Filter      FileFilter
	MaxFileSize int64
}

// Check validates a candidate upload against the policy.
func (p UploadPolicy) Check(filename string, mimetype string, size int64) error {
	if p.MaxFileSize > 0 && size > p.MaxFileSize {
		return fmt.Errorf("file exceeds maximum size of %d bytes", p.MaxFileSize)
	}
	if p.Filter != nil {
		ext := strings.ToLower(filepath.Ext(filename))
		if err := p.Filter(mimetype, ext); err != nil {
			return err
		}
	}
	return nil
}

// ImageFilter accepts common image uploads (company logos, avatars).
func ImageFilter(mimetype string, extension string) error {
	switch mimetype {
	case "image/png", "image/jpeg":
	default:
		return fmt.Errorf("unsupported image type: %s", mimetype)
	}
	switch extension {
	case ".png", ".jpg", ".jpeg":
		return nil
	}
	return fmt.Errorf("unsupported image extension: %s", extension)
}
