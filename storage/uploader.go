package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
)

var ErrInvalidKey = errors.New("invalid storage key")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores player photos under server-relative keys such as
// "fotos/<uuid>.png" and resolves them to public URLs.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// joinPublicURL resolves key against base, tolerating missing or doubled slashes.
func joinPublicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	pathURL, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(pathURL).String()
}
