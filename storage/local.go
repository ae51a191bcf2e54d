package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalDiskUploader keeps files under a root directory that the HTTP layer
// serves at PublicBaseURL.
type LocalDiskUploader struct {
	rootDir       string
	publicBaseURL string
}

func NewLocalDiskUploader(rootDir, publicBaseURL string) (*LocalDiskUploader, error) {
	if rootDir == "" {
		return nil, errors.New("local storage root directory is required")
	}
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %q: %w", rootDir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %q: %w", abs, err)
	}
	return &LocalDiskUploader{rootDir: abs, publicBaseURL: publicBaseURL}, nil
}

func (u *LocalDiskUploader) RootDir() string {
	return u.rootDir
}

// resolve maps a slash-separated key to a path inside rootDir, rejecting
// keys that would escape it.
func (u *LocalDiskUploader) resolve(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", ErrInvalidKey
	}
	return filepath.Join(u.rootDir, filepath.FromSlash(clean)), nil
}

func (u *LocalDiskUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	fullPath, err := u.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	hash := md5.New()
	if _, err := io.Copy(io.MultiWriter(tmp, hash), reader); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}

	return &UploadResult{
		Key:      key,
		Location: u.GetPublicURL(key),
		ETag:     hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// Delete removes the file for key. A missing file is not an error.
func (u *LocalDiskUploader) Delete(ctx context.Context, key string) error {
	fullPath, err := u.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (u *LocalDiskUploader) GetPublicURL(key string) string {
	return joinPublicURL(u.publicBaseURL, key)
}
