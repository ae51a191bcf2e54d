package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskUploader_UploadAndDelete(t *testing.T) {
	root := t.TempDir()
	u, err := NewLocalDiskUploader(root, "http://localhost:8080/storage/")
	require.NoError(t, err)

	res, err := u.Upload(context.Background(), "fotos/abc.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "fotos/abc.png", res.Key)
	assert.Equal(t, "http://localhost:8080/storage/fotos/abc.png", res.Location)
	assert.NotEmpty(t, res.ETag)

	data, err := os.ReadFile(filepath.Join(root, "fotos", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, u.Delete(context.Background(), "fotos/abc.png"))
	_, err = os.Stat(filepath.Join(root, "fotos", "abc.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is fine.
	assert.NoError(t, u.Delete(context.Background(), "fotos/abc.png"))
}

func TestLocalDiskUploader_KeysStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	u, err := NewLocalDiskUploader(filepath.Join(root, "public"), "")
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), "../../escape.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "public", "escape.txt"))
	assert.NoError(t, err)

	_, err = u.Upload(context.Background(), "", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = u.Upload(context.Background(), "..", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestJoinPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"http://cdn.example.com", "fotos/a.png", "http://cdn.example.com/fotos/a.png"},
		{"http://cdn.example.com/", "/fotos/a.png", "http://cdn.example.com/fotos/a.png"},
		{"http://localhost:8080/storage", "fotos/a.png", "http://localhost:8080/storage/fotos/a.png"},
		{"", "fotos/a.png", ""},
		{"http://cdn.example.com", "", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, joinPublicURL(tc.base, tc.key), "base=%q key=%q", tc.base, tc.key)
	}
}
