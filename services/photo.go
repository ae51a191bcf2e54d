package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	maxPhotoSizeKB = 2048
	maxPhotoBytes  = maxPhotoSizeKB * 1024
	photoKeyPrefix = "fotos/"
)

// PhotoUpload is a player photo received with a create or update request.
type PhotoUpload struct {
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

var (
	createPhotoTypes = []string{"image/jpeg", "image/png", "image/bmp", "image/gif", "image/svg+xml", "image/webp"}
	updatePhotoTypes = []string{"image/png", "image/jpeg"}
)

type checkedPhoto struct {
	upload      *PhotoUpload
	contentType string
	extension   string
}

// inspectPhoto sniffs the upload and checks it against allowed. Problems are
// recorded on verr under "foto".
func inspectPhoto(verr *ValidationError, photo *PhotoUpload, allowed []string, allowedNames string) (*checkedPhoto, error) {
	if photo.Size > maxPhotoBytes {
		verr.Add("foto", fmt.Sprintf("The foto field must not be greater than %d kilobytes.", maxPhotoSizeKB))
		return nil, nil
	}

	mtype, err := mimetype.DetectReader(photo.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded photo: %w", err)
	}
	if _, err := photo.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind uploaded photo: %w", err)
	}

	if !strings.HasPrefix(mtype.String(), "image/") {
		verr.Add("foto", "The foto field must be an image.")
		return nil, nil
	}
	if !matchesAny(mtype, allowed) {
		verr.Add("foto", fmt.Sprintf("The foto field must be a file of type: %s.", allowedNames))
		return nil, nil
	}

	return &checkedPhoto{
		upload:      photo,
		contentType: mtype.String(),
		extension:   mtype.Extension(),
	}, nil
}

// matchesAny reports whether mtype or one of its aliases is in allowed.
func matchesAny(mtype *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		if mtype.Is(a) {
			return true
		}
	}
	return false
}

func newPhotoKey(extension string) string {
	return photoKeyPrefix + uuid.NewString() + extension
}
