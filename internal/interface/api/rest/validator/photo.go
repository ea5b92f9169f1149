package validator

import (
	"mime/multipart"
	"strings"

	"user-profile-api/internal/domain/photo"
)

// ValidateUpload checks an upload before anything is written. The first
// failing rule wins: empty, then size, then content type.
func ValidateUpload(size int64, contentType string) error {
	switch {
	case size <= 0:
		return &photo.ValidationError{Reason: photo.ReasonEmpty}
	case size > photo.MaxSize:
		return &photo.ValidationError{Reason: photo.ReasonTooLarge}
	case !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/"):
		return &photo.ValidationError{Reason: photo.ReasonBadType}
	}
	return nil
}

func ValidatePhoto(fh *multipart.FileHeader) error {
	return ValidateUpload(fh.Size, fh.Header.Get("Content-Type"))
}
