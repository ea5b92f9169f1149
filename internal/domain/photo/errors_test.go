package photo

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageWriteError_Unwrap(t *testing.T) {
	err := error(&StorageWriteError{Name: "../x", Err: ErrUnsafeName})

	assert.True(t, errors.Is(err, ErrUnsafeName))

	var we *StorageWriteError
	assert.True(t, errors.As(err, &we))
	assert.Equal(t, "../x", we.Name)
}

func TestStorageInitError_Unwrap(t *testing.T) {
	err := error(&StorageInitError{Root: "/root/x", Err: os.ErrPermission})

	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Contains(t, err.Error(), "/root/x")
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "photo is empty", (&ValidationError{Reason: ReasonEmpty}).Error())
	assert.Contains(t, (&ValidationError{Reason: ReasonTooLarge}).Error(), "5000000")
	assert.Contains(t, (&ValidationError{Reason: ReasonBadType}).Error(), "image/*")
}

func TestURL(t *testing.T) {
	assert.Equal(t, "/uploads/1_a.jpg", URL("1_a.jpg"))
}
