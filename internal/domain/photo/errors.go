package photo

import (
	"errors"
	"fmt"
)

type Reason string

const (
	ReasonEmpty    Reason = "EMPTY"
	ReasonTooLarge Reason = "TOO_LARGE"
	ReasonBadType  Reason = "BAD_TYPE"
)

var (
	ErrUnsafeName = errors.New("unsafe file name")
	ErrNotFound   = errors.New("photo not found")
)

// ValidationError is returned when an upload is rejected before it is stored.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "photo is empty"
	case ReasonTooLarge:
		return fmt.Sprintf("photo exceeds %d bytes", MaxSize)
	case ReasonBadType:
		return "photo must have an image/* content type"
	}
	return "invalid photo"
}

// StorageInitError means the storage root could not be prepared.
type StorageInitError struct {
	Root string
	Err  error
}

func (e *StorageInitError) Error() string {
	return fmt.Sprintf("init photo storage %q: %v", e.Root, e.Err)
}

func (e *StorageInitError) Unwrap() error { return e.Err }

// StorageWriteError means a photo could not be written.
type StorageWriteError struct {
	Name string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write photo %q: %v", e.Name, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }
