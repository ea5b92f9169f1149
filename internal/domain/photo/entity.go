package photo

import (
	"io"
	"time"
)

const (
	// MaxSize is the largest accepted upload in bytes.
	MaxSize = int64(5_000_000)

	// URLPrefix is the public prefix of every stored photo reference.
	URLPrefix = "/uploads/"
)

// Object is a stored photo opened for reading. The caller closes Content.
type Object struct {
	Name        string
	Content     io.ReadCloser
	ContentType string
	Size        int64
	ModTime     time.Time
}

// URL returns the public reference for a generated name.
func URL(generatedName string) string { return URLPrefix + generatedName }
