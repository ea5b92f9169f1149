package ports

import (
	"context"
	"io"

	"user-profile-api/internal/domain/photo"
)

type PhotoStore interface {
	// EnsureRoot prepares the backing directory or bucket. Failing here is fatal.
	EnsureRoot(ctx context.Context) error
	// Save stores content under a generated name and returns its public URL.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	// Open returns photo.ErrNotFound for unknown names.
	Open(ctx context.Context, name string) (*photo.Object, error)
}
