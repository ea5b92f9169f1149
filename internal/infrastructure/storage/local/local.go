package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"user-profile-api/internal/domain/photo"
	"user-profile-api/internal/infrastructure/storage"
)

const defaultContentType = "application/octet-stream"

// Store keeps photos as flat files inside a single root directory.
type Store struct {
	root   string
	namer  *storage.Namer
	logger *zap.Logger
}

func New(logger *zap.Logger, root string) *Store {
	return &Store{
		root:   root,
		namer:  storage.NewNamer(),
		logger: logger,
	}
}

// EnsureRoot creates the root directory and its parents when missing.
func (s *Store) EnsureRoot(_ context.Context) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return &photo.StorageInitError{Root: s.root, Err: err}
	}

	abs, err := filepath.Abs(s.root)
	if err != nil {
		abs = s.root
	}
	s.logger.Info("upload root ready", zap.String("path", abs))

	return nil
}

// Save writes content under a freshly generated name and returns its public URL.
// Data lands in a temp file first and is renamed into place once complete.
func (s *Store) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	name, err := s.namer.Generate(originalName)
	if err != nil {
		return "", &photo.StorageWriteError{Name: originalName, Err: err}
	}
	if err = ctx.Err(); err != nil {
		return "", &photo.StorageWriteError{Name: name, Err: err}
	}

	if err = s.write(name, content); err != nil {
		return "", &photo.StorageWriteError{Name: name, Err: err}
	}

	return photo.URL(name), nil
}

func (s *Store) write(name string, content io.Reader) (err error) {
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, content); err != nil {
		return fmt.Errorf("copy content: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(s.root, name)); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

func (s *Store) Open(_ context.Context, name string) (*photo.Object, error) {
	if !storage.IsGeneratedName(name) {
		return nil, photo.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, photo.ErrNotFound
		}
		return nil, fmt.Errorf("open photo %q: %w", name, err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat photo %q: %w", name, err)
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, photo.ErrNotFound
	}

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = defaultContentType
	}

	return &photo.Object{
		Name:        name,
		Content:     f,
		ContentType: ct,
		Size:        st.Size(),
		ModTime:     st.ModTime(),
	}, nil
}

