package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-profile-api/internal/domain/photo"
)

func TestGetUploadHandler(t *testing.T) {
	modTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		method      string
		open        func(context.Context, string) (*photo.Object, error)
		wantStatus  int
		wantBody    string
		wantHeaders map[string]string
	}{
		{
			name:   "served",
			method: http.MethodGet,
			open: func(_ context.Context, name string) (*photo.Object, error) {
				return &photo.Object{
					Name:        name,
					Content:     io.NopCloser(strings.NewReader("jpegdata")),
					ContentType: "image/jpeg",
					Size:        8,
					ModTime:     modTime,
				}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   "jpegdata",
			wantHeaders: map[string]string{
				"Cache-Control":  uploadCacheControl,
				"Content-Type":   "image/jpeg",
				"Content-Length": "8",
				"Last-Modified":  "Fri, 01 Mar 2024 12:00:00 GMT",
			},
		},
		{
			name:   "head",
			method: http.MethodHead,
			open: func(_ context.Context, name string) (*photo.Object, error) {
				return &photo.Object{
					Name:        name,
					Content:     io.NopCloser(strings.NewReader("jpegdata")),
					ContentType: "image/jpeg",
					Size:        8,
				}, nil
			},
			wantStatus:  http.StatusOK,
			wantHeaders: map[string]string{"Cache-Control": uploadCacheControl},
		},
		{
			name:   "missing",
			method: http.MethodGet,
			open: func(context.Context, string) (*photo.Object, error) {
				return nil, photo.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "store failure",
			method: http.MethodGet,
			open: func(context.Context, string) (*photo.Object, error) {
				return nil, errors.New("bucket unreachable")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotName string
			store := &FakePhotoStore{OpenFunc: func(ctx context.Context, name string) (*photo.Object, error) {
				gotName = name
				return tt.open(ctx, name)
			}}

			r := setupRouter(t, &FakeUserService{}, store)
			rr := doRaw(t, r, tt.method, "/uploads/1700000000000_ana.jpg", nil, "")

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "1700000000000_ana.jpg", gotName)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
			for k, v := range tt.wantHeaders {
				assert.Equal(t, v, rr.Header().Get(k), k)
			}
		})
	}
}
