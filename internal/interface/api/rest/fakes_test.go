package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"user-profile-api/internal/domain/photo"
	domain "user-profile-api/internal/domain/user"
)

type FakeUserService struct {
	GetAllFunc  func(ctx context.Context) (domain.Users, error)
	GetByIDFunc func(ctx context.Context, id domain.ID) (*domain.User, error)
	SaveFunc    func(ctx context.Context, u domain.User) (*domain.User, error)
	DeleteFunc  func(ctx context.Context, id domain.ID) error
}

func (f *FakeUserService) GetAll(ctx context.Context) (domain.Users, error) {
	if f.GetAllFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetAllFunc(ctx)
}
func (f *FakeUserService) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.GetByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.GetByIDFunc(ctx, id)
}
func (f *FakeUserService) Save(ctx context.Context, u domain.User) (*domain.User, error) {
	if f.SaveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SaveFunc(ctx, u)
}
func (f *FakeUserService) Delete(ctx context.Context, id domain.ID) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, id)
}

type FakePhotoStore struct {
	SaveFunc func(ctx context.Context, originalName string, content io.Reader) (string, error)
	OpenFunc func(ctx context.Context, name string) (*photo.Object, error)
}

func (f *FakePhotoStore) EnsureRoot(context.Context) error { return nil }
func (f *FakePhotoStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	if f.SaveFunc == nil {
		return "", errors.New("not used")
	}
	return f.SaveFunc(ctx, originalName, content)
}
func (f *FakePhotoStore) Open(ctx context.Context, name string) (*photo.Object, error) {
	if f.OpenFunc == nil {
		return nil, errors.New("not used")
	}
	return f.OpenFunc(ctx, name)
}

// memRepo is an in-memory domain.Repository for end-to-end handler tests.
type memRepo struct {
	mu     sync.Mutex
	nextID domain.ID
	users  map[domain.ID]domain.User
}

func newMemRepo() *memRepo { return &memRepo{users: map[domain.ID]domain.User{}} }

func (m *memRepo) FetchUsers(context.Context) (domain.Users, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	us := domain.Users{}
	for _, u := range m.users {
		u := u
		us = append(us, &u)
	}
	sort.Slice(us, func(i, j int) bool { return us[i].ID < us[j].ID })
	return us, nil
}

func (m *memRepo) FetchUserByID(_ context.Context, id domain.ID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memRepo) CreateUser(_ context.Context, req domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	req.ID = m.nextID
	m.users[req.ID] = req
	return &req, nil
}

func (m *memRepo) UpdateUser(_ context.Context, req domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[req.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	m.users[req.ID] = req
	return &req, nil
}

func (m *memRepo) DeleteUser(_ context.Context, id domain.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

type filePart struct {
	field       string
	fileName    string
	contentType string
	data        []byte
}

func jpeg(size int) filePart {
	return filePart{field: "photo", fileName: "ana.jpg", contentType: "image/jpeg", data: bytes.Repeat([]byte{0xff}, size)}
}

// newMultipart builds a multipart body. An empty userJSON omits the user part.
func newMultipart(t *testing.T, userJSON string, userAsFile bool, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if userJSON != "" {
		if userAsFile {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", `form-data; name="user"; filename="user.json"`)
			h.Set("Content-Type", "application/json")
			pw, err := w.CreatePart(h)
			require.NoError(t, err)
			_, err = pw.Write([]byte(userJSON))
			require.NoError(t, err)
		} else {
			require.NoError(t, w.WriteField("user", userJSON))
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.fileName))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(f.data)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRaw(t *testing.T, r *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doMultipart(t *testing.T, r *gin.Engine, method, path, userJSON string, files ...filePart) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := newMultipart(t, userJSON, false, files...)
	return doRaw(t, r, method, path, body, ct)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	return doRaw(t, r, method, path, rd, "application/json")
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func readDir(dir string) ([]os.DirEntry, error) { return os.ReadDir(dir) }
