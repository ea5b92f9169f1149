package storage

import (
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-profile-api/internal/domain/photo"
)

func TestSanitizeFileName_Table(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", "ana.jpg", "ana.jpg", nil},
		{"empty", "", "file", nil},
		{"diacritics and spaces", "Fotó de Perfil.PNG", "Foto-de-Perfil.png", nil},
		{"non latin base", "日本.jpg", "file.jpg", nil},
		{"reserved", "con.txt", "_con.txt", nil},
		{"weird ext dropped", "photo.j p g", "photo-j-p-g", nil},
		{"dots collapse", "my..photo.jpeg", "my-photo.jpeg", nil},
		{"traversal", "../etc/passwd", "", photo.ErrUnsafeName},
		{"windows traversal", `..\boot.ini`, "", photo.ErrUnsafeName},
		{"dot dot", "..", "", photo.ErrUnsafeName},
		{"nul byte", "a\x00.jpg", "", photo.ErrUnsafeName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeFileName_TruncatesLongNames(t *testing.T) {
	got, err := SanitizeFileName(strings.Repeat("a", 300) + ".jpg")
	require.NoError(t, err)
	assert.Len(t, got, maxFileNameLen)
	assert.True(t, strings.HasSuffix(got, ".jpg"))
}

func TestNamer_Generate(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	n := &Namer{now: func() time.Time { return fixed }}

	first, err := n.Generate("ana.jpg")
	require.NoError(t, err)
	second, err := n.Generate("ana.jpg")
	require.NoError(t, err)

	assert.Equal(t, "1700000000000_ana.jpg", first)
	assert.Equal(t, "1700000000001_ana.jpg", second)
	assert.Regexp(t, regexp.MustCompile(`^\d+_ana\.jpg$`), first)
}

func TestNamer_Generate_UniqueUnderConcurrency(t *testing.T) {
	n := NewNamer()

	const workers = 50
	names := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := n.Generate("a.png")
			assert.NoError(t, err)
			names <- name
		}()
	}
	wg.Wait()
	close(names)

	seen := make(map[string]struct{}, workers)
	for name := range names {
		_, dup := seen[name]
		require.False(t, dup, "duplicate name %s", name)
		seen[name] = struct{}{}
	}
}

func TestNamer_Generate_Unsafe(t *testing.T) {
	_, err := NewNamer().Generate("../../x.jpg")
	require.ErrorIs(t, err, photo.ErrUnsafeName)
}

func TestIsGeneratedName(t *testing.T) {
	assert.True(t, IsGeneratedName("1700000000000_ana.jpg"))
	assert.False(t, IsGeneratedName("ana.jpg"))
	assert.False(t, IsGeneratedName("../1_a.jpg"))
	assert.False(t, IsGeneratedName(".1_a"))
	assert.False(t, IsGeneratedName(""))
}
