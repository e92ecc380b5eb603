// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"testing"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// SampleSongs returns the two-song catalog used across tests.
func SampleSongs() []models.Song {
	return []models.Song{
		{Title: "Safe and Sound", Artist: "Capital Cities", Link: "https://www.youtube.com/watch?v=47dtFZ8CFo8"},
		{Title: "In The End", Artist: "Linkin Park", Link: "https://www.youtube.com/watch?v=eVTXPUF4Oz4"},
	}
}

// MockLauncher records every launched song. Links listed in Fail return an error.
type MockLauncher struct {
	mu       sync.Mutex
	Launched []models.Song
	Fail     map[string]error
}

func (m *MockLauncher) Launch(ctx context.Context, song models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Launched = append(m.Launched, song)
	if err, ok := m.Fail[song.Link]; ok {
		return err
	}
	return nil
}

// Titles returns the titles of launched songs in order.
func (m *MockLauncher) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	titles := make([]string, 0, len(m.Launched))
	for _, s := range m.Launched {
		titles = append(titles, s.Title)
	}
	return titles
}

// MemoryRepository is an in-memory [models.SongRepository]. Err, when set, is returned by every call.
type MemoryRepository struct {
	mu    sync.Mutex
	songs []models.Song
	Err   error
}

// NewMemoryRepository creates a [MemoryRepository] holding songs in order.
func NewMemoryRepository(songs ...models.Song) *MemoryRepository {
	return &MemoryRepository{songs: slices.Clone(songs)}
}

func (m *MemoryRepository) FindAll(ctx context.Context) ([]models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Clone(m.songs), nil
}

func (m *MemoryRepository) FindByKey(ctx context.Context, title, artist string) (*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if i := m.index(title, artist); i >= 0 {
		song := m.songs[i]
		return &song, nil
	}
	return nil, fmt.Errorf("%w: %s by %s", shared.ErrSongNotFound, title, artist)
}

func (m *MemoryRepository) Upsert(ctx context.Context, song *models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := song.Validate(); err != nil {
		return err
	}
	if i := m.index(song.Title, song.Artist); i >= 0 {
		song.ID = m.songs[i].ID
		m.songs[i] = *song
		return nil
	}
	song.ID = shared.GenerateID()
	m.songs = append(m.songs, *song)
	return nil
}

func (m *MemoryRepository) DeleteByKey(ctx context.Context, title, artist string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	i := m.index(title, artist)
	if i < 0 {
		return fmt.Errorf("%w: %s by %s", shared.ErrSongNotFound, title, artist)
	}
	m.songs = slices.Delete(m.songs, i, i+1)
	return nil
}

func (m *MemoryRepository) index(title, artist string) int {
	return slices.IndexFunc(m.songs, func(s models.Song) bool {
		return s.Title == title && s.Artist == artist
	})
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FReader always returns an error on Read
type FReader struct{}

func (f *FReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
