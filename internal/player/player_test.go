package player

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	tu "github.com/desertthunder/jukebox/internal/testing"
)

func newTestPlayer(t *testing.T, gap time.Duration) (*Player, *tu.MockLauncher, *bytes.Buffer) {
	t.Helper()
	launcher := &tu.MockLauncher{}
	var out bytes.Buffer
	p := New(Options{
		Launcher: launcher,
		Gap:      gap,
		Output:   &out,
		Logger:   log.New(&bytes.Buffer{}),
	})
	return p, launcher, &out
}

func TestPlayerQueue(t *testing.T) {
	songs := tu.SampleSongs()
	safe, end := songs[0], songs[1]

	t.Run("New starts empty", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		assert.Empty(t, p.Queue())
		assert.Equal(t, 0, p.Len())
	})

	t.Run("Add keeps insertion order and duplicates", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(end)
		p.Add(safe)
		p.Add(end)

		assert.Equal(t, []models.Song{end, safe, end}, p.Queue())
	})

	t.Run("Queue returns a copy", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(safe)

		q := p.Queue()
		q[0] = end

		assert.Equal(t, []models.Song{safe}, p.Queue())
	})

	t.Run("Remove deletes the first matching song", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(safe)
		p.Add(end)
		p.Add(safe)

		assert.True(t, p.Remove(safe))
		assert.Equal(t, []models.Song{end, safe}, p.Queue())
	})

	t.Run("Remove matches on title and artist", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(safe)

		other := safe
		other.Link = "https://example.com/other"
		other.ID = "another-id"

		assert.True(t, p.Remove(other))
		assert.Empty(t, p.Queue())
	})

	t.Run("Remove missing song", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(safe)

		assert.False(t, p.Remove(end))
		assert.Equal(t, []models.Song{safe}, p.Queue())
	})

	t.Run("RemoveAt", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(end)
		p.Add(safe)
		p.Add(end)

		removed, err := p.RemoveAt(2)
		require.NoError(t, err)
		assert.Equal(t, end, removed)
		assert.Equal(t, []models.Song{end, safe}, p.Queue())
	})

	t.Run("RemoveAt out of range", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(safe)

		for _, i := range []int{-1, 1, 5} {
			_, err := p.RemoveAt(i)
			assert.ErrorIs(t, err, shared.ErrIndexOutOfRange)
		}
		assert.Equal(t, []models.Song{safe}, p.Queue())
	})

	t.Run("Clear", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(safe)
		p.Add(end)
		p.Clear()

		assert.Empty(t, p.Queue())
	})
}

func TestPlayerPlayback(t *testing.T) {
	songs := tu.SampleSongs()
	ctx := context.Background()

	t.Run("PlayOne announces and launches", func(t *testing.T) {
		p, launcher, out := newTestPlayer(t, 0)

		require.NoError(t, p.PlayOne(ctx, songs[1]))
		assert.Equal(t, []string{"In The End"}, launcher.Titles())
		assert.Equal(t, "Now playing: In The End by Linkin Park\n", out.String())
	})

	t.Run("PlayOne surfaces launcher errors", func(t *testing.T) {
		p, launcher, _ := newTestPlayer(t, 0)
		launcher.Fail = map[string]error{songs[0].Link: shared.ErrPlayback}

		err := p.PlayOne(ctx, songs[0])
		assert.ErrorIs(t, err, shared.ErrPlayback)
	})

	t.Run("PlayOne does not touch the queue", func(t *testing.T) {
		p, _, _ := newTestPlayer(t, 0)
		p.Add(songs[0])

		require.NoError(t, p.PlayOne(ctx, songs[1]))
		assert.Equal(t, []models.Song{songs[0]}, p.Queue())
	})

	t.Run("PlayAll plays in order", func(t *testing.T) {
		p, launcher, out := newTestPlayer(t, 0)

		require.NoError(t, p.PlayAll(ctx, []models.Song{songs[1], songs[0], songs[1]}))
		assert.Equal(t, []string{"In The End", "Safe and Sound", "In The End"}, launcher.Titles())
		assert.Contains(t, out.String(), "Now playing: Safe and Sound by Capital Cities\n")
	})

	t.Run("PlayAll empty", func(t *testing.T) {
		p, launcher, out := newTestPlayer(t, 0)

		require.NoError(t, p.PlayAll(ctx, nil))
		assert.Empty(t, launcher.Launched)
		assert.Empty(t, out.String())
	})

	t.Run("PlayAll continues after a failure", func(t *testing.T) {
		p, launcher, _ := newTestPlayer(t, 0)
		launcher.Fail = map[string]error{songs[0].Link: shared.ErrPlayback}

		err := p.PlayAll(ctx, songs)
		assert.ErrorIs(t, err, shared.ErrPlayback)
		assert.Equal(t, []string{"Safe and Sound", "In The End"}, launcher.Titles())
	})

	t.Run("PlayAll paces launches", func(t *testing.T) {
		gap := 40 * time.Millisecond
		p, launcher, _ := newTestPlayer(t, gap)

		start := time.Now()
		require.NoError(t, p.PlayAll(ctx, []models.Song{songs[0], songs[1], songs[0]}))

		assert.Len(t, launcher.Launched, 3)
		assert.GreaterOrEqual(t, time.Since(start), 2*gap-5*time.Millisecond)
	})

	t.Run("PlayAll stops on cancellation", func(t *testing.T) {
		p, launcher, _ := newTestPlayer(t, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- p.PlayAll(ctx, songs) }()

		require.Eventually(t, func() bool { return len(launcher.Titles()) == 1 }, time.Second, 5*time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, got %v", err)
		case <-time.After(time.Second):
			t.Fatal("PlayAll did not stop after cancellation")
		}
		assert.Equal(t, []string{"Safe and Sound"}, launcher.Titles())
	})

	t.Run("PlayAll stops when cancelled during playback", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var played []string
		launcher := LauncherFunc(func(ctx context.Context, song models.Song) error {
			played = append(played, song.Title)
			cancel()
			return nil
		})
		p := New(Options{Launcher: launcher, Output: &bytes.Buffer{}, Logger: log.New(&bytes.Buffer{})})

		err := p.PlayAll(ctx, songs)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []string{"Safe and Sound"}, played)
	})

	t.Run("writer failure", func(t *testing.T) {
		launcher := &tu.MockLauncher{}
		p := New(Options{Launcher: launcher, Output: &tu.FWriter{}, Logger: log.New(&bytes.Buffer{})})

		assert.Error(t, p.PlayOne(ctx, songs[0]))
		assert.Empty(t, launcher.Launched)
	})
}
