package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Player holds the playback queue and plays songs through a [Launcher].
type Player struct {
	mu       sync.RWMutex
	queue    []models.Song
	launcher Launcher
	gap      time.Duration
	output   io.Writer
	logger   *log.Logger
}

// Options configures a [Player].
type Options struct {
	Launcher Launcher
	Gap      time.Duration // Gap is the minimum delay between consecutive launches in [Player.PlayAll]
	Output   io.Writer
	Logger   *log.Logger
}

// New creates a [Player] with an empty queue.
func New(opts Options) *Player {
	if opts.Launcher == nil {
		opts.Launcher = NewBrowserLauncher()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Player{
		queue:    []models.Song{},
		launcher: opts.Launcher,
		gap:      opts.Gap,
		output:   opts.Output,
		logger:   opts.Logger,
	}
}

// Add appends song to the end of the queue. Duplicates are kept.
func (p *Player) Add(song models.Song) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = append(p.queue, song)
}

// Remove deletes the first queued song with the same key as song and reports whether one was found.
func (p *Player) Remove(song models.Song) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, i, ok := lo.FindIndexOf(p.queue, func(s models.Song) bool { return s.Same(song) })
	if !ok {
		return false
	}
	p.queue = slices.Delete(p.queue, i, i+1)
	return true
}

// RemoveAt deletes the song at the zero-based position i, keeping the order of the rest.
func (p *Player) RemoveAt(i int) (models.Song, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.queue) {
		return models.Song{}, fmt.Errorf("%w: %d (queue has %d songs)", shared.ErrIndexOutOfRange, i, len(p.queue))
	}

	song := p.queue[i]
	p.queue = slices.Delete(p.queue, i, i+1)
	return song, nil
}

// Clear empties the queue.
func (p *Player) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue = []models.Song{}
}

// Queue returns a copy of the queue in play order.
func (p *Player) Queue() []models.Song {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.queue)
}

// Len returns the number of queued songs.
func (p *Player) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.queue)
}

// PlayOne announces song and hands it to the launcher.
func (p *Player) PlayOne(ctx context.Context, song models.Song) error {
	if _, err := fmt.Fprintf(p.output, "Now playing: %s\n", song); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	p.logger.Debug("launching song", "title", song.Title, "artist", song.Artist, "link", song.Link)
	if err := p.launcher.Launch(ctx, song); err != nil {
		p.logger.Error("playback failed", "title", song.Title, "artist", song.Artist, "error", err)
		return err
	}
	return nil
}

// PlayAll plays songs in order, waiting at least the configured gap between launches.
//
// A failed song does not stop the rest; all failures are joined into the returned error.
// Cancelling ctx stops before the next launch.
func (p *Player) PlayAll(ctx context.Context, songs []models.Song) error {
	limit := rate.Inf
	if p.gap > 0 {
		limit = rate.Every(p.gap)
	}
	limiter := rate.NewLimiter(limit, 1)

	var errs []error
	for _, song := range songs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := limiter.Wait(ctx); err != nil {
			errs = append(errs, err)
			break
		}

		if err := p.PlayOne(ctx, song); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
