package player

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Launcher starts playback of a single song.
type Launcher interface {
	Launch(ctx context.Context, song models.Song) error
}

// LauncherFunc adapts a function to [Launcher].
type LauncherFunc func(ctx context.Context, song models.Song) error

func (f LauncherFunc) Launch(ctx context.Context, song models.Song) error {
	return f(ctx, song)
}

// BrowserLauncher opens song links with the system URL opener.
type BrowserLauncher struct {
	open func(link string) error
}

// NewBrowserLauncher creates a [BrowserLauncher] backed by [shared.OpenURL].
func NewBrowserLauncher() *BrowserLauncher {
	return &BrowserLauncher{open: shared.OpenURL}
}

func (l *BrowserLauncher) Launch(ctx context.Context, song models.Song) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.open(song.Link); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlayback, err)
	}
	return nil
}

// CommandLauncher runs an external player with the song link as its last argument and waits for it to exit.
type CommandLauncher struct {
	Command string
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
}

func (l *CommandLauncher) Launch(ctx context.Context, song models.Song) error {
	if l.Command == "" {
		return fmt.Errorf("%w: no player command configured", shared.ErrPlayback)
	}

	args := append(append([]string{}, l.Args...), song.Link)
	cmd := exec.CommandContext(ctx, l.Command, args...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrPlayback, l.Command, song.Link, err)
	}
	return nil
}

// NewLauncher builds the [Launcher] selected by cfg.Mode.
func NewLauncher(cfg shared.PlayerConfig) (Launcher, error) {
	switch cfg.Mode {
	case shared.PlayerModeBrowser, "":
		return NewBrowserLauncher(), nil
	case shared.PlayerModeCommand:
		return &CommandLauncher{Command: cfg.Command, Args: cfg.Args}, nil
	default:
		return nil, fmt.Errorf("%w: unknown player mode %q", shared.ErrInvalidConfig, cfg.Mode)
	}
}
