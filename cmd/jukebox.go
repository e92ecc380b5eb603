package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/session"
)

// Jukebox loads the catalog once and runs the interactive menus on the runner's input and output.
//
// Powering off surfaces as [session.ErrPowerOff] so main can exit with status 1.
func (r *Runner) Jukebox(ctx context.Context, cmd *cli.Command) error {
	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	songs, err := catalog.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load songs: %w", err)
	}
	r.logger.Debug("catalog loaded", "songs", len(songs))

	p, err := r.newPlayer(r.output)
	if err != nil {
		return err
	}

	s := session.New(session.Options{
		Catalog: songs,
		Player:  p,
		Input:   r.input,
		Output:  r.output,
		Logger:  r.logger,
	})
	return s.Run(ctx)
}
