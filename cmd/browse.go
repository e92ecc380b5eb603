package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/desertthunder/jukebox/internal/ui"
)

// Browse launches the bubbletea catalog browser.
//
// Logs go to --log-file while the UI owns the terminal.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	logger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return err
	}
	logger.SetLevel(r.logger.GetLevel())
	r.SetLogger(logger)

	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	p, err := r.newPlayer(io.Discard)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, catalog, p)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
