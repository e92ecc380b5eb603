package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/session"
	"github.com/desertthunder/jukebox/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	loadEnv(logger)

	app := newApp(NewRunner(RunnerOpts{Logger: logger}))

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, session.ErrPowerOff):
			os.Exit(1)
		case errors.Is(err, shared.ErrInputClosed):
			os.Exit(0)
		case errors.Is(err, shared.ErrConnection):
			logger.Fatal("could not reach the song catalog", "error", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

// loadEnv reads .env files into the environment. A missing file is not an error.
func loadEnv(logger *log.Logger, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", "error", err)
	}
}

// newApp builds the root command. Without a subcommand it runs the jukebox menus.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "jukebox",
		Usage:    "Pick karaoke songs from a menu and play them one at a time or as a playlist",
		Version:  "0.1.0",
		Flags:    rootFlags(),
		Before:   r.Configure,
		Action:   r.Jukebox,
		Commands: r.register(),
		Writer:   r.output,
	}
}
