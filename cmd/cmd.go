// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/formatter"
)

// rootFlags are shared by every command.
func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

// setupCommand handles setup operations for the catalog store and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Prepare the configured catalog (SQLite migrations or MongoDB indexes)",
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the file (defaults to --config)",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent SQLite migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// songsCommand handles catalog administration
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"song", "catalog"},
		Usage:   "Manage the song catalog",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List every song in the catalog",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "show",
				Usage: "Show a single song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
					&cli.StringArg{Name: "artist"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongsShow,
			},
			{
				Name:  "add",
				Usage: "Add a song, or update the link of an existing one",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
					&cli.StringArg{Name: "artist"},
					&cli.StringArg{Name: "link"},
				},
				Action: r.SongsAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
					&cli.StringArg{Name: "artist"},
				},
				Action: r.SongsRemove,
			},
			{
				Name:  "import",
				Usage: "Add or update every song in a CSV file (title, artist, link columns)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Parse and validate without writing",
					},
				},
				Action: r.SongsImport,
			},
			{
				Name:  "export",
				Usage: "Export the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (" + strings.Join(formatter.Formats, ", ") + ")",
						Value:   formatter.FormatCSV,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (defaults to stdout)",
					},
				},
				Action: r.SongsExport,
			},
		},
	}
}

// browseCommand returns the top-level command for the interactive catalog browser.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse the catalog in an interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the UI is running",
				Value: "./tmp/jukebox-tui.log",
			},
		},
		Action: r.Browse,
	}
}
