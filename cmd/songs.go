package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/formatter"
	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	"github.com/desertthunder/jukebox/internal/ui"
)

// SongsList prints every song in catalog order as a table, or as JSON with --json.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	songs, err := catalog.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if len(songs) == 0 {
		return r.writePlain("%s\n", ui.Warning("The catalog is empty."))
	}

	r.writePlain("%s\n", ui.Heading(fmt.Sprintf("Karaoke Catalog (%d songs)", len(songs))))
	r.renderSongs(songs)
	return nil
}

func (r *Runner) renderSongs(songs []models.Song) {
	t := table.NewWriter()
	t.SetOutputMirror(r.output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Link"})
	for i, song := range songs {
		t.AppendRow(table.Row{i + 1, song.Title, song.Artist, song.Link})
	}
	t.Render()
}

// SongsShow prints a single song looked up by title and artist.
func (r *Runner) SongsShow(ctx context.Context, cmd *cli.Command) error {
	title, artist := cmd.StringArg("title"), cmd.StringArg("artist")
	if title == "" || artist == "" {
		return fmt.Errorf("%w: title and artist are required", shared.ErrMissingArgument)
	}

	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	song, err := catalog.FindByKey(ctx, title, artist)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}

	r.writePlainHeader(song.String())
	r.writePlain("Title:  %s\n", song.Title)
	r.writePlain("Artist: %s\n", song.Artist)
	r.writePlain("Link:   %s\n", song.Link)
	if song.ID != "" {
		r.writePlain("ID:     %s\n", song.ID)
	}
	return nil
}

// SongsAdd upserts a song keyed by title and artist.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	song := models.NewSong(cmd.StringArg("title"), cmd.StringArg("artist"), cmd.StringArg("link"))
	if err := song.Validate(); err != nil {
		return err
	}

	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	if err := catalog.Upsert(ctx, song); err != nil {
		return fmt.Errorf("failed to save song: %w", err)
	}

	r.logger.Debug("song saved", "title", song.Title, "artist", song.Artist, "id", song.ID)
	return r.writePlain("%s\n", ui.Success("✓ Saved "+song.String()))
}

// SongsRemove deletes a song by title and artist.
func (r *Runner) SongsRemove(ctx context.Context, cmd *cli.Command) error {
	title, artist := cmd.StringArg("title"), cmd.StringArg("artist")
	if title == "" || artist == "" {
		return fmt.Errorf("%w: title and artist are required", shared.ErrMissingArgument)
	}

	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	if err := catalog.DeleteByKey(ctx, title, artist); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Removed %s by %s", title, artist)))
}

// SongsImport upserts every row of a CSV file. Rows are validated before anything is written.
func (r *Runner) SongsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: CSV path is required", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	songs, err := formatter.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	if cmd.Bool("dry-run") {
		r.writePlain("%s\n", ui.Heading(fmt.Sprintf("%d songs would be imported", len(songs))))
		r.renderSongs(songs)
		return nil
	}

	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	var errs []error
	imported := 0
	for i := range songs {
		if err := catalog.Upsert(ctx, &songs[i]); err != nil {
			r.logger.Warn("failed to import song", "song", songs[i].String(), "error", err)
			errs = append(errs, err)
			continue
		}
		imported++
	}

	r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Imported %d of %d songs", imported, len(songs))))
	return errors.Join(errs...)
}

// SongsExport writes the catalog in the requested format to --output or stdout.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")

	catalog, closeCatalog, err := r.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeCatalog()

	songs, err := catalog.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteExport(format, songs, output); err != nil {
			return err
		}
		r.logger.Info("catalog exported", "format", format, "path", output, "songs", len(songs))
		return nil
	}

	data, err := formatter.Export(format, songs)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
