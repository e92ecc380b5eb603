// package formatter converts the song catalog to and from exchange formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatJSON     = "json"
)

// Formats lists the export formats accepted by [Export].
var Formats = []string{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

var csvHeaders = []string{"Title", "Artist", "Link"}

// Export renders songs in the named format.
func Export(format string, songs []models.Song) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(songs)
	case FormatMarkdown, "md":
		return ExportToMarkdown(songs)
	case FormatText, "txt":
		return ExportToText(songs)
	case FormatJSON:
		return ExportToJSON(songs)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// ExportToCSV converts songs to CSV format with columns: Title, Artist, Link
func ExportToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		if err := writer.Write([]string{song.Title, song.Artist, song.Link}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts songs to a Markdown document with one linked entry per song
func ExportToMarkdown(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	artists := lo.Uniq(lo.Map(songs, func(s models.Song, _ int) string { return s.Artist }))

	buf.WriteString("# Karaoke Catalog\n\n")
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n", len(songs)))
	buf.WriteString(fmt.Sprintf("**Artists**: %d\n\n", len(artists)))

	buf.WriteString("## Songs\n\n")
	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. [%s](%s) - %s\n", i+1, song.Title, song.Link, song.Artist))
	}

	return buf.Bytes(), nil
}

// ExportToText converts songs to plain text format
func ExportToText(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(songs)))
	for i, song := range songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n   %s\n", i+1, song.Artist, song.Title, song.Link))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts songs to an indented JSON array
func ExportToJSON(songs []models.Song) ([]byte, error) {
	if songs == nil {
		songs = []models.Song{}
	}

	data, err := json.MarshalIndent(songs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteExport renders songs in format and writes them to path.
func WriteExport(format string, songs []models.Song, path string) error {
	data, err := Export(format, songs)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}

// ParseCSV reads songs from CSV with a header row naming title, artist and link columns.
//
// Header names are case-insensitive and "youtube" is accepted for the link column.
// Blank rows are skipped. When a (title, artist) pair repeats, the last row's link wins.
func ParseCSV(r io.Reader) ([]models.Song, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.Song{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var songs []models.Song
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		if lo.EveryBy(record, func(v string) bool { return strings.TrimSpace(v) == "" }) {
			continue
		}

		song := models.NewSong(field(record, columns["title"]), field(record, columns["artist"]), field(record, columns["link"]))
		if err := song.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		songs = append(songs, *song)
	}

	return dedupe(songs), nil
}

// dedupe keeps the first position of each key with the values of its last occurrence.
func dedupe(songs []models.Song) []models.Song {
	positions := map[models.SongKey]int{}
	result := make([]models.Song, 0, len(songs))
	for _, song := range songs {
		if i, ok := positions[song.Key()]; ok {
			result[i] = song
			continue
		}
		positions[song.Key()] = len(result)
		result = append(result, song)
	}
	return result
}

func mapColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "title":
			columns["title"] = i
		case "artist":
			columns["artist"] = i
		case "link", "youtube", "url":
			columns["link"] = i
		}
	}

	missing := lo.Filter([]string{"title", "artist", "link"}, func(c string, _ int) bool {
		_, ok := columns[c]
		return !ok
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: CSV header is missing %s", shared.ErrInvalidArgument, strings.Join(missing, ", "))
	}
	return columns, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}
