package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

const songColumns = "id, sequence, title, artist, link, created_at, updated_at"

// SongRepository implements [models.SongRepository] on SQLite.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new [SongRepository] with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// FindAll lists live songs in insertion order
func (r *SongRepository) FindAll(ctx context.Context) ([]models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL ORDER BY sequence ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, *song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// FindByKey retrieves a live song by title and artist
func (r *SongRepository) FindByKey(ctx context.Context, title, artist string) (*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE title = ? AND artist = ? AND deleted_at IS NULL`

	song, err := scanSong(r.db.QueryRowContext(ctx, query, title, artist))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s by %s", shared.ErrSongNotFound, title, artist)
	}
	if err != nil {
		return nil, err
	}
	return song, nil
}

// Upsert inserts song with a generated ID and sequence, or updates the link of the live song with the same key.
//
// song.ID is set to the stored row's ID either way.
func (r *SongRepository) Upsert(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	existing, err := r.FindByKey(ctx, song.Title, song.Artist)
	switch {
	case err == nil:
		return r.update(ctx, existing.ID, song)
	case errors.Is(err, shared.ErrSongNotFound):
		return r.insert(ctx, song)
	default:
		return err
	}
}

func (r *SongRepository) insert(ctx context.Context, song *models.Song) error {
	sequence, err := NextSequence(ctx, r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	id := shared.GenerateID()

	query := `
		INSERT INTO songs (id, sequence, title, artist, link, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, id, sequence, song.Title, song.Artist, song.Link, now, now); err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	song.ID = id
	song.CreatedAt = now
	song.UpdatedAt = now
	return nil
}

func (r *SongRepository) update(ctx context.Context, id string, song *models.Song) error {
	now := time.Now()

	query := `
		UPDATE songs
		SET link = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, song.Link, now, id)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: song not found or already deleted: %s", shared.ErrSongNotFound, id)
	}

	song.ID = id
	song.UpdatedAt = now
	return nil
}

// DeleteByKey soft-deletes the live song with the given title and artist
func (r *SongRepository) DeleteByKey(ctx context.Context, title, artist string) error {
	query := `
		UPDATE songs
		SET deleted_at = ?
		WHERE title = ? AND artist = ? AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), title, artist)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s by %s not found or already deleted", shared.ErrSongNotFound, title, artist)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (*models.Song, error) {
	var (
		song     models.Song
		sequence int
	)

	err := row.Scan(&song.ID, &sequence, &song.Title, &song.Artist, &song.Link, &song.CreatedAt, &song.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	return &song, nil
}
