package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/desertthunder/jukebox/internal/shared"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Song is a catalog entry. Link is the media URI handed to the player.
type Song struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title" validate:"required"`
	Artist    string    `json:"artist" validate:"required"`
	Link      string    `json:"link" validate:"required,url"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NewSong creates a [Song] with surrounding whitespace removed from every field.
func NewSong(title, artist, link string) *Song {
	now := time.Now()
	return &Song{
		Title:     strings.TrimSpace(title),
		Artist:    strings.TrimSpace(artist),
		Link:      strings.TrimSpace(link),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Key returns the catalog identity of the song.
func (s Song) Key() SongKey {
	return SongKey{Title: s.Title, Artist: s.Artist}
}

// Same reports whether s and other identify the same catalog entry.
func (s Song) Same(other Song) bool {
	return s.Key() == other.Key()
}

// String renders the song the way the menus list it.
func (s Song) String() string {
	return fmt.Sprintf("%s by %s", s.Title, s.Artist)
}

// Validate checks required fields and the link format.
func (s *Song) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidSong, err)
	}
	return nil
}

// SongKey is the (title, artist) pair that identifies a song.
type SongKey struct {
	Title  string
	Artist string
}

func (k SongKey) String() string {
	return shared.NormalizeKey(k.Title, k.Artist)
}

// SongRepository is the catalog contract.
//
// Implementations return [shared.ErrSongNotFound] (wrapped) when a key has no live song,
// and key [SongRepository.Upsert] on the (title, artist) pair.
type SongRepository interface {
	FindAll(ctx context.Context) ([]Song, error)                        // FindAll lists every song in catalog order
	FindByKey(ctx context.Context, title, artist string) (*Song, error) // FindByKey looks up a single song
	Upsert(ctx context.Context, song *Song) error                       // Upsert inserts the song or replaces the link of an existing one
	DeleteByKey(ctx context.Context, title, artist string) error        // DeleteByKey removes a song
}
