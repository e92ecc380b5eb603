package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

const (
	fieldID     = "_id"
	fieldTitle  = "title"
	fieldArtist = "artist"
	fieldLink   = "youtube"
)

// songDocument is the stored shape of a song in the "songs" collection.
type songDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Artist string             `bson:"artist"`
	Link   string             `bson:"youtube"`
}

func (d songDocument) song() models.Song {
	s := models.Song{Title: d.Title, Artist: d.Artist, Link: d.Link}
	if !d.ID.IsZero() {
		s.ID = d.ID.Hex()
	}
	return s
}

// MongoSongRepository implements [models.SongRepository] on a MongoDB collection.
type MongoSongRepository struct {
	collection *mongo.Collection
}

// NewMongoSongRepository creates a new [MongoSongRepository] over the given collection
func NewMongoSongRepository(collection *mongo.Collection) *MongoSongRepository {
	return &MongoSongRepository{collection: collection}
}

// EnsureIndexes creates the (artist, title) lookup index used by key queries.
func (r *MongoSongRepository) EnsureIndexes(ctx context.Context) (string, error) {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: fieldArtist, Value: 1}, {Key: fieldTitle, Value: 1}},
		Options: options.Index().SetDefaultLanguage("english"),
	}

	name, err := r.collection.Indexes().CreateOne(ctx, model)
	if err != nil {
		return "", fmt.Errorf("failed to create song index: %w", err)
	}
	return name, nil
}

// FindAll lists every song in natural collection order
func (r *MongoSongRepository) FindAll(ctx context.Context) ([]models.Song, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []songDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode songs: %w", err)
	}

	songs := make([]models.Song, 0, len(docs))
	for _, doc := range docs {
		songs = append(songs, doc.song())
	}
	return songs, nil
}

// FindByKey retrieves the song with the given title and artist
func (r *MongoSongRepository) FindByKey(ctx context.Context, title, artist string) (*models.Song, error) {
	var doc songDocument
	err := r.collection.FindOne(ctx, keyFilter(title, artist)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s by %s", shared.ErrSongNotFound, title, artist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query song: %w", err)
	}

	song := doc.song()
	return &song, nil
}

// Upsert replaces the document keyed on (artist, title), inserting it when missing.
//
// song.ID is set when the server reports a newly inserted document.
func (r *MongoSongRepository) Upsert(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	doc := songDocument{Title: song.Title, Artist: song.Artist, Link: song.Link}
	opts := options.Replace().SetUpsert(true)

	result, err := r.collection.ReplaceOne(ctx, keyFilter(song.Title, song.Artist), doc, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert song: %w", err)
	}

	if id, ok := result.UpsertedID.(primitive.ObjectID); ok {
		song.ID = id.Hex()
	}
	return nil
}

// DeleteByKey removes the song with the given title and artist
func (r *MongoSongRepository) DeleteByKey(ctx context.Context, title, artist string) error {
	result, err := r.collection.DeleteOne(ctx, keyFilter(title, artist))
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s by %s", shared.ErrSongNotFound, title, artist)
	}
	return nil
}

func keyFilter(title, artist string) bson.D {
	return bson.D{{Key: fieldArtist, Value: artist}, {Key: fieldTitle, Value: title}}
}
