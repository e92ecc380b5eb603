// Package repositories implements the [models.SongRepository] catalog contract for the supported stores.
//
//   - [SongRepository] : SQLite persistence with soft deletes and per-table sequence ordering
//   - [MongoSongRepository] : the "songs" collection of a MongoDB database
//
// Both stores key songs on (title, artist) and report missing songs with [shared.ErrSongNotFound].
// [Open] picks the store named by the configuration.
package repositories
