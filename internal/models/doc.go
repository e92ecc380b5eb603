// Package models defines the song catalog entities and the persistence contract shared by every catalog store.
//
//   - [Song] : a playable catalog entry identified by its title and artist
//   - [SongRepository] : the canonical catalog contract implemented by the SQLite and MongoDB stores
//
// Songs are values. Two songs with the same [Song.Key] are the same song regardless of store-assigned IDs.
package models
