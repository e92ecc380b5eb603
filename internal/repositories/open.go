package repositories

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Catalog is an open song store together with the connection that backs it.
type Catalog struct {
	models.SongRepository
	Driver string
	closer func(ctx context.Context) error
}

// Close releases the underlying connection.
func (c *Catalog) Close(ctx context.Context) error {
	if c.closer == nil {
		return nil
	}
	return c.closer(ctx)
}

// Open connects to the store selected by cfg.Catalog.Driver.
//
// SQLite catalogs are migrated on open. MongoDB catalogs get their lookup index.
// Connection failures wrap [shared.ErrConnection].
func Open(ctx context.Context, cfg *shared.Config, logger *log.Logger) (*Catalog, error) {
	switch cfg.Catalog.Driver {
	case shared.DriverSQLite:
		return openSQLite(cfg, logger)
	case shared.DriverMongo, "":
		return openMongo(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("%w: unknown catalog driver %q", shared.ErrInvalidConfig, cfg.Catalog.Driver)
	}
}

func openSQLite(cfg *shared.Config, logger *log.Logger) (*Catalog, error) {
	logger.Debug("opening sqlite catalog", "path", cfg.Database.Path)

	db, err := shared.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Catalog{
		SongRepository: NewSongRepository(db),
		Driver:         shared.DriverSQLite,
		closer:         func(context.Context) error { return db.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *shared.Config, logger *log.Logger) (*Catalog, error) {
	logger.Debug("connecting to mongo catalog", "host", cfg.Mongo.Host, "port", cfg.Mongo.Port, "database", cfg.Mongo.Database)

	client, err := shared.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}

	repo := NewMongoSongRepository(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
	if name, err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn("could not create song index", "error", err)
	} else {
		logger.Debug("song index ready", "name", name)
	}

	return &Catalog{
		SongRepository: repo,
		Driver:         shared.DriverMongo,
		closer:         client.Disconnect,
	}, nil
}
