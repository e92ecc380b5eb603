package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/repositories"
	"github.com/desertthunder/jukebox/internal/shared"
)

// SetupDatabase prepares the configured catalog store.
//
// SQLite databases are migrated, MongoDB collections get their lookup index.
// A config file is created from the template first when none exists.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if r.configPath != "" {
		if err := shared.CreateConfigFile(r.configPath); err == nil {
			r.logger.Info("config file created", "path", r.configPath)
		} else {
			r.logger.Debug("keeping existing config file", "path", r.configPath)
		}
	}

	switch r.config.Catalog.Driver {
	case shared.DriverSQLite:
		return r.setupSQLite()
	default:
		return r.setupMongo(ctx)
	}
}

func (r *Runner) setupSQLite() error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	pending, err := shared.PendingMigrations(db)
	if err != nil {
		return err
	}

	r.logger.Info("running database migrations", "pending", len(pending))
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return r.writePlain("✓ SQLite catalog ready at %s (%d migrations applied)\n", r.config.Database.Path, len(pending))
}

func (r *Runner) setupMongo(ctx context.Context) error {
	r.logger.Info("connecting to mongo", "host", r.config.Mongo.Host, "database", r.config.Mongo.Database)

	client, err := shared.NewMongoClient(ctx, r.config.Mongo)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	coll := client.Database(r.config.Mongo.Database).Collection(r.config.Mongo.Collection)
	name, err := repositories.NewMongoSongRepository(coll).EnsureIndexes(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("setup complete", "collection", r.config.Mongo.Collection, "index", name)
	return r.writePlain("✓ MongoDB catalog ready: %s.%s (index %s)\n", r.config.Mongo.Database, r.config.Mongo.Collection, name)
}

// SetupConfig writes the template configuration to --output or the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		return fmt.Errorf("%w: no config path given", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Configuration written to %s\n", path)
}

// SetupRollback rolls back the latest SQLite migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	if r.config.Catalog.Driver != shared.DriverSQLite {
		return fmt.Errorf("%w: rollback only applies to the sqlite catalog", shared.ErrUnsupported)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}
	return r.writePlain("✓ Rolled back the latest migration\n")
}
