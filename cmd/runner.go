package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/repositories"
	"github.com/desertthunder/jukebox/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    models.SongRepository
	launcher   player.Launcher
	logger     *log.Logger
	input      io.Reader
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Catalog and Launcher are normally built from the configuration; setting them bypasses that.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    models.SongRepository
	Launcher   player.Launcher
	Logger     *log.Logger
	Input      io.Reader
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		launcher:   opts.Launcher,
		logger:     opts.Logger,
		input:      opts.Input,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){setupCommand, songsCommand, browseCommand} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Configure loads the configuration named by --config before any command runs.
//
// A missing file falls back to the embedded defaults; an invalid one is an error.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	config, err := r.loadConfig()
	if err != nil {
		return ctx, err
	}
	r.config = config

	shared.SetLogLevel(r.logger, config.Log.Level)
	if cmd.Bool("debug") {
		r.logger.SetLevel(log.DebugLevel)
	}
	return ctx, nil
}

func (r *Runner) loadConfig() (*shared.Config, error) {
	if r.configPath != "" {
		config, err := shared.LoadConfig(r.configPath)
		if err == nil {
			r.logger.Debug("loaded config", "path", r.configPath)
			return config, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}

	config := shared.DefaultConfig()
	config.OverrideFromEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// openCatalog returns the injected catalog or connects to the configured store.
//
// The returned function releases the connection.
func (r *Runner) openCatalog(ctx context.Context) (models.SongRepository, func(), error) {
	if r.catalog != nil {
		return r.catalog, func() {}, nil
	}

	catalog, err := repositories.Open(ctx, r.config, r.logger)
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		if err := catalog.Close(context.Background()); err != nil {
			r.logger.Warn("failed to close catalog", "error", err)
		}
	}
	return catalog, closer, nil
}

// newPlayer builds a [player.Player] from the player configuration, announcing playback on out.
func (r *Runner) newPlayer(out io.Writer) (*player.Player, error) {
	launcher := r.launcher
	if launcher == nil {
		l, err := player.NewLauncher(r.config.Player)
		if err != nil {
			return nil, err
		}
		if cl, ok := l.(*player.CommandLauncher); ok {
			cl.Stderr = os.Stderr
		}
		launcher = l
	}

	return player.New(player.Options{
		Launcher: launcher,
		Gap:      r.config.Player.Gap(),
		Output:   out,
		Logger:   r.logger,
	}), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
