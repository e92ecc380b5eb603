package shared

import (
	_ "embed"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"

	PlayerModeBrowser = "browser"
	PlayerModeCommand = "command"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Mongo    MongoConfig    `toml:"mongo"`
	Player   PlayerConfig   `toml:"player"`
	Log      LogConfig      `toml:"log"`
}

// CatalogConfig selects the backing store of the song catalog.
type CatalogConfig struct {
	Driver string `toml:"driver" validate:"oneof=mongo sqlite"`
}

// DatabaseConfig contains SQLite connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" validate:"required"`
	MaxOpenConns int    `toml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `toml:"max_idle_conns" validate:"gte=0"`
}

// MongoConfig contains MongoDB connection settings.
type MongoConfig struct {
	URI                   string `toml:"uri"`
	Host                  string `toml:"host" validate:"required_without=URI"`
	Port                  int    `toml:"port" validate:"gte=0,lte=65535"`
	Username              string `toml:"username"`
	Password              string `toml:"password"`
	Database              string `toml:"database" validate:"required"`
	Collection            string `toml:"collection" validate:"required"`
	ConnectTimeoutSeconds int    `toml:"connect_timeout_seconds" validate:"gte=0"`
}

// PlayerConfig contains playback settings.
type PlayerConfig struct {
	Mode    string   `toml:"mode" validate:"oneof=browser command"`
	Command string   `toml:"command" validate:"required_if=Mode command"`
	Args    []string `toml:"args"`
	GapMS   int      `toml:"gap_ms" validate:"gte=0"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults; environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.OverrideFromEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// OverrideFromEnv replaces connection settings with KARAOKE_* environment variables when they are set.
func (c *Config) OverrideFromEnv() {
	if v := os.Getenv("KARAOKE_CATALOG_DRIVER"); v != "" {
		c.Catalog.Driver = v
	}
	if v := os.Getenv("KARAOKE_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("KARAOKE_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("KARAOKE_MONGO_USERNAME"); v != "" {
		c.Mongo.Username = v
	}
	if v := os.Getenv("KARAOKE_MONGO_PASSWORD"); v != "" {
		c.Mongo.Password = v
	}
}

// Validate checks struct constraints and wraps failures with [ErrInvalidConfig].
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ConnectionURI returns the MongoDB connection string, building one from host and credentials when no URI is configured.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(m.Host, strconv.Itoa(m.Port)),
	}
	if m.Username != "" {
		u.User = url.UserPassword(m.Username, m.Password)
	}
	return u.String()
}

// ConnectTimeout returns the connect timeout as a [time.Duration], defaulting to ten seconds.
func (m MongoConfig) ConnectTimeout() time.Duration {
	if m.ConnectTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(m.ConnectTimeoutSeconds) * time.Second
}

// Gap returns the pause between consecutive playlist launches.
func (p PlayerConfig) Gap() time.Duration {
	return time.Duration(p.GapMS) * time.Millisecond
}
