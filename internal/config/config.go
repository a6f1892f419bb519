package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "todoql.toml"

// Server modes.
const (
	ModeStandalone = "standalone"
	ModeEmbedded   = "embedded"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Duration is a time.Duration that reads and writes as a string like "5s".
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("duration must be like 5s or 1m: %w", err)
	}
	*d = Duration(v)
	return nil
}

// SetValue lets cleanenv fill a Duration from the environment.
func (d *Duration) SetValue(s string) error {
	return d.UnmarshalText([]byte(s))
}

// Config holds the todoql configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig controls how the GraphQL API is exposed.
type ServerConfig struct {
	Mode            string   `toml:"mode" env:"TODOQL_MODE"`
	Port            int      `toml:"port" env:"PORT"`
	GraphQLPath     string   `toml:"graphql_path" env:"TODOQL_GRAPHQL_PATH"`
	StaticDir       string   `toml:"static_dir" env:"TODOQL_STATIC_DIR"`
	CORSOrigins     []string `toml:"cors_origins" env:"TODOQL_CORS_ORIGINS" env-separator:","`
	ShutdownTimeout Duration `toml:"shutdown_timeout" env:"TODOQL_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects and locates the backing store.
type DatabaseConfig struct {
	Driver      string `toml:"driver" env:"DATABASE_DRIVER"`
	URL         string `toml:"url" env:"DATABASE_URL"`
	AutoMigrate bool   `toml:"auto_migrate" env:"TODOQL_AUTO_MIGRATE"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL"`
	Format string `toml:"format" env:"LOG_FORMAT"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Mode:            ModeEmbedded,
			Port:            4000,
			GraphQLPath:     "/graphql",
			StaticDir:       "public",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Database: DatabaseConfig{
			Driver:      DriverSQLite,
			URL:         "todoql.db",
			AutoMigrate: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatConsole,
		},
	}
}

// Load reads configuration from the given file and applies environment
// overrides. Returns the defaults (plus overrides) if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading env: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills values a partial config file left empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.GraphQLPath == "" {
		c.Server.GraphQLPath = def.Server.GraphQLPath
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = def.Server.CORSOrigins
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.URL == "" && c.Database.Driver == DriverSQLite {
		c.Database.URL = def.Database.URL
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Save writes the configuration to the given file.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case ModeStandalone, ModeEmbedded:
	default:
		return fmt.Errorf("server.mode: unknown mode %q (want %s or %s)", c.Server.Mode, ModeStandalone, ModeEmbedded)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	if !strings.HasPrefix(c.Server.GraphQLPath, "/") {
		return fmt.Errorf("server.graphql_path: %q must start with /", c.Server.GraphQLPath)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("database.driver: unknown driver %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
