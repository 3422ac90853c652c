// Package config loads host settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/younisbosefi/younosomy/internal/atlas"
	"github.com/younisbosefi/younosomy/internal/persistence"
	"github.com/younisbosefi/younosomy/internal/state"
)

// PathEnv names the variable holding the config file path.
const PathEnv = "NATIONSIM_CONFIG"

type Config struct {
	Country string `yaml:"country" env:"NATIONSIM_COUNTRY"`
	Years   int    `yaml:"years" env:"NATIONSIM_YEARS"`
	// Seed 0 draws a fresh seed from the system.
	Seed     int64         `yaml:"seed" env:"NATIONSIM_SEED"`
	Speed    int           `yaml:"speed" env:"NATIONSIM_SPEED"`
	Interval time.Duration `yaml:"interval" env:"NATIONSIM_INTERVAL"`
	// MaxDays stops a headless run after that many simulated days; 0 plays
	// the whole term.
	MaxDays      int    `yaml:"max_days" env:"NATIONSIM_MAX_DAYS"`
	AutosaveDays int    `yaml:"autosave_days" env:"NATIONSIM_AUTOSAVE_DAYS"`
	Resume       bool   `yaml:"resume" env:"NATIONSIM_RESUME"`
	LogLevel     string `yaml:"log_level" env:"NATIONSIM_LOG_LEVEL"`
	// Autopilot answers prompts and manages the economy. Turn it off to
	// play through the API.
	Autopilot bool `yaml:"autopilot" env:"NATIONSIM_AUTOPILOT"`

	DB  DB  `yaml:"db"`
	API API `yaml:"api"`

	RandomOrgKey string `yaml:"random_org_key" env:"RANDOM_ORG_API_KEY"`
}

type DB struct {
	Dialect     persistence.Dialect `yaml:"dialect" env:"DB_DIALECT"`
	SQLitePath  string              `yaml:"sqlite_path" env:"DB_SQLITE_PATH"`
	PostgresDSN string              `yaml:"postgres_dsn" env:"DB_POSTGRES_DSN"`
}

// API configures the HTTP control surface. Port 0 disables it.
type API struct {
	Port     int    `yaml:"port" env:"NATIONSIM_API_PORT"`
	AdminKey string `yaml:"admin_key" env:"NATIONSIM_ADMIN_KEY"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Country:      "usa",
		Years:        5,
		Speed:        1,
		Interval:     time.Second,
		AutosaveDays: 30,
		Resume:       true,
		LogLevel:     "info",
		Autopilot:    true,
		DB: DB{
			Dialect:    persistence.SQLite,
			SQLitePath: "data/nationsim.db",
		},
	}
}

// Load reads the file at path over the defaults when path is not empty,
// then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv loads the file named by NATIONSIM_CONFIG, if set.
func FromEnv() (Config, error) {
	return Load(os.Getenv(PathEnv))
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, ok := atlas.Lookup(c.Country); !ok {
		errs = append(errs, fmt.Errorf("unknown country %q", c.Country))
	}
	if !state.ValidYears(c.Years) {
		errs = append(errs, fmt.Errorf("years %d: must be one of %v", c.Years, state.GameLengths))
	}
	if c.Speed != 1 && c.Speed != 3 {
		errs = append(errs, fmt.Errorf("speed %d: must be 1 or 3", c.Speed))
	}
	if c.Interval < 0 {
		errs = append(errs, errors.New("interval must not be negative"))
	}
	if c.MaxDays < 0 {
		errs = append(errs, errors.New("max_days must not be negative"))
	}
	if c.AutosaveDays < 0 {
		errs = append(errs, errors.New("autosave_days must not be negative"))
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api port %d out of range", c.API.Port))
	}
	if !c.Autopilot && c.API.Port == 0 {
		errs = append(errs, errors.New("autopilot off needs api.port to play"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch c.DB.Dialect {
	case persistence.SQLite:
		if c.DB.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite dialect needs db.sqlite_path"))
		}
	case persistence.Postgres:
		if c.DB.PostgresDSN == "" {
			errs = append(errs, errors.New("postgres dialect needs db.postgres_dsn"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported db dialect %q", c.DB.Dialect))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// DSN returns the connection string for the configured dialect.
func (c Config) DSN() string {
	if c.DB.Dialect == persistence.Postgres {
		return c.DB.PostgresDSN
	}
	return c.DB.SQLitePath
}
