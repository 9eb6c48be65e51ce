// Package config loads gather's TOML source list and environment-derived
// runtime settings.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed example_config.toml
var exampleConfig string

// Config represents the merged file and environment configuration.
type Config struct {
	Sources  []SourceConfig
	Fetch    FetchConfig
	Logging  LoggingConfig
	Database DatabaseConfig
}

// SourceConfig is one configured feed endpoint. Names are unique and
// non-empty, URLs well-formed HTTP(S); validation enforces this before any
// source is constructed, so downstream code does not re-check.
type SourceConfig struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// FetchConfig holds fetch cycle parameters.
type FetchConfig struct {
	Timeout     time.Duration
	MaxInFlight int
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// DatabaseConfig holds the optional Postgres persistence settings. An empty
// URL disables persistence.
type DatabaseConfig struct {
	URL        string
	ServiceKey string
}

const (
	defaultTimeout   = 10 * time.Second
	defaultLogFormat = "text"
)

// fileConfig mirrors the on-disk TOML layout.
type fileConfig struct {
	Sources struct {
		RSS []SourceConfig `toml:"rss"`
	} `toml:"sources"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".gather", "config.toml")
	}
	return filepath.Join(home, ".gather", "config.toml")
}

// Load reads the TOML config at path, creating a commented example on first
// run when path is the default location, then applies environment overrides.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == DefaultPath() {
		if err := WriteExample(path); err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config at %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config at %s: %w", path, err)
	}

	cfg := Config{
		Sources: fc.Sources.RSS,
		Fetch: FetchConfig{
			Timeout: defaultTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
	}

	if err := validateSources(cfg.Sources); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WriteExample writes the embedded example config to path. The file holds
// nothing secret today, but sources can reveal reading habits, so it is
// created owner-readable only.
func WriteExample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write example config to %s: %w", path, err)
	}
	return nil
}

func validateSources(sources []SourceConfig) error {
	seen := make(map[string]struct{}, len(sources))

	for _, src := range sources {
		name := strings.TrimSpace(src.Name)
		if name == "" {
			return fmt.Errorf("source name cannot be empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate source name: %s", name)
		}
		seen[name] = struct{}{}

		u, err := url.Parse(src.URL)
		if err != nil {
			return fmt.Errorf("invalid URL %q for source %s: %w", src.URL, name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid URL scheme %q for source %s: only http and https are supported", u.Scheme, name)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid URL %q for source %s: missing host", src.URL, name)
		}
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("GATHER_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("invalid GATHER_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Fetch.Timeout = d
	}

	if v := os.Getenv("GATHER_MAX_IN_FLIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid GATHER_MAX_IN_FLIGHT: %q", v)
		}
		cfg.Fetch.MaxInFlight = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return err
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.ServiceKey = os.Getenv("DATABASE_SERVICE_KEY")

	return nil
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", value)
	}
}
