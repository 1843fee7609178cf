package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds everything tunable about the client. Every field has a
// default; the config file only overrides.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
	Origin  *OriginConfig `toml:"origin"`
}

type ServerConfig struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"` // e.g. "15s"
}

type HistoryConfig struct {
	Path    string `toml:"path"`
	Enabled bool   `toml:"enabled"`
}

type LoggingConfig struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

// OriginConfig is the user's reference point for distance annotations on
// nearby results. Optional: without it nearby results render without
// distances.
type OriginConfig struct {
	Lat float64 `toml:"lat"`
	Lng float64 `toml:"lng"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: "15s",
		},
		History: HistoryConfig{
			Path:    filepath.Join(configDir(), "history.db"),
			Enabled: true,
		},
		Logging: LoggingConfig{
			File: filepath.Join(configDir(), "placefind.log"),
		},
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// RequestTimeout parses the server timeout, falling back to the default when
// unset or unparseable.
func (c Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

func configDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "placefind")
}
