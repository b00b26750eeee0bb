package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable name (RT_PORT, ...)
const Prefix = "RT"

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	Workers        int    `envconfig:"WORKERS" default:"0"`
	TileSize       int    `envconfig:"TILE_SIZE" default:"32"`
	OutputDir      string `envconfig:"OUTPUT_DIR" default:"output"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	MaxPixels      int    `envconfig:"MAX_PIXELS" default:"4000000"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:*,127.0.0.1:*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%s_WORKERS must not be negative, got %d", Prefix, cfg.Workers)
	}
	if cfg.TileSize <= 0 {
		return nil, fmt.Errorf("%s_TILE_SIZE must be positive, got %d", Prefix, cfg.TileSize)
	}
	if cfg.MaxPixels <= 0 {
		return nil, fmt.Errorf("%s_MAX_PIXELS must be positive, got %d", Prefix, cfg.MaxPixels)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}

// Origins splits AllowedOrigins into websocket origin patterns
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ParseLogLevel accepts debug, info, warn or error
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
