package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 8080 || cfg.Workers != 0 || cfg.TileSize != 32 || cfg.OutputDir != "output" || cfg.MaxPixels != 4000000 {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.SlogLevel())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("RT_PORT", "9090")
	t.Setenv("RT_WORKERS", "3")
	t.Setenv("RT_TILE_SIZE", "16")
	t.Setenv("RT_LOG_LEVEL", "debug")
	t.Setenv("RT_ALLOWED_ORIGINS", "example.com, localhost:3000 ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != 9090 || cfg.Workers != 3 || cfg.TileSize != 16 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", cfg.SlogLevel())
	}
	origins := cfg.Origins()
	if len(origins) != 2 || origins[0] != "example.com" || origins[1] != "localhost:3000" {
		t.Errorf("Unexpected origins %v", origins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-numeric port", "RT_PORT", "http"},
		{"negative workers", "RT_WORKERS", "-1"},
		{"zero tile size", "RT_TILE_SIZE", "0"},
		{"zero pixel limit", "RT_MAX_PIXELS", "0"},
		{"unknown log level", "RT_LOG_LEVEL", "chatty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
