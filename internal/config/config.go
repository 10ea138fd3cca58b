// Package config holds editor settings persisted as TOML beside the store.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// DefaultZoom is applied to newly created projects.
	DefaultZoom float64 `toml:"default_zoom"`
	// PreviewFPS is the interactive playback tick rate.
	PreviewFPS int `toml:"preview_fps"`
	// ExportFPS is the frame rate of the export loop.
	ExportFPS int `toml:"export_fps"`
	// Theme selects "dark", "light" or "" (auto-detect).
	Theme string `toml:"theme"`
}

func Default() Config {
	return Config{
		DefaultZoom: 1,
		PreviewFPS:  30,
		ExportFPS:   60,
	}
}

func path(dir string) string {
	return filepath.Join(dir, "config.toml")
}

// Load reads config.toml from the store dir, falling back to defaults when
// the file is absent. Unknown keys are ignored; zero values fall back
// field by field so a partial file still works.
func Load(dir string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	var loaded Config
	if err := toml.Unmarshal(b, &loaded); err != nil {
		return cfg, err
	}
	if loaded.DefaultZoom > 0 {
		cfg.DefaultZoom = loaded.DefaultZoom
	}
	if loaded.PreviewFPS > 0 {
		cfg.PreviewFPS = loaded.PreviewFPS
	}
	if loaded.ExportFPS > 0 {
		cfg.ExportFPS = loaded.ExportFPS
	}
	if loaded.Theme != "" {
		cfg.Theme = loaded.Theme
	}
	return cfg, nil
}

func Save(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path(dir), b, 0o644)
}
