package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the optional TOML configuration for the CLI. Flags override
// config values, config values override defaults.
type Config struct {
	OCR     OCRConfig     `toml:"ocr"`
	Links   LinksConfig   `toml:"links"`
	History HistoryConfig `toml:"history"`
}

// OCRConfig controls image recognition.
type OCRConfig struct {
	Language string `toml:"language"`
}

// LinksConfig controls link report persistence.
type LinksConfig struct {
	Save      bool   `toml:"save"`
	OutputDir string `toml:"output_dir"`
}

// HistoryConfig points at the SQLite extraction history.
type HistoryConfig struct {
	Path string `toml:"path"`
}

const defaultConfigPath = "scriba.toml"

func defaultConfig() Config {
	return Config{
		OCR:   OCRConfig{Language: "eng"},
		Links: LinksConfig{Save: true},
	}
}

// loadConfig reads defaults, then the TOML file, then environment
// overrides. A missing file at the default path is fine; a file named
// explicitly must exist and parse.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case explicit:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if v := os.Getenv("SCRIBA_OCR_LANGUAGE"); v != "" {
		cfg.OCR.Language = v
	}
	if v := os.Getenv("SCRIBA_LINKS_DIR"); v != "" {
		cfg.Links.OutputDir = v
	}
	if v := os.Getenv("SCRIBA_HISTORY_DB"); v != "" {
		cfg.History.Path = v
	}
	return cfg, nil
}
