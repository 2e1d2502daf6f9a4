package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// AppName names the config directory and the in-vault state directory.
const AppName = "note-connections"

// Config holds all note-connections configuration.
type Config struct {
	VaultPath  string `toml:"vault_path"`
	SampleSize int    `toml:"sample_size"`

	API     APIConfig     `toml:"api"`
	Open    OpenConfig    `toml:"open"`
	Archive ArchiveConfig `toml:"archive"`
}

type APIConfig struct {
	// BaseURL of an OpenAI-compatible endpoint; /chat/completions is appended.
	BaseURL string `toml:"base_url"`
}

type OpenConfig struct {
	// Command receives the obsidian:// URI of the new report. Empty disables opening.
	Command string `toml:"command"`
}

type ArchiveConfig struct {
	Enabled  bool `toml:"enabled"`
	Compress bool `toml:"compress"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		VaultPath:  "~/obsidian",
		SampleSize: 10,
		API: APIConfig{
			BaseURL: "https://api.openai.com/v1",
		},
		Open: OpenConfig{
			Command: defaultOpenCommand(),
		},
		Archive: ArchiveConfig{
			Enabled:  true,
			Compress: true,
		},
	}
}

func defaultOpenCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return ""
	default:
		return "xdg-open"
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	cfg.VaultPath = expandHome(cfg.VaultPath)
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultConfig().API.BaseURL
	}
	if cfg.SampleSize <= 0 {
		cfg.SampleSize = DefaultConfig().SampleSize
	}

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, AppName, "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", AppName, "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// StateDir returns the .note-connections state directory inside the vault.
func (c Config) StateDir() string {
	return filepath.Join(c.VaultPath, "."+AppName)
}

// RunsDir returns the directory holding archived run records.
func (c Config) RunsDir() string {
	return filepath.Join(c.StateDir(), "runs")
}
