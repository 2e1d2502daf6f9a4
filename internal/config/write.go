package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the note-connections config directory path.
// Uses $XDG_CONFIG_HOME/note-connections if set, otherwise ~/.config/note-connections.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path of config.toml inside ConfigDir.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// SettingsPath returns the path of the persisted plugin settings blob.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.toml")
}

// WriteDefault writes a default config.toml pointing to vaultPath.
// Returns the config file path and "created" or "exists".
// An existing config.toml is never modified.
func WriteDefault(vaultPath string) (string, string, error) {
	path := ConfigPath()

	if _, err := os.Stat(path); err == nil {
		return path, "exists", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", "", fmt.Errorf("create config dir: %w", err)
	}

	def := DefaultConfig()
	content := fmt.Sprintf(`vault_path = %q
sample_size = %d

[api]
base_url = %q

[open]
command = %q

[archive]
enabled = true
compress = true
`, CompressHome(vaultPath), def.SampleSize, def.API.BaseURL, def.Open.Command)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", "", fmt.Errorf("write config: %w", err)
	}

	return path, "created", nil
}

// CompressHome replaces $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
