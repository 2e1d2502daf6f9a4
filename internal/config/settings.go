package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings is the record edited from the settings panel.
// APIKey is opaque: it is never checked for shape, only for presence.
type Settings struct {
	APIKey string `toml:"api_key"`
}

// DefaultSettings returns the record used when nothing has been persisted.
func DefaultSettings() Settings {
	return Settings{APIKey: ""}
}

// ParseSettings decodes a persisted blob over DefaultSettings.
// A nil or empty blob yields the defaults.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if _, err := toml.Decode(string(data), &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// EncodeSettings serializes s for persistence.
func EncodeSettings(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return buf.Bytes(), nil
}
