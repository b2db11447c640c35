package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadJewels loads the jewels configuration.
// Search order: customPath -> ~/.jewels/configs/jewels.yaml -> ./configs/jewels.yaml -> embedded default
//
// Files are layered over the defaults, so a file only needs the keys it
// changes. An explicit customPath that fails to read, parse or validate is
// an error; the other locations are skipped when unusable.
func LoadJewels(customPath string) (JewelsConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return JewelsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseJewels(data)
		if err != nil {
			return JewelsConfig{}, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("jewels.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseJewels(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "jewels.yaml")); err == nil {
		if cfg, err := parseJewels(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseJewels(defaultJewelsYAML)
	if err != nil {
		return DefaultJewelsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseJewels(data []byte) (JewelsConfig, error) {
	cfg := DefaultJewelsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return JewelsConfig{}, fmt.Errorf("parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return JewelsConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jewels", "configs", filename)
}
