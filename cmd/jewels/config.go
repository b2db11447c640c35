package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jewels/internal/config"
)

// loadConfig reads the configuration and applies a --difficulty preset.
func loadConfig(path, preset string) (config.JewelsConfig, error) {
	cfg, err := config.LoadJewels(path)
	if err != nil {
		return config.JewelsConfig{}, err
	}
	if preset != "" {
		p, err := config.ParsePreset(preset)
		if err != nil {
			return config.JewelsConfig{}, err
		}
		config.ApplyJewelsPreset(&cfg, p)
	}
	return cfg, nil
}

// fileLogger returns a logger writing to ~/.jewels/jewels.log, keeping the
// terminal free for the game. The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".jewels")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "jewels.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	return logger, func() { f.Close() }
}
