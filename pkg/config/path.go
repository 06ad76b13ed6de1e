package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"
)

//go:embed config.yaml
var defaultConfigYAML []byte

// DefaultYAML returns the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultConfigYAML...)
}

// GetPath returns the user config path, preferring $XDG_CONFIG_HOME, then
// ~/.config, then the temp dir.
func GetPath() string {
	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdg != "" {
		return filepath.Join(xdg, "pagewin", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "pagewin", "config.yaml")
	}

	tmp := filepath.Join(os.TempDir(), "pagewin", "config.yaml")

	slog.Warn("could not determine user config directory, using temp path for config",
		slog.String("path", tmp),
		slog.Any("error", err),
	)

	return tmp
}

// WriteDefaultConfig writes the embedded default config to path. An existing
// file is kept unless force is set, in which case it is renamed to a
// timestamped backup first.
func WriteDefaultConfig(path string, force bool) error {
	exists := false

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%s: path is a directory", path)
	case err == nil && info.Mode().IsRegular():
		exists = true
	case err == nil:
		return fmt.Errorf("%s: unknown file state", path)
	}

	if exists && !force {
		slog.Debug("configuration file already exists, skipping write", slog.String("path", path))
		return nil
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists {
		backup := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())
		slog.Info("backing up existing config file", slog.String("path", backup))

		err = os.Rename(path, backup)
		if err != nil {
			return fmt.Errorf("back up config file: %w", err)
		}
	}

	slog.Info("write default configuration", slog.String("path", path))

	err = os.WriteFile(path, defaultConfigYAML, 0o600)
	if err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
