package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable consulted when no --config flag
// is given.
const EnvConfig = "BLACKJACK_CONFIG"

// Load builds the configuration from defaults, the config file and the
// command line, in increasing priority, and validates the result.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom is Load with an explicit config file. An empty path searches
// the standard locations; finding nothing there is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing file among $BLACKJACK_CONFIG,
// ./blackjack.yaml, ./config.yaml and the user config directory.
func findConfigFile() string {
	candidates := []string{
		os.Getenv(EnvConfig),
		"blackjack.yaml",
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for this OS.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Blackjack")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Blackjack")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "blackjack")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "blackjack")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelled light or entity field is reported instead of ignored. An empty
// file leaves cfg untouched.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}
