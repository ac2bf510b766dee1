// Package config handles the global cortex configuration file and vault
// path resolution.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/aviaryhq/cortex/internal/atomicfile"
)

// EnvVault overrides the configured vault path when set.
const EnvVault = "CORTEX_VAULT"

// Config is the global cortex configuration.
type Config struct {
	// Vault is the path to the vault directory.
	Vault string `toml:"vault"`

	// Editor is the editor for opening notes (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// Verbosity controls how chatty non-JSON output is: quiet, normal,
	// or verbose.
	Verbosity string `toml:"verbosity"`
}

// Load reads the configuration from the default location. A missing file
// yields an empty config, not an error.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration to the default location, creating the
// config directory if needed.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return atomicfile.WriteFile(path, buf.Bytes(), 0o644)
}

// DefaultPath returns the config file path, preferring the XDG-style
// ~/.config/cortex/config.toml.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "cortex", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "cortex", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// ResolveVault determines the vault path for this invocation. Priority:
// the --vault flag, the CORTEX_VAULT environment variable, the config
// file, and finally the working directory if it looks like a vault
// (contains root.md).
func ResolveVault(flagValue string, cfg *Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvVault); env != "" {
		return env, nil
	}
	if cfg != nil && cfg.Vault != "" {
		return cfg.Vault, nil
	}
	if cwd, err := os.Getwd(); err == nil {
		if _, err := os.Stat(filepath.Join(cwd, "root.md")); err == nil {
			return cwd, nil
		}
	}
	return "", fmt.Errorf("no vault configured: run 'cor init', set %s, or pass --vault", EnvVault)
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}
