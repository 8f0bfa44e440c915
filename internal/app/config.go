package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"masahiro/internal/store"
)

const (
	// DefaultService is the key store namespace for identities.
	DefaultService = "com.masahiro.identity"
	// ConfigFilename is read from the home directory when present.
	ConfigFilename = "config.yaml"

	// EnvPassphrase unlocks the keychain without a flag.
	EnvPassphrase = "MASAHIRO_PASSPHRASE"
	// EnvHome overrides the default home directory.
	EnvHome = "MASAHIRO_HOME"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // state directory, e.g. $HOME/.masahiro
	Service    string // key store namespace
	Passphrase string // unlocks the keychain file; never read from config.yaml
	LogLevel   string // zerolog level name
	LogFormat  string // "console" or "json"
	Scrypt     store.ScryptParams
}

// fileConfig is the config.yaml shape. Unset fields keep their defaults.
type fileConfig struct {
	Service string `yaml:"service"`
	Log     struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Scrypt *store.ScryptParams `yaml:"scrypt"`
}

// DefaultHome returns $MASAHIRO_HOME or ~/.masahiro.
func DefaultHome() (string, error) {
	if h := os.Getenv(EnvHome); h != "" {
		return h, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".masahiro"), nil
}

// DefaultConfig returns the built-in settings for home.
func DefaultConfig(home string) Config {
	return Config{
		Home:      home,
		Service:   DefaultService,
		LogLevel:  "warn",
		LogFormat: "console",
		Scrypt:    store.DefaultScryptParams(),
	}
}

// LoadConfig layers <home>/config.yaml and the environment over the
// defaults. A missing file is not an error.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig(home)

	data, err := os.ReadFile(filepath.Join(home, ConfigFilename))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var parsed fileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", ConfigFilename, err)
		}
		merge(&cfg, parsed)
	}

	ApplyEnvOverrides(&cfg, os.LookupEnv)
	return cfg, cfg.Validate()
}

func merge(dst *Config, src fileConfig) {
	if src.Service != "" {
		dst.Service = src.Service
	}
	if src.Log.Level != "" {
		dst.LogLevel = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.LogFormat = src.Log.Format
	}
	if src.Scrypt != nil {
		dst.Scrypt = *src.Scrypt
	}
}

// ApplyEnvOverrides copies recognised environment variables into cfg.
func ApplyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPassphrase); ok && v != "" {
		cfg.Passphrase = v
	}
}

// Validate rejects settings the stores or logger cannot use.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Home) == "" {
		return errors.New("config: home directory is empty")
	}
	if strings.TrimSpace(c.Service) == "" {
		return errors.New("config: service is empty")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	n := c.Scrypt.N
	if n < 2 || n&(n-1) != 0 {
		return fmt.Errorf("config: scrypt N must be a power of two > 1, got %d", n)
	}
	if c.Scrypt.R < 1 || c.Scrypt.P < 1 {
		return fmt.Errorf("config: scrypt r and p must be positive")
	}
	return nil
}
