// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the bearer token goes to the OS keychain
// and the file keyring passphrase is only ever read from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskdeck/cli/internal/xdg"
)

// Defaults applied when the file or a field is missing.
const (
	DefaultAPIURL   = "http://localhost:8000/api"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "info"
)

// Environment variables that override file values.
const (
	EnvAPIURL          = "TASKDECK_API_URL"
	EnvTimeout         = "TASKDECK_TIMEOUT"
	EnvLogLevel        = "TASKDECK_LOG_LEVEL"
	EnvKeyringBackend  = "TASKDECK_KEYRING_BACKEND"
	EnvKeyringPassword = "TASKDECK_KEYRING_PASSWORD"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL   string        `yaml:"api_url"`
	Timeout  time.Duration `yaml:"timeout"`
	LogLevel string        `yaml:"log_level"`
	Keyring  KeyringConfig `yaml:"keyring"`
}

// KeyringConfig selects where the bearer token is persisted.
type KeyringConfig struct {
	// Backend is empty for the OS default, or one of keychain, wincred,
	// secret-service, kwallet, pass, file.
	Backend string `yaml:"backend,omitempty"`
	// FileDir overrides the directory of the file backend.
	FileDir string `yaml:"file_dir,omitempty"`
	// Password unlocks the file backend. Populated from the environment only.
	Password string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads configuration from the default path; missing file returns defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(p)
}

// LoadFile reads configuration from p, fills defaults and applies environment overrides.
func LoadFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, err
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return c, err
	}
	c.fillDefaults()
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvKeyringBackend)); v != "" {
		c.Keyring.Backend = v
	}
	c.Keyring.Password = os.Getenv(EnvKeyringPassword)
	return nil
}

func (c *Config) fillDefaults() {
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Save writes configuration to p with 0600 permissions.
func Save(p string, c Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
