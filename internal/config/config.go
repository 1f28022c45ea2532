package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults for the [refs] section.
const (
	DefaultPrefix    = "refs/deploy/"
	DefaultLogFormat = "[z] Commit from: '%H %s'"
)

// RefsConfig holds the [refs] section.
type RefsConfig struct {
	Prefix    string `toml:"prefix" json:"prefix"`
	Remote    string `toml:"remote" json:"remote,omitempty"`
	LogFormat string `toml:"log_format" json:"log_format"`
}

// Config holds the zrefs configuration
type Config struct {
	Refs RefsConfig `toml:"refs" json:"refs"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Refs: RefsConfig{
			Prefix:    DefaultPrefix,
			LogFormat: DefaultLogFormat,
		},
	}
}

// Path returns the path to the global config file.
// ZREFS_CONFIG overrides the default location.
func Path() (string, error) {
	if p := os.Getenv("ZREFS_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "zrefs", "config.toml"), nil
}

// Load reads the global config file, applies env overrides and validates.
// Returns Default() (with env overrides) if the file doesn't exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		return cfg, applyEnvOverrides(&cfg)
	}
	return LoadFile(path)
}

// LoadFile reads config from path. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills empty values left by a partial config file.
func applyDefaults(cfg *Config) {
	if cfg.Refs.Prefix == "" {
		cfg.Refs.Prefix = DefaultPrefix
	}
	if cfg.Refs.LogFormat == "" {
		cfg.Refs.LogFormat = DefaultLogFormat
	}
}

// applyEnvOverrides applies ZREFS_* environment variables on top of cfg.
// Empty variables are ignored.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ZREFS_PREFIX"); v != "" {
		if err := ValidatePrefix(v); err != nil {
			return fmt.Errorf("ZREFS_PREFIX: %w", err)
		}
		cfg.Refs.Prefix = v
	}
	if v := os.Getenv("ZREFS_REMOTE"); v != "" {
		cfg.Refs.Remote = v
	}
	return nil
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	if err := ValidatePrefix(c.Refs.Prefix); err != nil {
		return fmt.Errorf("refs.prefix: %w", err)
	}
	if err := validateRemoteName(c.Refs.Remote); err != nil {
		return fmt.Errorf("refs.remote: %w", err)
	}
	if c.Refs.LogFormat == "" {
		return errors.New("refs.log_format must not be empty")
	}
	return nil
}

type configKey struct{}

// WithConfig returns a new context with cfg stored in it.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the Config from context, or nil if none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

type workDirKey struct{}

// WithWorkDir returns a new context with the repository directory stored in it.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the repository directory from context,
// falling back to the process working directory.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}

const defaultConfig = `# zrefs configuration

[refs]
# Namespace for environment refs. Every environment NAME is stored at
# <prefix>NAME, e.g. refs/deploy/staging. Must live below refs/.
prefix = "refs/deploy/"

# Remote used by "zrefs exists --remote" and "zrefs fmt push/fetch" when none
# is given. Empty means the first remote reported by "git remote".
# remote = "origin"

# Commit message used for the first commit of a new environment ref.
# Any "git log --pretty=format:" placeholders are allowed.
log_format = "[z] Commit from: '%H %s'"
`

// DefaultConfig returns the default configuration file content.
func DefaultConfig() string {
	return defaultConfig
}

// Init writes the default config file to path.
// If force is true, an existing file is overwritten.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
