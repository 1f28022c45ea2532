package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file, read from the repository top level.
const LocalConfigFileName = ".zrefs.toml"

// LocalConfig holds per-repo overrides from .zrefs.toml.
// Empty strings mean "not set" (inherit from global).
type LocalConfig struct {
	Refs RefsConfig `toml:"refs"`
}

// LoadLocal reads a per-repo .zrefs.toml from repoPath.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse or validation failure.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if local.Refs.Prefix != "" {
		if err := ValidatePrefix(local.Refs.Prefix); err != nil {
			return nil, fmt.Errorf("invalid refs.prefix in %s: %w", configFile, err)
		}
	}
	if err := validateRemoteName(local.Refs.Remote); err != nil {
		return nil, fmt.Errorf("invalid refs.remote in %s: %w", configFile, err)
	}

	return &local, nil
}
