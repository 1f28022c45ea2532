package config

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global

	if local.Refs.Prefix != "" {
		merged.Refs.Prefix = local.Refs.Prefix
	}
	if local.Refs.Remote != "" {
		merged.Refs.Remote = local.Refs.Remote
	}
	if local.Refs.LogFormat != "" {
		merged.Refs.LogFormat = local.Refs.LogFormat
	}

	return &merged
}

// ForRepo returns the effective config for the repository at repoPath:
// global, overlaid with its .zrefs.toml, with env overrides re-applied so
// they keep the highest priority.
func ForRepo(global *Config, repoPath string) (*Config, error) {
	local, err := LoadLocal(repoPath)
	if err != nil {
		return nil, err
	}
	merged := MergeLocal(global, local)
	if local == nil {
		return merged, nil
	}
	if err := applyEnvOverrides(merged); err != nil {
		return nil, err
	}
	return merged, nil
}
