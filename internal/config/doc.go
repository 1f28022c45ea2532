// Package config handles loading and validation of zrefs configuration.
//
// Configuration is read from ~/.config/zrefs/config.toml, optionally
// overridden per repository by a .zrefs.toml file at the repository top
// level, and finally by environment variables.
//
// # Configuration Sources (highest priority first)
//
//   - ZREFS_PREFIX, ZREFS_REMOTE env vars
//   - .zrefs.toml in the repository root
//   - ~/.config/zrefs/config.toml (or the file named by ZREFS_CONFIG)
//   - Default values
//
// # Key Settings
//
//	[refs]
//	prefix = "refs/deploy/"                    # namespace for environment refs
//	remote = "origin"                          # default remote (empty = first remote)
//	log_format = "[z] Commit from: '%H %s'"    # git log --pretty format for new refs
//
// The prefix must live below refs/ and obey git's ref name rules; a missing
// trailing slash is tolerated and inserted when paths are built.
package config
