// Package config manages user-level settings stored at ~/.mcm/config.yaml:
// the installer command, the default base directory and the default keys of
// the aggregate manifest. Environment variables with the MCM_ prefix and CLI
// flags override the file.
package config
