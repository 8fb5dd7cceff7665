// Package paths provides centralized path handling for gitup.
// File locations follow the XDG Base Directory specification, with
// environment variable overrides for tests and unusual setups.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	homedir "github.com/mitchellh/go-homedir"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for gitup
	EnvConfigDir = "GITUP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for gitup
	EnvStateDir = "GITUP_STATE_DIR"

	// EnvLogFile overrides the debug log file location
	EnvLogFile = "GITUP_LOG_FILE"
)

const (
	// AppDirName is the directory name for gitup-specific files
	AppDirName = "gitup"

	// ProfileStoreFile is the name of the profile store file
	ProfileStoreFile = "profiles.toml"

	// LogFileName is the name of the rotating debug log file
	LogFileName = "gitup.log"
)

// ConfigDir returns the directory holding gitup configuration files,
// typically ~/.config/gitup.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding gitup state files such as logs,
// typically ~/.local/state/gitup.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ProfileStorePath returns the location of the profile store file.
func ProfileStorePath() string {
	return filepath.Join(ConfigDir(), ProfileStoreFile)
}

// LogFilePath returns the location of the rotating debug log.
func LogFilePath() string {
	if path := os.Getenv(EnvLogFile); path != "" {
		return ExpandHome(path)
	}
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ in path to the user's home directory.
// Paths that cannot be expanded are returned unchanged.
func ExpandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
