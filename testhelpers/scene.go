// Package testhelpers provides shared utilities for gitup tests.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene is an isolated environment for tests that touch Git
// configuration or the profile store. Every location gitup reads or
// writes is redirected into a temporary directory so tests never see
// the developer's real setup.
type Scene struct {
	Dir           string
	ConfigDir     string
	StateDir      string
	GitConfigPath string
}

// NewScene creates a scene rooted in a fresh temporary directory and
// points HOME, the gitup directories, and the global Git configuration
// at it for the duration of the test. Cleanup is automatic via
// t.TempDir and t.Setenv.
func NewScene(t *testing.T) *Scene {
	t.Helper()

	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	stateDir := filepath.Join(dir, "state")
	for _, d := range []string{configDir, stateDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("Failed to create scene directory: %v", err)
		}
	}

	// Scratch file standing in for ~/.gitconfig. Git follows
	// GIT_CONFIG_GLOBAL for both reads and writes of --global values.
	gitConfig := filepath.Join(dir, "gitconfig")
	if err := os.WriteFile(gitConfig, nil, 0o600); err != nil {
		t.Fatalf("Failed to create scratch gitconfig: %v", err)
	}

	t.Setenv("HOME", dir)
	t.Setenv("GITUP_CONFIG_DIR", configDir)
	t.Setenv("GITUP_STATE_DIR", stateDir)
	t.Setenv("GITUP_LOG_FILE", filepath.Join(stateDir, "gitup.log"))
	t.Setenv("GITUP_NON_INTERACTIVE", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", gitConfig)
	t.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	return &Scene{
		Dir:           dir,
		ConfigDir:     configDir,
		StateDir:      stateDir,
		GitConfigPath: gitConfig,
	}
}

// StorePath returns where the profile store lives inside the scene.
func (s *Scene) StorePath() string {
	return filepath.Join(s.ConfigDir, "profiles.toml")
}
