package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvDir overrides the state directory.
	EnvDir = "AZMCP_DIR"
	// FileName is the configuration file inside the state directory.
	FileName = "config.lua"

	serversDir   = "servers"
	downloadsDir = "downloads"
)

// Paths are the resolved locations azmcp works in.
type Paths struct {
	// State holds the config file and the cache lock.
	State     string
	Config    string
	Servers   string
	Downloads string
	Keyring   string
}

// StateDir returns $AZMCP_DIR, or ~/.config/azmcp.
func StateDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return filepath.Abs(expandHome(dir))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "azmcp"), nil
}

// Resolve derives every working path from the state directory and c.
func (c *Config) Resolve(stateDir string) Paths {
	p := Paths{
		State:     stateDir,
		Config:    filepath.Join(stateDir, FileName),
		Servers:   filepath.Join(stateDir, serversDir),
		Downloads: filepath.Join(stateDir, downloadsDir),
	}
	if c.WorkDir != "" {
		p.Servers = filepath.Clean(expandHome(c.WorkDir))
	}
	if c.Verify.Keyring != "" {
		p.Keyring = filepath.Clean(expandHome(c.Verify.Keyring))
	}
	return p
}

// expandHome replaces a leading ~/ with the home directory.
// The path is returned unchanged if the home directory is unknown.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// isAbs also accepts slash-rooted paths on Windows, where a config may be
// shared between machines.
func isAbs(path string) bool {
	return filepath.IsAbs(path) || strings.HasPrefix(path, "/")
}
