package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/testutil"
)

var linuxX64 = platform.StaticDetector{Info: platform.Info{OS: platform.Linux, Arch: platform.X8664}}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	stateDir := testutil.SetupTestEnv(t)

	loaded, err := Load(context.Background(), linuxX64)
	require.NoError(t, err)

	assert.False(t, loaded.Exists)
	assert.Equal(t, Default(), loaded.Config)
	assert.Equal(t, Paths{
		State:     stateDir,
		Config:    filepath.Join(stateDir, "config.lua"),
		Servers:   filepath.Join(stateDir, "servers"),
		Downloads: filepath.Join(stateDir, "downloads"),
	}, loaded.Paths)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	stateDir := testutil.SetupTestEnv(t)
	workDir := filepath.Join(t.TempDir(), "servers")
	content := `azmcp = {
		work_dir = "` + filepath.ToSlash(workDir) + `",
		token = "abcdefghijklmnopqrstuvwxyz",
	}`
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "config.lua"), []byte(content), 0o644))

	loaded, err := Load(context.Background(), linuxX64)
	require.NoError(t, err)

	assert.True(t, loaded.Exists)
	assert.Equal(t, filepath.Clean(workDir), loaded.Paths.Servers)
	assert.Len(t, loaded.Findings, 1)
}

func TestLoad_InvalidFile(t *testing.T) {
	stateDir := testutil.SetupTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "config.lua"), []byte(`azmcp = { timeout = "x" }`), 0o644))

	_, err := Load(context.Background(), linuxX64)
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "config.lua")
}

func TestStateDir(t *testing.T) {
	t.Setenv(EnvDir, "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	dir, err := StateDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "azmcp"), dir)

	override := t.TempDir()
	t.Setenv(EnvDir, override)
	dir, err = StateDir()
	require.NoError(t, err)
	assert.Equal(t, override, dir)
}

func TestResolve_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := Default()
	cfg.WorkDir = "~/cache/azmcp"
	cfg.Verify.Keyring = "~/keys/release.asc"

	p := cfg.Resolve("/state")
	assert.Equal(t, filepath.Join(home, "cache", "azmcp"), p.Servers)
	assert.Equal(t, filepath.Join(home, "keys", "release.asc"), p.Keyring)
	assert.Equal(t, filepath.Join("/state", "config.lua"), p.Config)
}
