// Package testutil provides utilities for testing azmcp in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points every azmcp directory at a fresh temp location and
// returns the state directory. Tests never touch the user's real cache or
// send credentials to a real API.
//
// The cleanup function is automatically handled by t.TempDir(),
// so callers don't need to manually clean up.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	stateDir := filepath.Join(t.TempDir(), "azmcp")

	t.Setenv("AZMCP_DIR", stateDir)
	t.Setenv("AZMCP_TEST_MODE", "1")
	t.Setenv("GITHUB_TOKEN", "")

	if err := os.MkdirAll(stateDir, 0o750); err != nil {
		t.Fatalf("failed to create test directory %s: %v", stateDir, err)
	}

	return stateDir
}
