package cache

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/release"
)

const (
	// executableName is the server executable inside a published archive.
	executableName = "azmcp"
	// executableDir is the archive-relative directory holding the executable.
	executableDir = "package/dist"
)

// VersionDirName returns the work directory entry for a release version.
// The version comes from the release directory, so anything that could
// escape the work directory is rejected.
func VersionDirName(product, version string) (string, error) {
	if version == "" || version == "." || version == ".." ||
		strings.ContainsAny(version, `/\`) || strings.ContainsRune(version, 0) {
		return "", fmt.Errorf("%w: unusable release version %q", release.ErrReleaseLookupFailed, version)
	}
	return product + "-" + version, nil
}

// ArtifactRelPath returns the executable path relative to the work directory.
func ArtifactRelPath(versionDir string, os platform.OS) (string, error) {
	switch os {
	case platform.Windows:
		return filepath.Join(versionDir, filepath.FromSlash(executableDir), executableName+".exe"), nil
	case platform.Linux, platform.Mac:
		return filepath.Join(versionDir, filepath.FromSlash(executableDir), executableName), nil
	default:
		return "", fmt.Errorf("%w: no executable layout for %s", release.ErrUnsupportedPlatform, os)
	}
}

// ownedEntry reports whether a work directory entry was created by a cache
// for product: a version directory or a fetcher staging directory.
func ownedEntry(product, name string) bool {
	prefix := product + "-"
	return strings.HasPrefix(name, prefix) || strings.HasPrefix(name, "."+prefix)
}
