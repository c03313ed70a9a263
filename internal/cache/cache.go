// Package cache keeps one extracted release of the server executable on
// disk and remembers where it is.
//
// The remembered path is a hint: every GetArtifactPath re-checks it with a
// single stat and falls back to resolving the latest release when the file
// is gone. A resolved version directory that already holds the executable
// is reused without downloading, and every other entry of the work
// directory is removed on a best-effort basis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/binary"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/logging"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/release"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/transaction"
)

// ErrFetchFailed means the release archive could not be downloaded or extracted.
var ErrFetchFailed = errors.New("fetch failed")

// ErrForeignWorkDir means the work directory holds entries but none that a
// cache for the product created. Cleanup would delete all of them.
var ErrForeignWorkDir = errors.New("work directory is not empty and holds no cache entries")

// Resolver picks the release asset for this platform.
type Resolver interface {
	Resolve(ctx context.Context) (*release.Resolution, error)
}

// Fetcher downloads an archive and extracts it into a directory.
type Fetcher interface {
	FetchAndExtract(ctx context.Context, req binary.FetchRequest) error
}

// Config holds configuration for the cache
type Config struct {
	// WorkDir holds version directories and nothing else; foreign entries
	// are deleted.
	WorkDir string
	// Product prefixes version directory names, e.g. "azure-mcp".
	Product  string
	Resolver Resolver
	Fetcher  Fetcher
	// LockDir, when set, holds a lock file serialising refreshes across
	// processes. It must not be inside WorkDir.
	LockDir string
	Logger  logging.Logger
}

// Cache resolves and remembers the path to the server executable.
// It is safe for concurrent use; refreshes are serialised.
type Cache struct {
	mu       sync.Mutex
	pointer  string
	workDir  string
	product  string
	resolver Resolver
	fetcher  Fetcher
	lockDir  string
	logger   logging.Logger
	remove   func(path string) error
	readDir  func(name string) ([]os.DirEntry, error)
	// lastCleanup is the report of the most recent refresh.
	lastCleanup *CleanupReport
}

// New creates a cache. WorkDir is created if missing.
func New(cfg Config) (*Cache, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("WorkDir is required")
	}
	if cfg.Product == "" {
		return nil, errors.New("Product is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("Resolver is required")
	}
	if cfg.Fetcher == nil {
		return nil, errors.New("Fetcher is required")
	}

	workDir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("resolve work directory: %w", err)
	}

	var lockDir string
	if cfg.LockDir != "" {
		if lockDir, err = filepath.Abs(cfg.LockDir); err != nil {
			return nil, fmt.Errorf("resolve lock directory: %w", err)
		}
		if within(workDir, lockDir) {
			return nil, fmt.Errorf("lock directory %s must not be inside work directory %s", lockDir, workDir)
		}
	}

	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	if err := checkOwned(workDir, cfg.Product); err != nil {
		return nil, err
	}

	return &Cache{
		workDir:  workDir,
		product:  cfg.Product,
		resolver: cfg.Resolver,
		fetcher:  cfg.Fetcher,
		lockDir:  lockDir,
		logger:   logging.OrNop(cfg.Logger),
		remove:   os.RemoveAll,
		readDir:  os.ReadDir,
	}, nil
}

// WorkDir returns the absolute work directory.
func (c *Cache) WorkDir() string {
	return c.workDir
}

// Pointer returns the last known-good executable path, or "" if none.
func (c *Cache) Pointer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pointer
}

// LastCleanup returns a copy of the report from the most recent cleanup
// pass, or nil if no refresh has completed one.
func (c *Cache) LastCleanup() *CleanupReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastCleanup == nil {
		return nil
	}
	return c.lastCleanup.clone()
}

// GetArtifactPath returns the absolute path of a ready-to-run executable.
//
// While the remembered path is still a regular file it is returned without
// resolving or touching the network. Otherwise the latest release is
// resolved, downloaded unless its version directory already holds the
// executable, and every other work directory entry is removed. On failure
// the remembered path is left as it was.
func (c *Cache) GetArtifactPath(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pointer != "" && isRegularFile(c.pointer) {
		c.logger.Debug("using cached executable", "path", c.pointer)
		return c.pointer, nil
	}

	if c.lockDir != "" {
		lock, err := transaction.Acquire(ctx, c.lockDir, transaction.DefaultLockName)
		if err != nil {
			return "", fmt.Errorf("acquire cache lock: %w", err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				c.logger.Warn("could not release cache lock", "path", lock.Path(), "error", err)
			}
		}()
	}

	path, err := c.refresh(ctx)
	if err != nil {
		return "", err
	}

	c.pointer = path
	return path, nil
}

// refresh resolves the latest release and makes sure its executable is on disk.
func (c *Cache) refresh(ctx context.Context) (string, error) {
	res, err := c.resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}

	versionDir, err := VersionDirName(c.product, res.Release.Version)
	if err != nil {
		return "", err
	}
	relPath, err := ArtifactRelPath(versionDir, res.Platform.OS)
	if err != nil {
		return "", err
	}
	artifact := filepath.Join(c.workDir, relPath)

	if isRegularFile(artifact) {
		c.logger.Info("reusing extracted release", "version", res.Release.Version, "path", artifact)
	} else if err := c.fetch(ctx, res, versionDir, artifact); err != nil {
		return "", err
	}

	report, err := c.cleanup(versionDir)
	if err != nil {
		return "", fmt.Errorf("clean up %s: %w", c.workDir, err)
	}
	c.lastCleanup = report

	abs, err := filepath.Abs(artifact)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}
	return abs, nil
}

// fetch downloads and extracts the resolved asset into versionDir.
func (c *Cache) fetch(ctx context.Context, res *release.Resolution, versionDir, artifact string) error {
	dest := filepath.Join(c.workDir, versionDir)
	req := binary.FetchRequest{
		URL:     res.Asset.URL,
		Name:    res.Asset.Name,
		DestDir: dest,
		Kind:    binary.ArchiveGzipTar,
	}
	if res.Checksum != nil {
		req.ChecksumURL = res.Checksum.URL
	}
	if res.Signature != nil {
		req.SignatureURL = res.Signature.URL
	}

	c.logger.Info("downloading release", "version", res.Release.Version, "asset", res.Asset.Name)
	if err := c.fetcher.FetchAndExtract(ctx, req); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFetchFailed, res.Asset.Name, err)
	}

	if !isRegularFile(artifact) {
		if err := c.remove(dest); err != nil {
			c.logger.Warn("could not remove incomplete version directory", "path", dest, "error", err)
		}
		return fmt.Errorf("%w: %s does not contain %s", ErrFetchFailed, res.Asset.Name,
			strings.TrimPrefix(artifact, dest+string(os.PathSeparator)))
	}
	return nil
}

// checkOwned refuses a work directory whose entries all belong to something
// else. An empty directory, or one holding any product entry, is accepted.
func checkOwned(workDir, product string) error {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return fmt.Errorf("list work directory: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}
	for _, entry := range entries {
		if ownedEntry(product, entry.Name()) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (%d entries, none named %s-*)", ErrForeignWorkDir, workDir, len(entries), product)
}

// isRegularFile reports whether path exists and is a regular file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// within reports whether path is dir or below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
