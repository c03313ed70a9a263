package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
)

// CleanupReport summarises one cleanup pass over the work directory.
type CleanupReport struct {
	Kept    string
	Removed []string
	// Foreign lists removed entries that were not created by this cache.
	Foreign []string
	// Failed holds entries that could not be removed. They are reported,
	// never returned as an error.
	Failed map[string]error
}

func (r *CleanupReport) clone() *CleanupReport {
	return &CleanupReport{
		Kept:    r.Kept,
		Removed: slices.Clone(r.Removed),
		Foreign: slices.Clone(r.Foreign),
		Failed:  maps.Clone(r.Failed),
	}
}

// cleanup removes every work directory entry except keep.
//
// Failing to list the directory is an error; failing to remove an entry is
// recorded in the report and otherwise ignored. Entries that vanish while
// the pass runs count as removed.
func (c *Cache) cleanup(keep string) (*CleanupReport, error) {
	entries, err := c.readDir(c.workDir)
	if err != nil {
		return nil, fmt.Errorf("list work directory: %w", err)
	}

	report := &CleanupReport{Kept: keep, Failed: map[string]error{}}
	for _, entry := range entries {
		name := entry.Name()
		if name == keep {
			continue
		}

		err := c.remove(filepath.Join(c.workDir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			report.Failed[name] = err
			c.logger.Warn("could not remove stale cache entry", "entry", name, "error", err)
			continue
		}
		report.Removed = append(report.Removed, name)
		if !ownedEntry(c.product, name) {
			report.Foreign = append(report.Foreign, name)
			c.logger.Warn("removed entry not created by the cache", "entry", name, "work_dir", c.workDir)
		}
	}

	if len(report.Removed) > 0 || len(report.Failed) > 0 {
		c.logger.Info("cleaned work directory",
			"kept", keep,
			"removed", len(report.Removed),
			"failed", len(report.Failed))
	}
	return report, nil
}
