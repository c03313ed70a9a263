package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running process.
type RealDetector struct {
	goos   string
	goarch string
}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{goos: runtime.GOOS, goarch: runtime.GOARCH}
}

// Detect reads GOOS and GOARCH and maps them to the published variants.
// Unpublished values yield OSUnsupported or ArchUnsupported, not an error.
//
// On Linux, distribution details come from gopsutil. A detection failure
// leaves them empty; only a cancelled context is reported as an error.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      parseOS(d.goos),
		Arch:    parseArch(d.goarch),
		OSRaw:   d.goos,
		ArchRaw: d.goarch,
	}

	if info.OS == Linux {
		platform, family, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		if platform = normalizeToken(platform); platform != "" {
			info.Platform = platform
			info.Family = normalizeToken(family)
			info.Version = normalizeToken(version)
		}
	}

	return info, nil
}
