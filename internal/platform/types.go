// Package platform describes the operating system and CPU architecture the
// process runs on, as a closed set of variants that release assets are
// published for.
//
// Any GOOS/GOARCH value outside the published set maps to the explicit
// OSUnsupported or ArchUnsupported variant instead of an error, so that
// callers decide when an unsupported platform becomes fatal. Linux
// distribution details are detected with gopsutil and used for logging and
// for the platform table exposed to Lua configuration.
package platform

import "context"

// OS is an operating system that release assets are published for.
type OS int

const (
	// OSUnsupported is any operating system without published assets.
	OSUnsupported OS = iota
	// Linux is any Linux distribution.
	Linux
	// Mac is macOS.
	Mac
	// Windows is Microsoft Windows.
	Windows
)

// String returns the lowercase name of the operating system.
func (o OS) String() string {
	switch o {
	case Linux:
		return "linux"
	case Mac:
		return "mac"
	case Windows:
		return "windows"
	default:
		return "unsupported"
	}
}

// Arch is a CPU architecture that release assets are published for.
type Arch int

const (
	// ArchUnsupported is any architecture without published assets.
	ArchUnsupported Arch = iota
	// Aarch64 is 64-bit ARM.
	Aarch64
	// X8664 is 64-bit x86.
	X8664
	// X86 is 32-bit x86.
	X86
)

// String returns the lowercase name of the architecture.
func (a Arch) String() string {
	switch a {
	case Aarch64:
		return "aarch64"
	case X8664:
		return "x86_64"
	case X86:
		return "x86"
	default:
		return "unsupported"
	}
}

// Info contains platform detection information.
type Info struct {
	OS       OS
	Arch     Arch
	OSRaw    string // original GOOS
	ArchRaw  string // original GOARCH
	Platform string // distro ID (Linux only, e.g., "ubuntu")
	Family   string // distro family as reported by gopsutil (Linux only)
	Version  string // distro version (Linux only, e.g., "22.04")
}

// Supported reports whether both OS and Arch are published variants.
func (i *Info) Supported() bool {
	return i.OS != OSUnsupported && i.Arch != ArchUnsupported
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == Linux
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == Mac
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == Windows
}

// String formats the descriptor as "os/arch".
func (i *Info) String() string {
	return i.OS.String() + "/" + i.Arch.String()
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector always reports the same Info.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the configured Info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info := s.Info
	return &info, nil
}
