package platform

import "strings"

// parseOS maps GOOS values to the published OS variants.
func parseOS(goos string) OS {
	switch normalizeToken(goos) {
	case "linux":
		return Linux
	case "darwin", "macos":
		return Mac
	case "windows":
		return Windows
	default:
		return OSUnsupported
	}
}

// parseArch maps GOARCH values (and their uname spellings) to the
// published Arch variants.
func parseArch(goarch string) Arch {
	switch normalizeToken(goarch) {
	case "arm64", "aarch64":
		return Aarch64
	case "amd64", "x86_64":
		return X8664
	case "386", "i386", "i686", "x86":
		return X86
	default:
		return ArchUnsupported
	}
}

// normalizeToken converts identifiers to lowercase for consistency.
func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
