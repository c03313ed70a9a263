package release

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
)

// ArchiveExt is the extension of every published archive.
const ArchiveExt = "tgz"

// osToken maps an OS to the token used in asset names.
func osToken(os platform.OS) (string, error) {
	switch os {
	case platform.Linux:
		return "linux", nil
	case platform.Mac:
		return "darwin", nil
	case platform.Windows:
		return "win32", nil
	case platform.OSUnsupported:
		return "", fmt.Errorf("%w: operating system not published", ErrUnsupportedPlatform)
	default:
		return "", fmt.Errorf("%w: unknown operating system %d", ErrUnsupportedPlatform, int(os))
	}
}

// archToken maps an Arch to the token used in asset names.
func archToken(arch platform.Arch) (string, error) {
	switch arch {
	case platform.Aarch64:
		return "arm64", nil
	case platform.X8664:
		return "x64", nil
	case platform.X86:
		return "x86", nil
	case platform.ArchUnsupported:
		return "", fmt.Errorf("%w: architecture not published", ErrUnsupportedPlatform)
	default:
		return "", fmt.Errorf("%w: unknown architecture %d", ErrUnsupportedPlatform, int(arch))
	}
}

// platformTokens returns the os and arch tokens for info.
func platformTokens(info *platform.Info) (string, string, error) {
	if info == nil {
		return "", "", fmt.Errorf("%w: platform info is required", ErrUnsupportedPlatform)
	}
	osName, err := osToken(info.OS)
	if err != nil {
		return "", "", fmt.Errorf("%w (GOOS=%s)", err, info.OSRaw)
	}
	archName, err := archToken(info.Arch)
	if err != nil {
		return "", "", fmt.Errorf("%w (GOARCH=%s)", err, info.ArchRaw)
	}
	return osName, archName, nil
}

// AssetName builds the expected asset file name.
// Pattern: {product}-{os}-{arch}-{version}.tgz
func AssetName(product string, info *platform.Info, version string) (string, error) {
	osName, archName, err := platformTokens(info)
	if err != nil {
		return "", err
	}
	return formatAssetName(product, osName, archName, version), nil
}

func formatAssetName(product, osName, archName, version string) string {
	return fmt.Sprintf("%s-%s-%s-%s.%s", product, osName, archName, version, ArchiveExt)
}

// checksumCandidates lists companion checksum file names in preference order.
func checksumCandidates(assetName string) []string {
	return []string{
		assetName + ".sha256",
		assetName + ".sha256.txt",
		"checksums.txt",
		"SHA256SUMS",
	}
}

// signatureCandidates lists companion signature file names in preference order.
func signatureCandidates(assetName string) []string {
	return []string{
		assetName + ".sig",
		assetName + ".asc",
	}
}
