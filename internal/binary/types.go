package binary

import "fmt"

// ArchiveKind identifies the archive format of a downloaded asset.
type ArchiveKind string

const (
	// ArchiveGzipTar is a gzip-compressed tar archive.
	ArchiveGzipTar ArchiveKind = "gzip-tar"
)

// VerifyMode selects how downloaded archives are verified.
type VerifyMode string

const (
	// VerifyNone trusts the asset name and transport.
	VerifyNone VerifyMode = "none"
	// VerifyIfAvailable checks the companion assets that are published.
	VerifyIfAvailable VerifyMode = "if-available"
	// VerifyRequired fails unless at least one companion asset verifies.
	VerifyRequired VerifyMode = "required"
)

// ParseVerifyMode parses a mode name. The empty string means VerifyNone.
func ParseVerifyMode(s string) (VerifyMode, error) {
	switch VerifyMode(s) {
	case "", VerifyNone:
		return VerifyNone, nil
	case VerifyIfAvailable, VerifyRequired:
		return VerifyMode(s), nil
	default:
		return "", fmt.Errorf("unknown verify mode: %q", s)
	}
}

// FetchRequest describes one archive to download and extract.
type FetchRequest struct {
	URL string
	// Name is the asset file name; it is the key looked up in checksum files.
	Name    string
	DestDir string
	Kind    ArchiveKind

	// ChecksumURL and SignatureURL point at companion assets (may be empty).
	ChecksumURL  string
	SignatureURL string
}

// VerificationMethod indicates how an archive was verified
type VerificationMethod int

const (
	// VerificationNone indicates no verification was performed
	VerificationNone VerificationMethod = iota
	// VerificationGPG indicates GPG signature verification was used
	VerificationGPG
	// VerificationSHA256 indicates SHA256 checksum verification was used
	VerificationSHA256
)

// String returns the string representation of the verification method
func (v VerificationMethod) String() string {
	switch v {
	case VerificationGPG:
		return "GPG"
	case VerificationSHA256:
		return "SHA256"
	case VerificationNone:
		return "None"
	default:
		return "Unknown"
	}
}

// VerificationResult contains the outcome of a verification attempt
type VerificationResult struct {
	Method  VerificationMethod
	Success bool
	Error   error
}
