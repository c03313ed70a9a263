package binary

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// ErrNoKeyring is returned when signature verification is attempted
// without a configured keyring.
var ErrNoKeyring = errors.New("no keyring configured")

// Verifier handles cryptographic verification of downloaded archives
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a verifier. keyringPath may be empty, in which case
// only checksums can be verified.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// CanVerifySignatures reports whether a keyring is configured.
func (v *Verifier) CanVerifySignatures() bool {
	return v.keyringPath != ""
}

// VerifyGPG verifies a file using a detached OpenPGP signature (armored or binary).
func (v *Verifier) VerifyGPG(filePath, signaturePath string) (*VerificationResult, error) {
	fail := func(err error) (*VerificationResult, error) {
		return &VerificationResult{Method: VerificationGPG, Success: false, Error: err}, err
	}

	keyring, err := v.loadKeyring()
	if err != nil {
		return fail(fmt.Errorf("load keyring: %w", err))
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fail(fmt.Errorf("open file: %w", err))
	}
	defer file.Close()

	sigFile, err := os.Open(signaturePath)
	if err != nil {
		return fail(fmt.Errorf("open signature: %w", err))
	}
	defer sigFile.Close()

	// Try armored first
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, file, sigFile, nil)
	if err != nil {
		if _, serr := file.Seek(0, io.SeekStart); serr != nil {
			return fail(fmt.Errorf("rewind file: %w", serr))
		}
		if _, serr := sigFile.Seek(0, io.SeekStart); serr != nil {
			return fail(fmt.Errorf("rewind signature: %w", serr))
		}
		_, err = openpgp.CheckDetachedSignature(keyring, file, sigFile, nil)
	}
	if err != nil {
		return fail(fmt.Errorf("verify signature: %w", err))
	}

	return &VerificationResult{Method: VerificationGPG, Success: true}, nil
}

// VerifySHA256 verifies a file against the entry for name in a checksum file.
func (v *Verifier) VerifySHA256(filePath, checksumPath, name string) (*VerificationResult, error) {
	fail := func(err error) (*VerificationResult, error) {
		return &VerificationResult{Method: VerificationSHA256, Success: false, Error: err}, err
	}

	actualChecksum, err := calculateSHA256(filePath)
	if err != nil {
		return fail(fmt.Errorf("calculate checksum: %w", err))
	}

	expectedChecksum, err := findChecksum(checksumPath, name)
	if err != nil {
		return fail(fmt.Errorf("find checksum: %w", err))
	}

	if !strings.EqualFold(actualChecksum, expectedChecksum) {
		return fail(fmt.Errorf("checksum mismatch:\nactual:   %s\nexpected: %s",
			actualChecksum, expectedChecksum))
	}

	return &VerificationResult{Method: VerificationSHA256, Success: true}, nil
}

// loadKeyring loads an OpenPGP keyring (armored or binary)
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	if v.keyringPath == "" {
		return nil, ErrNoKeyring
	}

	keyringFile, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		if _, serr := keyringFile.Seek(0, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("rewind keyring: %w", serr)
		}
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// calculateSHA256 calculates the SHA256 checksum of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the checksum for a specific filename in a checksum file.
// Formats: "abc123def456  filename.tgz", "abc123def456 *filename.tgz", or a
// file holding nothing but the hash.
func findChecksum(checksumPath, filename string) (string, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	var bare []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		switch len(parts) {
		case 0:
			continue
		case 1:
			bare = append(bare, parts[0])
			continue
		}

		checksumFilename := strings.TrimPrefix(parts[1], "*")
		if checksumFilename == filename || filepath.Base(checksumFilename) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	if len(bare) == 1 {
		return bare[0], nil
	}

	return "", fmt.Errorf("checksum not found for %s", filename)
}
