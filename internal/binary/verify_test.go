package binary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestKey generates a signing key and writes its armored public key to a keyring file.
func newTestKey(t *testing.T) (*openpgp.Entity, string) {
	t.Helper()

	entity, err := openpgp.NewEntity("azmcp test", "", "test@example.invalid", nil)
	require.NoError(t, err)

	keyringPath := filepath.Join(t.TempDir(), "keyring.asc")
	f, err := os.Create(keyringPath)
	require.NoError(t, err)
	defer f.Close()

	w, err := armor.Encode(f, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(w))
	require.NoError(t, w.Close())

	return entity, keyringPath
}

// signFile writes a detached signature for path and returns the signature path.
func signFile(t *testing.T, entity *openpgp.Entity, path string, armored bool) string {
	t.Helper()

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()

	sigPath := path + ".sig"
	out, err := os.Create(sigPath)
	require.NoError(t, err)
	defer out.Close()

	if armored {
		require.NoError(t, openpgp.ArmoredDetachSign(out, entity, in, nil))
	} else {
		require.NoError(t, openpgp.DetachSign(out, entity, in, nil))
	}
	return sigPath
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVerifyGPG(t *testing.T) {
	entity, keyringPath := newTestKey(t)
	verifier := NewVerifier(keyringPath)

	for _, armored := range []bool{true, false} {
		name := "binary_signature"
		if armored {
			name = "armored_signature"
		}
		t.Run(name, func(t *testing.T) {
			archive := writeTestFile(t, "azure-mcp-linux-x64-1.2.3.tgz", "archive bytes")
			sig := signFile(t, entity, archive, armored)

			result, err := verifier.VerifyGPG(archive, sig)
			require.NoError(t, err)
			assert.True(t, result.Success)
			assert.Equal(t, VerificationGPG, result.Method)
		})
	}
}

func TestVerifyGPG_Failures(t *testing.T) {
	entity, keyringPath := newTestKey(t)
	other, _ := newTestKey(t)

	archive := writeTestFile(t, "a.tgz", "archive bytes")
	goodSig := signFile(t, entity, archive, true)

	tampered := writeTestFile(t, "b.tgz", "tampered bytes")
	foreign := writeTestFile(t, "c.tgz", "archive bytes")
	foreignSig := signFile(t, other, foreign, true)

	tests := []struct {
		name      string
		keyring   string
		file      string
		signature string
	}{
		{"tampered_file", keyringPath, tampered, goodSig},
		{"unknown_signer", keyringPath, foreign, foreignSig},
		{"missing_signature", keyringPath, archive, filepath.Join(t.TempDir(), "none.sig")},
		{"missing_keyring", filepath.Join(t.TempDir(), "none.asc"), archive, goodSig},
		{"no_keyring", "", archive, goodSig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewVerifier(tt.keyring).VerifyGPG(tt.file, tt.signature)
			require.Error(t, err)
			require.NotNil(t, result)
			assert.False(t, result.Success)
			assert.Equal(t, VerificationGPG, result.Method)
		})
	}
}

func TestVerifyGPG_NoKeyringSentinel(t *testing.T) {
	_, err := NewVerifier("").VerifyGPG("a", "b")
	assert.ErrorIs(t, err, ErrNoKeyring)
	assert.False(t, NewVerifier("").CanVerifySignatures())
}

func TestVerifySHA256(t *testing.T) {
	const (
		name    = "azure-mcp-linux-x64-1.2.3.tgz"
		content = "archive bytes"
	)
	archive := writeTestFile(t, name, content)
	sum, err := calculateSHA256(archive)
	require.NoError(t, err)

	tests := []struct {
		name      string
		checksums string
		wantOK    bool
	}{
		{"sha256sum_format", sum + "  " + name + "\n", true},
		{"binary_mode_marker", sum + " *" + name + "\n", true},
		{"uppercase_hash", strings.ToUpper(sum) + "  " + name, true},
		{"path_prefixed_name", sum + "  dist/" + name, true},
		{"bare_hash", sum + "\n", true},
		{"multiple_entries", "deadbeef  azure-mcp-win32-x64-1.2.3.tgz\n" + sum + "  " + name + "\n", true},
		{"mismatch", strings.Repeat("0", 64) + "  " + name, false},
		{"not_listed", sum + "  azure-mcp-darwin-x64-1.2.3.tgz", false},
		{"ambiguous_bare_hashes", sum + "\n" + sum + "\n", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sumPath := writeTestFile(t, "checksums.txt", tt.checksums)

			result, err := NewVerifier("").VerifySHA256(archive, sumPath, name)
			require.NotNil(t, result)
			assert.Equal(t, VerificationSHA256, result.Method)
			if tt.wantOK {
				require.NoError(t, err)
				assert.True(t, result.Success)
				return
			}
			require.Error(t, err)
			assert.False(t, result.Success)
		})
	}
}

func TestParseVerifyMode(t *testing.T) {
	for in, want := range map[string]VerifyMode{
		"":             VerifyNone,
		"none":         VerifyNone,
		"if-available": VerifyIfAvailable,
		"required":     VerifyRequired,
	} {
		got, err := ParseVerifyMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseVerifyMode("strict")
	assert.Error(t, err)
}

func TestVerificationMethodString(t *testing.T) {
	assert.Equal(t, "GPG", VerificationGPG.String())
	assert.Equal(t, "SHA256", VerificationSHA256.String())
	assert.Equal(t, "None", VerificationNone.String())
	assert.Equal(t, "Unknown", VerificationMethod(9).String())
}
