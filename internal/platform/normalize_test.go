package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  OS
	}{
		{"linux", "linux", Linux},
		{"darwin", "darwin", Mac},
		{"macos alias", "macOS", Mac},
		{"windows", "windows", Windows},
		{"padded", "  linux ", Linux},
		{"freebsd unsupported", "freebsd", OSUnsupported},
		{"empty", "", OSUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOS(tt.input))
		})
	}
}

func TestParseArch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Arch
	}{
		{"arm64", "arm64", Aarch64},
		{"aarch64", "aarch64", Aarch64},
		{"amd64", "amd64", X8664},
		{"x86_64", "x86_64", X8664},
		{"386", "386", X86},
		{"i686", "i686", X86},
		{"arm unsupported", "arm", ArchUnsupported},
		{"riscv64 unsupported", "riscv64", ArchUnsupported},
		{"empty", "", ArchUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseArch(tt.input))
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "linux", Linux.String())
	assert.Equal(t, "mac", Mac.String())
	assert.Equal(t, "windows", Windows.String())
	assert.Equal(t, "unsupported", OSUnsupported.String())
	assert.Equal(t, "aarch64", Aarch64.String())
	assert.Equal(t, "x86_64", X8664.String())
	assert.Equal(t, "x86", X86.String())
	assert.Equal(t, "unsupported", ArchUnsupported.String())

	info := &Info{OS: Mac, Arch: Aarch64}
	assert.Equal(t, "mac/aarch64", info.String())
}
