package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	path  string
	err   error
	calls int
}

func (f *fakeProvider) GetArtifactPath(ctx context.Context) (string, error) {
	f.calls++
	return f.path, f.err
}

func TestBuildCommand(t *testing.T) {
	provider := &fakeProvider{path: "/cache/azure-mcp-1.2.3/package/dist/azmcp"}

	cmd, err := BuildCommand(context.Background(), provider, &Settings{})
	require.NoError(t, err)

	assert.Equal(t, provider.path, cmd.Path)
	assert.Equal(t, []string{"server", "start"}, cmd.Args)
	assert.Empty(t, cmd.Env)
}

func TestBuildCommand_ProductionCredentials(t *testing.T) {
	provider := &fakeProvider{path: "/bin/azmcp"}

	cmd, err := BuildCommand(context.Background(), provider, &Settings{EnableProductionCredentials: true})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"AZURE_MCP_PRODUCTION_CREDENTIALS": "true"}, cmd.Env)
}

func TestBuildCommand_NotConfigured(t *testing.T) {
	provider := &fakeProvider{path: "/bin/azmcp"}

	_, err := BuildCommand(context.Background(), provider, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, provider.calls, "nothing is downloaded for an unconfigured server")
}

func TestBuildCommand_ProviderError(t *testing.T) {
	cause := errors.New("fetch failed")
	_, err := BuildCommand(context.Background(), &fakeProvider{err: cause}, &Settings{})
	assert.ErrorIs(t, err, cause)
}

func TestCommandEnviron(t *testing.T) {
	cmd := &Command{Env: map[string]string{"B": "2", "A": "1"}}
	base := []string{"PATH=/usr/bin"}

	got := cmd.Environ(base)

	assert.Equal(t, []string{"PATH=/usr/bin", "A=1", "B=2"}, got)
	assert.Equal(t, []string{"PATH=/usr/bin"}, base, "base must not be modified")
}
