package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/config"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/server"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/testutil"
)

const asset = "azure-mcp-darwin-arm64-0.5.8.tgz"

type fakeGitHub struct {
	*httptest.Server
	auth      atomic.Value
	downloads atomic.Int32
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	archive := testutil.TarGz(t, testutil.ServerPackage("azmcp")...)

	g := &fakeGitHub{}
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/Azure/azure-mcp/releases", func(w http.ResponseWriter, r *http.Request) {
		g.auth.Store(r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"tag_name": "0.5.8",
			"assets":   []map[string]string{{"name": asset, "browser_download_url": g.URL + "/dl/" + asset}},
		}})
	})
	mux.HandleFunc("/dl/", func(w http.ResponseWriter, r *http.Request) {
		g.downloads.Add(1)
		_, _ = w.Write(archive)
	})
	g.Server = httptest.NewServer(mux)
	t.Cleanup(g.Close)
	return g
}

func newTestService(t *testing.T, gh *fakeGitHub, env map[string]string) (*ArtifactService, config.Paths) {
	t.Helper()
	stateDir := testutil.SetupTestEnv(t)

	cfg := config.Default()
	cfg.APIURL = gh.URL
	loaded := &config.Loaded{Config: cfg, Paths: cfg.Resolve(stateDir)}

	svc, err := NewArtifactService(loaded, Options{
		Detector: platform.StaticDetector{Info: platform.Info{OS: platform.Mac, Arch: platform.Aarch64}},
		Getenv:   func(k string) string { return env[k] },
	})
	require.NoError(t, err)
	return svc, loaded.Paths
}

func TestArtifactService_Path(t *testing.T) {
	gh := newFakeGitHub(t)
	svc, paths := newTestService(t, gh, nil)

	path, err := svc.Path(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.Servers, "azure-mcp-0.5.8", "package", "dist", "azmcp"), path)
	assert.Equal(t, "", gh.auth.Load())

	_, err = svc.Path(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, gh.downloads.Load())
}

func TestArtifactService_SendsToken(t *testing.T) {
	gh := newFakeGitHub(t)
	svc, _ := newTestService(t, gh, map[string]string{"GITHUB_TOKEN": "secret"})

	_, err := svc.Path(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gh.auth.Load())
}

func TestArtifactService_Command(t *testing.T) {
	gh := newFakeGitHub(t)
	svc, paths := newTestService(t, gh, nil)

	cmd, err := svc.Command(context.Background(), []byte(`{"enable_production_credentials": true}`))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.Servers, "azure-mcp-0.5.8", "package", "dist", "azmcp"), cmd.Path)
	assert.Equal(t, []string{"server", "start"}, cmd.Args)
	assert.Equal(t, "true", cmd.Env[server.ProductionCredentialsEnv])
}

func TestArtifactService_CommandNotConfigured(t *testing.T) {
	gh := newFakeGitHub(t)
	svc, _ := newTestService(t, gh, nil)

	_, err := svc.Command(context.Background(), nil)
	assert.ErrorIs(t, err, server.ErrNotConfigured)
	assert.Zero(t, gh.downloads.Load())
}

func TestNewArtifactService_RejectsWorkDirContainingState(t *testing.T) {
	stateDir := testutil.SetupTestEnv(t)

	cfg := config.Default()
	loaded := &config.Loaded{Config: cfg, Paths: cfg.Resolve(stateDir)}
	loaded.Paths.Servers = filepath.Dir(stateDir)

	_, err := NewArtifactService(loaded, Options{})
	assert.Error(t, err)
}
