// Package service wires configuration into the artifact cache and the host
// adapter, for use by the command line.
package service

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/binary"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/cache"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/config"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/logging"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/release"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/server"
)

// Options override the collaborators NewArtifactService builds by default.
type Options struct {
	Detector   platform.Detector
	Logger     logging.Logger
	HTTPClient *http.Client
	// Getenv reads the API token variable (default: os.Getenv).
	Getenv func(string) string
}

// ArtifactService resolves the server executable and its launch command.
type ArtifactService struct {
	cache  *cache.Cache
	logger logging.Logger
}

// NewArtifactService builds the release directory, resolver, fetcher and
// cache described by loaded.
func NewArtifactService(loaded *config.Loaded, opts Options) (*ArtifactService, error) {
	cfg, paths := loaded.Config, loaded.Paths
	logger := logging.OrNop(opts.Logger)

	detector := opts.Detector
	if detector == nil {
		detector = platform.NewDetector()
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	dirOpts := []release.GitHubOption{release.WithBaseURL(cfg.APIURL)}
	if token := getenv(cfg.TokenEnv); token != "" {
		dirOpts = append(dirOpts, release.WithToken(token))
	} else {
		logger.Debug("no API token set, requests are unauthenticated", "env", cfg.TokenEnv)
	}
	if opts.HTTPClient != nil {
		dirOpts = append(dirOpts, release.WithHTTPClient(opts.HTTPClient))
	}

	resolver, err := release.NewResolver(release.ResolverConfig{
		Directory:         release.NewGitHubDirectory(dirOpts...),
		Detector:          detector,
		Repository:        cfg.Repository,
		Product:           cfg.Product,
		IncludePreRelease: cfg.IncludePreRelease,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create resolver: %w", err)
	}

	fetcher, err := binary.NewFetcher(binary.FetcherConfig{
		DownloadDir: paths.Downloads,
		Timeout:     cfg.Timeout,
		VerifyMode:  binary.VerifyMode(cfg.Verify.Mode),
		KeyringPath: paths.Keyring,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	c, err := cache.New(cache.Config{
		WorkDir:  paths.Servers,
		Product:  cfg.Product,
		Resolver: resolver,
		Fetcher:  fetcher,
		LockDir:  paths.State,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &ArtifactService{cache: c, logger: logger}, nil
}

// Path returns the absolute path of the server executable, downloading it
// if needed.
func (s *ArtifactService) Path(ctx context.Context) (string, error) {
	return s.cache.GetArtifactPath(ctx)
}

// Command parses the host settings and returns the launch command.
func (s *ArtifactService) Command(ctx context.Context, settings []byte) (*server.Command, error) {
	parsed, err := server.ParseSettings(settings)
	if err != nil {
		return nil, err
	}
	return server.BuildCommand(ctx, s.cache, parsed)
}
