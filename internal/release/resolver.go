package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/logging"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
)

// Resolver selects the asset to run from the latest qualifying release.
type Resolver struct {
	directory         Directory
	detector          platform.Detector
	repository        string
	product           string
	includePreRelease bool
	logger            logging.Logger
}

// ResolverConfig holds configuration for the resolver
type ResolverConfig struct {
	Directory Directory
	Detector  platform.Detector
	// Repository is the "owner/name" the releases are published under.
	Repository string
	// Product is the asset name prefix, e.g. "azure-mcp".
	Product           string
	IncludePreRelease bool
	Logger            logging.Logger
}

// NewResolver creates a resolver.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Directory == nil {
		return nil, errors.New("release directory is required")
	}
	if cfg.Detector == nil {
		return nil, errors.New("platform detector is required")
	}
	if cfg.Repository == "" {
		return nil, errors.New("repository is required")
	}
	if cfg.Product == "" {
		return nil, errors.New("product is required")
	}

	return &Resolver{
		directory:         cfg.Directory,
		detector:          cfg.Detector,
		repository:        cfg.Repository,
		product:           cfg.Product,
		includePreRelease: cfg.IncludePreRelease,
		logger:            logging.OrNop(cfg.Logger),
	}, nil
}

// Resolve detects the platform, fetches the latest release with assets and
// returns the asset whose name matches the naming scheme exactly.
//
// An unsupported platform fails before the directory is queried. Nothing is
// retried.
func (r *Resolver) Resolve(ctx context.Context) (*Resolution, error) {
	info, err := r.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}

	osName, archName, err := platformTokens(info)
	if err != nil {
		return nil, err
	}

	rel, err := r.directory.LatestRelease(ctx, r.repository, Options{
		RequireAssets:     true,
		IncludePreRelease: r.includePreRelease,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReleaseLookupFailed, r.repository, err)
	}
	if rel == nil || len(rel.Assets) == 0 {
		return nil, fmt.Errorf("%w: %s: latest release has no assets", ErrReleaseLookupFailed, r.repository)
	}

	name := formatAssetName(r.product, osName, archName, rel.Version)
	asset, ok := r.findAsset(rel, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s in release %s", ErrNoMatchingAsset, name, rel.Version)
	}

	r.logger.Debug("resolved release asset",
		"repository", r.repository,
		"version", rel.Version,
		"asset", asset.Name,
		"platform", info.String())

	return &Resolution{
		Release:   rel,
		Asset:     asset,
		Platform:  info,
		Checksum:  firstNamed(rel.Assets, checksumCandidates(name)),
		Signature: firstNamed(rel.Assets, signatureCandidates(name)),
	}, nil
}

// findAsset returns the first asset named name. Later duplicates are
// reported, not used.
func (r *Resolver) findAsset(rel *Release, name string) (Asset, bool) {
	var found *Asset
	duplicates := 0
	for i := range rel.Assets {
		if rel.Assets[i].Name != name {
			continue
		}
		if found == nil {
			found = &rel.Assets[i]
			continue
		}
		duplicates++
	}
	if found == nil {
		return Asset{}, false
	}
	if duplicates > 0 {
		r.logger.Warn("release lists duplicate asset names, using the first",
			"version", rel.Version,
			"asset", name,
			"duplicates", duplicates)
	}
	return *found, true
}

// firstNamed returns the first asset whose name is in candidates, honouring
// candidate order.
func firstNamed(assets []Asset, candidates []string) *Asset {
	for _, c := range candidates {
		for i := range assets {
			if assets[i].Name == c {
				a := assets[i]
				return &a
			}
		}
	}
	return nil
}
