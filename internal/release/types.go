// Package release picks the release asset to run on this machine.
//
// A Directory lists published releases; the Resolver asks it for the latest
// qualifying release and selects the single asset whose file name matches
// the fixed naming scheme for the detected platform.
package release

import (
	"context"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
)

// Release is one published version and its assets, in the order the
// directory returned them.
type Release struct {
	Version    string
	PreRelease bool
	Assets     []Asset
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name string
	URL  string
}

// Options filter which release counts as the latest.
type Options struct {
	// RequireAssets skips releases without assets.
	RequireAssets bool
	// IncludePreRelease allows pre-releases to be selected.
	IncludePreRelease bool
}

// Directory looks up releases for a repository ("owner/name").
type Directory interface {
	LatestRelease(ctx context.Context, repository string, opts Options) (*Release, error)
}

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	Release  *Release
	Asset    Asset
	Platform *platform.Info

	// Checksum and Signature are companion assets published next to Asset.
	// They are nil when the release does not carry them.
	Checksum  *Asset
	Signature *Asset
}
