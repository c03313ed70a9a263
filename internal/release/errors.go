package release

import "errors"

var (
	// ErrReleaseLookupFailed means no usable release was found.
	ErrReleaseLookupFailed = errors.New("release lookup failed")
	// ErrUnsupportedPlatform means no asset is published for this OS/architecture.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrNoMatchingAsset means the release has no asset with the expected name.
	ErrNoMatchingAsset = errors.New("no matching asset found")
)
