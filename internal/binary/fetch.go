package binary

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/logging"
)

// Fetcher downloads, verifies and extracts release archives.
type Fetcher struct {
	downloadDir string
	mode        VerifyMode
	downloader  *Downloader
	verifier    *Verifier
	extractor   *Extractor
	logger      logging.Logger
}

// FetcherConfig holds configuration for the fetcher
type FetcherConfig struct {
	// DownloadDir holds archives while they are verified and extracted.
	// It must not be the directory the archives are extracted into.
	DownloadDir string
	// Timeout bounds each HTTP request (default: DefaultTimeout).
	Timeout time.Duration
	// Retries is the number of extra download attempts (default: none).
	Retries     int
	VerifyMode  VerifyMode
	KeyringPath string
	Logger      logging.Logger
}

// NewFetcher creates a new fetcher
func NewFetcher(cfg FetcherConfig) (*Fetcher, error) {
	if cfg.DownloadDir == "" {
		return nil, errors.New("DownloadDir is required")
	}
	mode, err := ParseVerifyMode(string(cfg.VerifyMode))
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		downloadDir: cfg.DownloadDir,
		mode:        mode,
		downloader:  NewDownloader(cfg.Timeout, cfg.Retries),
		verifier:    NewVerifier(cfg.KeyringPath),
		extractor:   NewExtractor(),
		logger:      logging.OrNop(cfg.Logger),
	}, nil
}

// FetchAndExtract downloads req.URL and extracts it into req.DestDir.
//
// The archive is extracted into a staging sibling of DestDir which is
// renamed into place only after extraction succeeded; on failure neither
// the staging directory nor DestDir is left behind.
func (f *Fetcher) FetchAndExtract(ctx context.Context, req FetchRequest) error {
	if req.URL == "" {
		return errors.New("fetch request has no URL")
	}
	if req.DestDir == "" {
		return errors.New("fetch request has no destination")
	}
	if req.Kind != ArchiveGzipTar {
		return fmt.Errorf("unsupported archive kind: %q", req.Kind)
	}

	name := req.Name
	if name == "" {
		name = assetNameFromURL(req.URL)
	}

	id := uuid.NewString()
	archivePath := filepath.Join(f.downloadDir, id+"-"+name)
	defer os.Remove(archivePath)

	start := time.Now()
	if err := f.downloader.DownloadToFile(ctx, req.URL, archivePath); err != nil {
		return fmt.Errorf("download %s: %w", name, err)
	}

	method, err := f.verify(ctx, req, name, archivePath, id)
	if err != nil {
		return fmt.Errorf("verify %s: %w", name, err)
	}

	if err := f.install(archivePath, req.DestDir, req.Kind, id); err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}

	f.logger.Info("fetched release archive",
		"asset", name,
		"dest", req.DestDir,
		"verified", method.String(),
		"duration", time.Since(start).String())
	return nil
}

// install extracts into a staging directory and renames it to destDir.
func (f *Fetcher) install(archivePath, destDir string, kind ArchiveKind, id string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	staging := filepath.Join(parent, fmt.Sprintf(".%s.staging-%s", filepath.Base(destDir), id))
	if err := f.extractor.Extract(archivePath, staging, kind); err != nil {
		os.RemoveAll(staging)
		return err
	}

	// An existing destDir is an incomplete leftover; the caller only fetches
	// when the expected artifact is missing.
	if err := os.RemoveAll(destDir); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("remove previous %s: %w", destDir, err)
	}
	if err := os.Rename(staging, destDir); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("move staging dir into place: %w", err)
	}
	return nil
}

// verify checks the archive per the configured mode and returns the method
// that succeeded. GPG is preferred over SHA256.
func (f *Fetcher) verify(ctx context.Context, req FetchRequest, name, archivePath, id string) (VerificationMethod, error) {
	if f.mode == VerifyNone {
		return VerificationNone, nil
	}

	if req.SignatureURL != "" && f.verifier.CanVerifySignatures() {
		sigPath := filepath.Join(f.downloadDir, id+"-"+assetNameFromURL(req.SignatureURL))
		defer os.Remove(sigPath)

		if err := f.downloader.DownloadToFile(ctx, req.SignatureURL, sigPath); err != nil {
			return VerificationNone, fmt.Errorf("download signature: %w", err)
		}
		if _, err := f.verifier.VerifyGPG(archivePath, sigPath); err != nil {
			return VerificationNone, err
		}
		return VerificationGPG, nil
	}

	if req.ChecksumURL != "" {
		sumPath := filepath.Join(f.downloadDir, id+"-"+assetNameFromURL(req.ChecksumURL))
		defer os.Remove(sumPath)

		if err := f.downloader.DownloadToFile(ctx, req.ChecksumURL, sumPath); err != nil {
			return VerificationNone, fmt.Errorf("download checksums: %w", err)
		}
		if _, err := f.verifier.VerifySHA256(archivePath, sumPath, name); err != nil {
			return VerificationNone, err
		}
		return VerificationSHA256, nil
	}

	if f.mode == VerifyRequired {
		return VerificationNone, errors.New("verification required but the release publishes no usable checksum or signature")
	}

	f.logger.Warn("no checksum or signature published, archive not verified", "asset", name)
	return VerificationNone, nil
}

// assetNameFromURL returns the last path segment of a download URL.
func assetNameFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		if base := path.Base(u.Path); base != "/" && base != "." {
			return base
		}
	}
	return "download"
}
