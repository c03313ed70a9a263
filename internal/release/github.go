package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIBase is the GitHub REST API root.
	DefaultAPIBase = "https://api.github.com"
	// DefaultAPITimeout bounds a single release listing request.
	DefaultAPITimeout = 30 * time.Second
	// DefaultPageSize is the number of releases inspected per lookup.
	DefaultPageSize = 30
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "azmcp/1.0"

	apiVersion = "2022-11-28"
)

// githubRelease is the subset of the GitHub releases API response we need.
type githubRelease struct {
	TagName    string        `json:"tag_name"`
	Draft      bool          `json:"draft"`
	Prerelease bool          `json:"prerelease"`
	Assets     []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// GitHubDirectory implements Directory on the GitHub releases API.
type GitHubDirectory struct {
	client    *http.Client
	baseURL   string
	token     string
	userAgent string
	pageSize  int
}

// GitHubOption configures a GitHubDirectory.
type GitHubOption func(*GitHubDirectory)

// WithBaseURL points the directory at another API root (GitHub Enterprise, tests).
func WithBaseURL(base string) GitHubOption {
	return func(d *GitHubDirectory) {
		d.baseURL = strings.TrimRight(base, "/")
	}
}

// WithToken sends the token as a bearer credential.
func WithToken(token string) GitHubOption {
	return func(d *GitHubDirectory) {
		d.token = strings.TrimSpace(token)
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) GitHubOption {
	return func(d *GitHubDirectory) {
		d.client = c
	}
}

// WithPageSize sets how many releases are inspected per lookup.
func WithPageSize(n int) GitHubOption {
	return func(d *GitHubDirectory) {
		if n > 0 {
			d.pageSize = n
		}
	}
}

// NewGitHubDirectory creates a release directory backed by the GitHub API.
func NewGitHubDirectory(opts ...GitHubOption) *GitHubDirectory {
	d := &GitHubDirectory{
		client:    &http.Client{Timeout: DefaultAPITimeout},
		baseURL:   DefaultAPIBase,
		userAgent: DefaultUserAgent,
		pageSize:  DefaultPageSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LatestRelease returns the newest release, in API order, that is not a
// draft and passes opts.
func (d *GitHubDirectory) LatestRelease(ctx context.Context, repository string, opts Options) (*Release, error) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid repository %q: want owner/name", repository)
	}

	releases, err := d.listReleases(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	for _, r := range releases {
		if r.Draft {
			continue
		}
		if r.Prerelease && !opts.IncludePreRelease {
			continue
		}
		if opts.RequireAssets && len(r.Assets) == 0 {
			continue
		}
		return r.toRelease(), nil
	}

	return nil, fmt.Errorf("no release of %s matches filters (require assets: %t, include pre-release: %t)",
		repository, opts.RequireAssets, opts.IncludePreRelease)
}

// listReleases fetches one page of releases, newest first.
func (d *GitHubDirectory) listReleases(ctx context.Context, owner, name string) ([]githubRelease, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		d.baseURL, url.PathEscape(owner), url.PathEscape(name), d.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", d.userAgent)
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GitHub API returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var releases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return releases, nil
}

func (r githubRelease) toRelease() *Release {
	rel := &Release{
		Version:    r.TagName,
		PreRelease: r.Prerelease,
		Assets:     make([]Asset, 0, len(r.Assets)),
	}
	for _, a := range r.Assets {
		rel.Assets = append(rel.Assets, Asset{Name: a.Name, URL: a.BrowserDownloadURL})
	}
	return rel
}
