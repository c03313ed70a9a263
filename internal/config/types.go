package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/binary"
	"github.com/ZebulonRouseFrantzich/azmcp/internal/logging"
)

const (
	// DefaultRepository publishes the Azure MCP server releases.
	DefaultRepository = "Azure/azure-mcp"
	// DefaultProduct is the asset and version directory name prefix.
	DefaultProduct = "azure-mcp"
	// DefaultAPIURL is the public GitHub API.
	DefaultAPIURL = "https://api.github.com"
	// DefaultTokenEnv names the variable holding an optional API token.
	DefaultTokenEnv = "GITHUB_TOKEN"
	// DefaultTimeout bounds one download.
	DefaultTimeout = 5 * time.Minute
	// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
	DefaultLogLevel = "warn"

	// MaxTimeout is the longest accepted timeout.
	MaxTimeout = time.Hour
)

// Config represents the complete azmcp configuration.
type Config struct {
	// Repository is the "owner/name" the releases are published under.
	Repository string `json:"repository"`

	// Product prefixes asset and version directory names.
	Product string `json:"product"`

	// WorkDir holds extracted releases. Empty means <state>/servers.
	// Everything else in it is deleted.
	WorkDir string `json:"work_dir,omitempty"`

	APIURL   string `json:"api_url"`
	TokenEnv string `json:"token_env"`

	Timeout time.Duration `json:"timeout"`

	IncludePreRelease bool   `json:"include_prerelease"`
	LogLevel          string `json:"log_level"`

	Verify VerifyConfig `json:"verify"`
}

// VerifyConfig controls integrity checks of downloaded archives.
type VerifyConfig struct {
	// Mode is one of none, if-available or required.
	Mode string `json:"mode"`
	// Keyring is an armored or binary OpenPGP public keyring.
	Keyring string `json:"keyring,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Repository: DefaultRepository,
		Product:    DefaultProduct,
		APIURL:     DefaultAPIURL,
		TokenEnv:   DefaultTokenEnv,
		Timeout:    DefaultTimeout,
		LogLevel:   DefaultLogLevel,
		Verify:     VerifyConfig{Mode: string(binary.VerifyNone)},
	}
}

// Validate checks field values. Paths are checked for shape only.
func (c *Config) Validate() error {
	if !repositoryPattern.MatchString(c.Repository) {
		return &ValidationError{
			Field:   luaFieldRepository,
			Message: fmt.Sprintf("invalid repository %q (expected: owner/name)", c.Repository),
		}
	}

	if !productPattern.MatchString(c.Product) {
		return &ValidationError{
			Field:   luaFieldProduct,
			Message: fmt.Sprintf("invalid product %q", c.Product),
		}
	}

	if c.WorkDir != "" {
		if err := validatePath(c.WorkDir); err != nil {
			return &ValidationError{Field: luaFieldWorkDir, Message: err.Error()}
		}
	}

	if err := validateAPIURL(c.APIURL); err != nil {
		return &ValidationError{Field: luaFieldAPIURL, Message: err.Error()}
	}

	if !envNamePattern.MatchString(c.TokenEnv) {
		return &ValidationError{
			Field:   luaFieldTokenEnv,
			Message: fmt.Sprintf("invalid environment variable name %q", c.TokenEnv),
		}
	}

	if c.Timeout <= 0 || c.Timeout > MaxTimeout {
		return &ValidationError{
			Field:   luaFieldTimeout,
			Message: fmt.Sprintf("timeout must be between 1 and %d seconds (got: %s)", int(MaxTimeout.Seconds()), c.Timeout),
		}
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &ValidationError{Field: luaFieldLogLevel, Message: err.Error()}
	}

	if _, err := binary.ParseVerifyMode(c.Verify.Mode); err != nil {
		return &ValidationError{Field: luaFieldVerify + "." + luaFieldMode, Message: err.Error()}
	}

	if c.Verify.Keyring != "" {
		if err := validatePath(c.Verify.Keyring); err != nil {
			return &ValidationError{Field: luaFieldVerify + "." + luaFieldKeyring, Message: err.Error()}
		}
	}

	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

var (
	repositoryPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
	productPattern    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	envNamePattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// validateAPIURL validates the release API root.
func validateAPIURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("api url cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("api url must use https:// or http:// scheme (got: %s)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api url has no host: %s", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("api url must not carry a query or fragment: %s", raw)
	}

	return nil
}

// validatePath accepts absolute paths and ~/ paths without traversal.
func validatePath(path string) error {
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a NUL byte")
	}
	if !strings.HasPrefix(path, "~/") && !isAbs(path) {
		return fmt.Errorf("path must be absolute or start with ~/ (got: %s)", path)
	}
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("path traversal not allowed: %s", path)
		}
	}
	return nil
}
