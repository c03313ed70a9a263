package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Azure/azure-mcp", cfg.Repository)
	assert.Equal(t, "azure-mcp", cfg.Product)
	assert.Equal(t, "none", cfg.Verify.Mode)
	assert.Equal(t, "GITHUB_TOKEN", cfg.TokenEnv)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"repository_missing_name", func(c *Config) { c.Repository = "Azure/" }, "repository"},
		{"repository_extra_segment", func(c *Config) { c.Repository = "a/b/c" }, "repository"},
		{"product_empty", func(c *Config) { c.Product = "" }, "product"},
		{"product_with_separator", func(c *Config) { c.Product = "../x" }, "product"},
		{"work_dir_relative", func(c *Config) { c.WorkDir = "servers" }, "work_dir"},
		{"work_dir_traversal", func(c *Config) { c.WorkDir = "~/../etc" }, "work_dir"},
		{"api_url_scheme", func(c *Config) { c.APIURL = "ftp://api.github.com" }, "api_url"},
		{"api_url_no_host", func(c *Config) { c.APIURL = "https://" }, "api_url"},
		{"api_url_query", func(c *Config) { c.APIURL = "https://api.github.com?x=1" }, "api_url"},
		{"token_env_invalid", func(c *Config) { c.TokenEnv = "1TOKEN" }, "token_env"},
		{"timeout_zero", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"timeout_too_long", func(c *Config) { c.Timeout = 2 * time.Hour }, "timeout"},
		{"log_level_unknown", func(c *Config) { c.LogLevel = "chatty" }, "log_level"},
		{"verify_mode_unknown", func(c *Config) { c.Verify.Mode = "sometimes" }, "verify.mode"},
		{"keyring_relative", func(c *Config) { c.Verify.Keyring = "keys.asc" }, "verify.keyring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestConfig_Validate_AcceptsVariants(t *testing.T) {
	cfg := Default()
	cfg.WorkDir = "~/.cache/azmcp"
	cfg.APIURL = "http://localhost:8080/api"
	cfg.LogLevel = "error"
	cfg.Verify = VerifyConfig{Mode: "if-available", Keyring: "/etc/azmcp/keys.gpg"}

	assert.NoError(t, cfg.Validate())
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "config validation failed for timeout: too long", (&ValidationError{Field: "timeout", Message: "too long"}).Error())
	assert.Equal(t, "config validation failed: bad", (&ValidationError{Message: "bad"}).Error())
}
