// Package server adapts the cached executable to a host that launches
// context servers: it parses the host's settings, builds the launch command
// and describes the configuration the host shows to users.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when the host has no settings for the server.
	ErrNotConfigured = errors.New("please configure the extension")
	// ErrInvalidSettings is returned when settings exist but cannot be used.
	ErrInvalidSettings = errors.New("invalid settings")
)

// Settings are the user-facing server settings.
type Settings struct {
	EnableProductionCredentials bool `json:"enable_production_credentials" jsonschema:"Use production credentials only instead of developer tooling such as the Azure CLI"`
}

// rawSettings detects missing fields, which a plain bool cannot.
type rawSettings struct {
	EnableProductionCredentials *bool `json:"enable_production_credentials"`
}

// ParseSettings decodes the settings object supplied by the host.
// Empty input or JSON null means the server was never configured.
func ParseSettings(data []byte) (*Settings, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNotConfigured
	}

	var raw rawSettings
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if raw.EnableProductionCredentials == nil {
		return nil, fmt.Errorf("%w: missing field enable_production_credentials", ErrInvalidSettings)
	}

	return &Settings{EnableProductionCredentials: *raw.EnableProductionCredentials}, nil
}
