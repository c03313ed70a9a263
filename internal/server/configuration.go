package server

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

//go:embed configuration/installation_instructions.md
var installationInstructions string

//go:embed configuration/default_settings.jsonc
var defaultSettings string

// Configuration is what the host shows users when setting up the server.
type Configuration struct {
	InstallationInstructions string `json:"installation_instructions"`
	DefaultSettings          string `json:"default_settings"`
	// SettingsSchema is the JSON Schema of Settings, serialised.
	SettingsSchema string `json:"settings_schema"`
}

// SettingsSchema infers the JSON Schema of Settings.
func SettingsSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[Settings](nil)
	if err != nil {
		return nil, fmt.Errorf("infer settings schema: %w", err)
	}
	schema.Title = "Azure MCP server settings"
	return schema, nil
}

// NewConfiguration assembles the host configuration.
func NewConfiguration() (*Configuration, error) {
	schema, err := SettingsSchema()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("serialise settings schema: %w", err)
	}

	return &Configuration{
		InstallationInstructions: installationInstructions,
		DefaultSettings:          defaultSettings,
		SettingsSchema:           string(data),
	}, nil
}
