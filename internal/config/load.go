package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
)

// Loaded is a parsed configuration with its resolved paths.
type Loaded struct {
	Config *Config
	Paths  Paths
	// Exists is false when no config file was found and defaults apply.
	Exists bool
	// Findings lists credentials that appear to be pasted into the file.
	Findings []SensitiveDataFinding
}

// Load reads <state>/config.lua, falling back to Default() when it does not exist.
func Load(ctx context.Context, detector platform.Detector) (*Loaded, error) {
	stateDir, err := StateDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(ctx, detector, stateDir)
}

// LoadFrom is Load with an explicit state directory.
func LoadFrom(ctx context.Context, detector platform.Detector, stateDir string) (*Loaded, error) {
	path := Default().Resolve(stateDir).Config

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return &Loaded{Config: cfg, Paths: cfg.Resolve(stateDir)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := NewParser(detector).ParseString(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Loaded{
		Config:   cfg,
		Paths:    cfg.Resolve(stateDir),
		Exists:   true,
		Findings: DetectSensitiveData(string(data)),
	}, nil
}
