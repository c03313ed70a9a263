package server

import (
	"context"
	"sort"
)

// ProductionCredentialsEnv tells the server to use production credentials only.
const ProductionCredentialsEnv = "AZURE_MCP_PRODUCTION_CREDENTIALS"

// ArtifactProvider returns the path of a runnable server executable.
type ArtifactProvider interface {
	GetArtifactPath(ctx context.Context) (string, error)
}

// Command is how the host launches the server.
type Command struct {
	Path string            `json:"command"`
	Args []string          `json:"args"`
	Env  map[string]string `json:"env"`
}

// BuildCommand validates settings, makes sure the executable is available
// and returns the command that starts the server.
func BuildCommand(ctx context.Context, provider ArtifactProvider, settings *Settings) (*Command, error) {
	if settings == nil {
		return nil, ErrNotConfigured
	}

	env := map[string]string{}
	if settings.EnableProductionCredentials {
		env[ProductionCredentialsEnv] = "true"
	}

	path, err := provider.GetArtifactPath(ctx)
	if err != nil {
		return nil, err
	}

	return &Command{
		Path: path,
		Args: []string{"server", "start"},
		Env:  env,
	}, nil
}

// Environ appends the command's variables to base in KEY=VALUE form,
// sorted by key.
func (c *Command) Environ(base []string) []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := append([]string(nil), base...)
	for _, k := range keys {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}
