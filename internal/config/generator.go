package config

import (
	"bytes"
	"fmt"
	"strings"
)

// Generator generates Lua configuration code from Go structs.
type Generator struct {
	indent string // Indentation string (default: two spaces)
}

// NewGenerator creates a new Lua config generator.
func NewGenerator() *Generator {
	return &Generator{
		indent: "  ", // Two spaces
	}
}

// Generate writes config as a commented azmcp table that ParseString
// reads back to an equal Config.
func (g *Generator) Generate(config *Config) (string, error) {
	if err := config.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer

	buf.WriteString("-- azmcp configuration\n")
	buf.WriteString("-- The read-only `platform` table is available, e.g.\n")
	buf.WriteString("--   log_level = platform.is_windows and \"info\" or \"warn\",\n")
	buf.WriteString("-- API tokens are read from the variable named by token_env; never put them here.\n\n")

	buf.WriteString(luaGlobalAzmcp + " = {\n")

	g.writeField(&buf, 1, luaFieldRepository, g.quoteLuaString(config.Repository))
	g.writeField(&buf, 1, luaFieldProduct, g.quoteLuaString(config.Product))
	if config.WorkDir != "" {
		g.writeField(&buf, 1, luaFieldWorkDir, g.quoteLuaString(config.WorkDir))
	}
	g.writeField(&buf, 1, luaFieldAPIURL, g.quoteLuaString(config.APIURL))
	g.writeField(&buf, 1, luaFieldTokenEnv, g.quoteLuaString(config.TokenEnv))
	g.writeField(&buf, 1, luaFieldTimeout, fmt.Sprintf("%d", int64(config.Timeout.Seconds())))
	g.writeField(&buf, 1, luaFieldIncludePreRelease, fmt.Sprintf("%t", config.IncludePreRelease))
	g.writeField(&buf, 1, luaFieldLogLevel, g.quoteLuaString(config.LogLevel))

	buf.WriteString(g.indent)
	buf.WriteString(luaFieldVerify + " = {\n")
	g.writeField(&buf, 2, luaFieldMode, g.quoteLuaString(config.Verify.Mode))
	if config.Verify.Keyring != "" {
		g.writeField(&buf, 2, luaFieldKeyring, g.quoteLuaString(config.Verify.Keyring))
	}
	buf.WriteString(g.indent)
	buf.WriteString("},\n")

	buf.WriteString("}\n")

	return buf.String(), nil
}

// writeField writes "key = value," at the given depth.
func (g *Generator) writeField(buf *bytes.Buffer, depth int, key, value string) {
	buf.WriteString(strings.Repeat(g.indent, depth))
	buf.WriteString(key)
	buf.WriteString(" = ")
	buf.WriteString(value)
	buf.WriteString(",\n")
}

// quoteLuaString quotes a string for Lua, handling special characters.
func (g *Generator) quoteLuaString(s string) string {
	// Use double quotes and escape special characters
	s = strings.ReplaceAll(s, "\\", "\\\\") // Escape backslashes first
	s = strings.ReplaceAll(s, "\"", "\\\"") // Escape double quotes
	s = strings.ReplaceAll(s, "\n", "\\n")  // Escape newlines
	s = strings.ReplaceAll(s, "\r", "\\r")  // Escape carriage returns
	s = strings.ReplaceAll(s, "\t", "\\t")  // Escape tabs
	return "\"" + s + "\""
}
