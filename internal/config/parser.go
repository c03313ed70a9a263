package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/azmcp/internal/platform"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseFile parses the config file at path. A missing file yields Default().
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return p.ParseString(ctx, string(data))
}

// ParseString parses a Lua config from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	// Detect platform and inject platform table
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig reads the global azmcp table over the defaults.
func extractConfig(L *lua.LState) (*Config, error) {
	global := L.GetGlobal(luaGlobalAzmcp)
	if global.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'azmcp' table",
			Detail:  fmt.Sprintf("expected table, got %s", global.Type()),
		}
	}
	table := global.(*lua.LTable)
	config := Default()

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{luaFieldRepository, &config.Repository},
		{luaFieldProduct, &config.Product},
		{luaFieldWorkDir, &config.WorkDir},
		{luaFieldAPIURL, &config.APIURL},
		{luaFieldTokenEnv, &config.TokenEnv},
		{luaFieldLogLevel, &config.LogLevel},
	} {
		if err := readString(table, f.name, f.name, f.dst); err != nil {
			return nil, err
		}
	}

	if err := readBool(table, luaFieldIncludePreRelease, &config.IncludePreRelease); err != nil {
		return nil, err
	}

	if err := readTimeout(table, &config.Timeout); err != nil {
		return nil, err
	}

	switch verify := table.RawGetString(luaFieldVerify); verify.Type() {
	case lua.LTNil:
	case lua.LTTable:
		vt := verify.(*lua.LTable)
		if err := readString(vt, luaFieldMode, luaFieldVerify+"."+luaFieldMode, &config.Verify.Mode); err != nil {
			return nil, err
		}
		if err := readString(vt, luaFieldKeyring, luaFieldVerify+"."+luaFieldKeyring, &config.Verify.Keyring); err != nil {
			return nil, err
		}
	default:
		return nil, typeError(luaFieldVerify, "table", verify)
	}

	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

// readString copies a string field into dst. Nil keeps the default.
func readString(table *lua.LTable, key, field string, dst *string) error {
	switch v := table.RawGetString(key); v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTString:
		*dst = strings.TrimSpace(v.String())
		return nil
	default:
		return typeError(field, "string", v)
	}
}

func readBool(table *lua.LTable, key string, dst *bool) error {
	switch v := table.RawGetString(key); v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTBool:
		*dst = bool(v.(lua.LBool))
		return nil
	default:
		return typeError(key, "boolean", v)
	}
}

// readTimeout reads a whole number of seconds.
func readTimeout(table *lua.LTable, dst *time.Duration) error {
	v := table.RawGetString(luaFieldTimeout)
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTNumber:
		secs := float64(lua.LVAsNumber(v))
		if secs != math.Trunc(secs) || secs < 0 || secs > MaxTimeout.Seconds() {
			return &ParseError{
				Message: "invalid value for field '" + luaFieldTimeout + "'",
				Detail:  fmt.Sprintf("expected whole seconds between 1 and %d, got %v", int(MaxTimeout.Seconds()), secs),
			}
		}
		*dst = time.Duration(secs) * time.Second
		return nil
	default:
		return typeError(luaFieldTimeout, "number", v)
	}
}

func typeError(field, want string, got lua.LValue) *ParseError {
	return &ParseError{
		Message: "invalid type for field '" + field + "'",
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		// Extract the most relevant part of the error
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
