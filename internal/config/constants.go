package config

// Lua schema field names and globals
const (
	luaGlobalAzmcp            = "azmcp"
	luaFieldRepository        = "repository"
	luaFieldProduct           = "product"
	luaFieldWorkDir           = "work_dir"
	luaFieldAPIURL            = "api_url"
	luaFieldTokenEnv          = "token_env"
	luaFieldTimeout           = "timeout"
	luaFieldIncludePreRelease = "include_prerelease"
	luaFieldLogLevel          = "log_level"
	luaFieldVerify            = "verify"
	luaFieldMode              = "mode"
	luaFieldKeyring           = "keyring"
)
