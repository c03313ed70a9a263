// Package config loads azmcp settings from a sandboxed Lua file.
//
// # Overview
//
// The configuration lives in <state>/config.lua, where the state directory
// is $AZMCP_DIR or ~/.config/azmcp. The file assigns a global azmcp table:
//
//	azmcp = {
//	  repository = "Azure/azure-mcp",
//	  include_prerelease = false,
//	  timeout = 300,
//	  log_level = platform.is_windows and "info" or "warn",
//	  verify = { mode = "if-available", keyring = "~/.config/azmcp/azure.asc" },
//	}
//
// A missing file yields Default(). Fields left out keep their defaults.
//
// # Security Model
//
// Lua runs in gopher-lua with the os, io, debug and module loading
// functions removed, and with raw table access disabled so the injected
// platform table stays read-only. Configs are declarative: they can branch
// on the platform but cannot read the environment or the filesystem.
//
// Credentials never belong in the file. The API token is read from the
// environment variable named by token_env, and DetectSensitiveData flags
// tokens that were pasted in anyway.
//
// # Platform Table
//
// The read-only global platform exposes os, arch, is_linux, is_macos,
// is_windows, is_arm64, is_x64, is_supported, distro and when(cond, value).
package config
