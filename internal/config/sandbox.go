package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM configures a Lua VM to run in a restricted sandbox.
// This disables dangerous functions that could:
// - Execute system commands (os.execute, os.exit)
// - Access the filesystem or environment (io.open, os.getenv)
// - Load external code (require, dofile, loadfile)
// - Bypass read-only tables (rawset, setmetatable)
//
// Safe modules like string, table, and math are preserved.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range []string{
		"os", "io", "debug",
		"require", "module", "dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal", "setmetatable", "getmetatable",
		"setfenv", "getfenv", "collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
}

// newSandboxedVM creates a new Lua VM with sandboxing applied.
// This is the primary way to create a Lua state for config parsing.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
