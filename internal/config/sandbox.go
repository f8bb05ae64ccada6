package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLuaVM strips the libraries that reach outside the VM: os, io,
// debug and every way of loading more code. string, table and math stay.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range []string{
		"os", "io", "debug",
		"require", "dofile", "loadfile", "load", "loadstring", "module",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("package", lua.LNil)
}

func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
