// Package luaaction turns Lua chunks into binding registry actions.
//
// A State is a sandboxed Lua interpreter: only the base, table, string,
// and math libraries are opened, so scripts cannot touch the file system
// or spawn processes. CompileAction loads a chunk whose return value
// becomes the action result; GlobalAction wraps a function the script
// has already defined.
//
//	state, _ := luaaction.NewState()
//	defer state.Close()
//
//	yell, err := state.CompileAction(`return "yell"`)
//	kbs := binding.New[string, string]()
//	kbs.BindAction("X", yell)
//
// A Lua runtime error inside an action panics with the action's id and
// the Lua error text. The binding registry adds no recovery, so the
// panic reaches the caller of RunAction, which is where resilience
// policy belongs.
//
// gopher-lua's LState is not goroutine-safe; State serializes access
// with a mutex, so actions compiled from one State may be run from the
// single goroutine owning the registry without further coordination.
package luaaction
