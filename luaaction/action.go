package luaaction

import (
	"fmt"

	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/binding"
)

// CompileAction compiles a Lua chunk into a string-producing action.
// The chunk runs once per invocation and its return value is the action
// result, converted with Lua tostring semantics:
//
//	yell, err := state.CompileAction(`return "yell"`)
//
// Compilation errors (bad syntax) are reported here; runtime errors
// inside the chunk panic out of the returned action, tagged with the
// action's id, and propagate through the binding registry untouched.
func (s *State) CompileAction(code string) (binding.Action[string], error) {
	fn, err := s.load(code)
	if err != nil {
		return nil, fmt.Errorf("compiling lua action: %w", err)
	}
	return s.action(uuid.NewString(), fn), nil
}

// GlobalAction wraps a global Lua function, previously defined via
// DoString or DoFile, as a string-producing action.
func (s *State) GlobalAction(name string) (binding.Action[string], error) {
	fn, err := s.global(name)
	if err != nil {
		return nil, err
	}
	return s.action(name, fn), nil
}

// action builds the invoking closure. id appears in panic messages so a
// failing script can be identified after it has been rebound under a
// different event.
func (s *State) action(id string, fn lua.LValue) binding.Action[string] {
	return func() string {
		ret, err := s.call(fn)
		if err != nil {
			panic(fmt.Sprintf("lua action %s: %v", id, err))
		}
		return ret.String()
	}
}
