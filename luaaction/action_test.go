package luaaction

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/keybind/binding"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error: %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestCompileAction(t *testing.T) {
	state := newTestState(t)

	yell, err := state.CompileAction(`return "yell"`)
	if err != nil {
		t.Fatalf("CompileAction() error: %v", err)
	}

	if out := yell(); out != "yell" {
		t.Errorf("action() = %q, want %q", out, "yell")
	}
}

func TestCompileActionSyntaxError(t *testing.T) {
	state := newTestState(t)

	if _, err := state.CompileAction(`return ((`); err == nil {
		t.Error("CompileAction on bad syntax error = nil, want error")
	}
}

func TestCompileActionStatefulScript(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`count = 0`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}
	tick, err := state.CompileAction(`count = count + 1; return "tick " .. count`)
	if err != nil {
		t.Fatalf("CompileAction() error: %v", err)
	}

	if out := tick(); out != "tick 1" {
		t.Errorf("first call = %q, want %q", out, "tick 1")
	}
	if out := tick(); out != "tick 2" {
		t.Errorf("second call = %q, want %q", out, "tick 2")
	}
}

func TestGlobalAction(t *testing.T) {
	state := newTestState(t)

	err := state.DoString(`function scream() return "scream" end`)
	if err != nil {
		t.Fatalf("DoString() error: %v", err)
	}

	scream, err := state.GlobalAction("scream")
	if err != nil {
		t.Fatalf("GlobalAction() error: %v", err)
	}
	if out := scream(); out != "scream" {
		t.Errorf("action() = %q, want %q", out, "scream")
	}
}

func TestGlobalActionErrors(t *testing.T) {
	state := newTestState(t)

	if _, err := state.GlobalAction("missing"); err == nil {
		t.Error("GlobalAction(missing) error = nil, want not found")
	}

	if err := state.DoString(`notafunc = 42`); err != nil {
		t.Fatalf("DoString() error: %v", err)
	}
	if _, err := state.GlobalAction("notafunc"); err == nil {
		t.Error("GlobalAction(notafunc) error = nil, want not-a-function")
	}
}

func TestLuaActionsInRegistry(t *testing.T) {
	state := newTestState(t)

	yell, err := state.CompileAction(`return "yell"`)
	if err != nil {
		t.Fatalf("CompileAction() error: %v", err)
	}
	scream, err := state.CompileAction(`return "scream"`)
	if err != nil {
		t.Fatalf("CompileAction() error: %v", err)
	}

	kbs := binding.NewWith([]binding.Pair[string, string]{
		{Event: "X", Action: yell},
		{Event: "Y", Action: scream},
	})

	out, ok := kbs.RunAction("X")
	if !ok || out != "yell" {
		t.Errorf("RunAction(X) = %q, %v, want yell, true", out, ok)
	}

	kbs.BindAction("X", scream)
	out, _ = kbs.RunAction("X")
	if out != "scream" {
		t.Errorf("RunAction(X) = %q after rebind, want scream", out)
	}
}

func TestRuntimeErrorPanics(t *testing.T) {
	state := newTestState(t)

	boom, err := state.CompileAction(`error("kaboom")`)
	if err != nil {
		t.Fatalf("CompileAction() error: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("lua runtime error did not panic")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("recovered %T, want string", r)
		}
		if !strings.Contains(msg, "kaboom") || !strings.Contains(msg, "lua action") {
			t.Errorf("panic message = %q, want lua action id and kaboom", msg)
		}
	}()
	boom()
}

func TestSandboxExcludesSystemLibraries(t *testing.T) {
	state := newTestState(t)

	for _, lib := range []string{"os", "io", "debug", "package"} {
		if err := state.DoString(`if ` + lib + ` ~= nil then error("open") end`); err != nil {
			t.Errorf("library %s is reachable from the sandbox: %v", lib, err)
		}
	}
}

func TestClosedState(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error: %v", err)
	}

	tick, err := state.CompileAction(`return "tick"`)
	if err != nil {
		t.Fatalf("CompileAction() error: %v", err)
	}

	if err := state.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}

	if err := state.DoString(`return 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString after Close error = %v, want ErrStateClosed", err)
	}
	if _, err := state.CompileAction(`return "x"`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("CompileAction after Close error = %v, want ErrStateClosed", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("running an action after Close did not panic")
		}
	}()
	tick()
}
