package keymap

import (
	"strings"
	"testing"

	"github.com/dshills/keybind/key"
)

func testActions() Actions[string] {
	return Actions[string]{
		"yell":   func() string { return "yell" },
		"scream": func() string { return "scream" },
	}
}

func TestCompile(t *testing.T) {
	km := NewKeymap("test").
		Add("X", "yell").
		Add("Y", "scream")

	kbs, err := Compile(km, testActions())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	out, ok := kbs.RunAction(key.MustParse("X"))
	if !ok || out != "yell" {
		t.Errorf("RunAction(X) = %q, %v, want yell, true", out, ok)
	}
	out, ok = kbs.RunAction(key.MustParse("Y"))
	if !ok || out != "scream" {
		t.Errorf("RunAction(Y) = %q, %v, want scream, true", out, ok)
	}
}

// Any spelling of a chord resolves to the same binding.
func TestCompileNotationEquivalence(t *testing.T) {
	km := NewKeymap("test").Add("<C-s>", "yell")

	kbs, err := Compile(km, testActions())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	if _, ok := kbs.GetAction(key.MustParse("Ctrl+S")); !ok {
		t.Error("lookup by equivalent notation failed")
	}
}

// A binding declared "Shift+a" must match input parsed as "A": both
// spellings canonicalize to the same chord.
func TestCompileShiftedLetterSpellings(t *testing.T) {
	km := NewKeymap("test").Add("Shift+a", "yell")

	kbs, err := Compile(km, testActions())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	out, ok := kbs.RunAction(key.MustParse("A"))
	if !ok || out != "yell" {
		t.Errorf("RunAction(A) = %q, %v, want yell, true", out, ok)
	}
}

func TestCompileDuplicateLastWins(t *testing.T) {
	km := NewKeymap("test").
		Add("X", "yell").
		Add("X", "scream")

	kbs, err := Compile(km, testActions())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	out, _ := kbs.RunAction(key.MustParse("X"))
	if out != "scream" {
		t.Errorf("RunAction(X) = %q, want scream (later binding wins)", out)
	}
	if kbs.Len() != 1 {
		t.Errorf("Len() = %d, want 1", kbs.Len())
	}
}

func TestCompileUnknownAction(t *testing.T) {
	km := NewKeymap("test").Add("X", "missing")

	_, err := Compile(km, testActions())
	if err == nil {
		t.Fatal("Compile() error = nil, want unknown action error")
	}
	if !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("Compile() error = %v, want unknown action", err)
	}
}

func TestCompileBadKeySpec(t *testing.T) {
	km := NewKeymap("test").Add("Bogus+x", "yell")

	_, err := Compile(km, testActions())
	if err == nil {
		t.Fatal("Compile() error = nil, want key spec error")
	}
}

func TestCompileNilKeymap(t *testing.T) {
	if _, err := Compile[string](nil, testActions()); err == nil {
		t.Error("Compile(nil) error = nil, want error")
	}
}

func TestCompileAllPriority(t *testing.T) {
	base := NewKeymap("base").
		Add("X", "yell").
		Add("Y", "yell")
	user := NewKeymap("user").
		WithPriority(10).
		Add("X", "scream")

	// Slice order deliberately highest-first; priority must decide.
	kbs, err := CompileAll([]*Keymap{user, base}, testActions())
	if err != nil {
		t.Fatalf("CompileAll() error: %v", err)
	}

	out, _ := kbs.RunAction(key.MustParse("X"))
	if out != "scream" {
		t.Errorf("RunAction(X) = %q, want scream (user keymap overrides)", out)
	}
	out, _ = kbs.RunAction(key.MustParse("Y"))
	if out != "yell" {
		t.Errorf("RunAction(Y) = %q, want yell (base keymap kept)", out)
	}
}

func TestCompileAllEqualPriorityKeepsOrder(t *testing.T) {
	first := NewKeymap("first").Add("X", "yell")
	second := NewKeymap("second").Add("X", "scream")

	kbs, err := CompileAll([]*Keymap{first, second}, testActions())
	if err != nil {
		t.Fatalf("CompileAll() error: %v", err)
	}

	out, _ := kbs.RunAction(key.MustParse("X"))
	if out != "scream" {
		t.Errorf("RunAction(X) = %q, want scream (later keymap wins a tie)", out)
	}
}

func TestCompileIntoOverwrites(t *testing.T) {
	km := NewKeymap("base").Add("X", "yell")
	kbs, err := Compile(km, testActions())
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	over := NewKeymap("over").Add("X", "scream")
	if err := CompileInto(over, testActions(), kbs); err != nil {
		t.Fatalf("CompileInto() error: %v", err)
	}

	out, _ := kbs.RunAction(key.MustParse("X"))
	if out != "scream" {
		t.Errorf("RunAction(X) = %q, want scream", out)
	}
}
