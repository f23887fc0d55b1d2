// Package main runs actions from a keymap file.
//
// Usage:
//
//	kbmap -keymap user.toml Ctrl+S "<C-q>"
//	kbmap -keymap user.yaml -lua actions.lua -watch Ctrl+S
//
// The keymap may bind Go built-in actions (echo.hello, time.now) or,
// with -lua, any function defined by the script under a "lua." name:
// a binding action "lua.greet" calls the script's greet().
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/keybind/binding"
	"github.com/dshills/keybind/key"
	"github.com/dshills/keybind/keymap"
	"github.com/dshills/keybind/luaaction"
)

func main() {
	os.Exit(run())
}

func run() int {
	var keymapPath string
	var luaPath string
	var watch bool
	var list bool

	flag.StringVar(&keymapPath, "keymap", "", "Path to keymap file (.json, .yaml, .toml)")
	flag.StringVar(&luaPath, "lua", "", "Path to Lua script defining actions")
	flag.BoolVar(&watch, "watch", false, "Reload the keymap when the file changes")
	flag.BoolVar(&list, "list", false, "List bindings and exit")
	flag.Parse()

	if keymapPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -keymap is required")
		flag.Usage()
		return 1
	}

	var state *luaaction.State
	if luaPath != "" {
		var err error
		state, err = luaaction.NewState()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: creating lua state: %v\n", err)
			return 1
		}
		defer state.Close()
		if err := state.DoFile(luaPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading %s: %v\n", luaPath, err)
			return 1
		}
	}

	loader := keymap.NewLoader()
	km, kbs, err := load(loader, keymapPath, state)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if list {
		printBindings(km)
		return 0
	}

	runSpecs(kbs, flag.Args())

	if !watch {
		return 0
	}

	w, err := keymap.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()
	if err := w.Watch(keymapPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return 0
		case ev, ok := <-w.Events():
			if !ok {
				return 0
			}
			if ev.Op&(keymap.OpWrite|keymap.OpCreate) == 0 {
				continue
			}
			km, kbs, err = load(loader, keymapPath, state)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: reloading: %v\n", err)
				continue
			}
			fmt.Printf("reloaded %s (%d bindings)\n", keymapPath, len(km.Bindings))
			runSpecs(kbs, flag.Args())
		case err, ok := <-w.Errors():
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "Error: watching: %v\n", err)
		}
	}
}

// load reads a keymap file and compiles it against the action table.
func load(loader *keymap.Loader, path string, state *luaaction.State) (*keymap.Keymap, *binding.Bindings[key.Chord, string], error) {
	km, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if err := km.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validating %s: %w", path, err)
	}

	actions, err := buildActions(km, state)
	if err != nil {
		return nil, nil, err
	}

	kbs, err := keymap.Compile(km, actions)
	if err != nil {
		return nil, nil, err
	}
	return km, kbs, nil
}

// buildActions assembles built-ins plus any lua.* actions the keymap
// refers to.
func buildActions(km *keymap.Keymap, state *luaaction.State) (keymap.Actions[string], error) {
	actions := keymap.Actions[string]{
		"echo.hello": func() string { return "hello" },
		"time.now":   func() string { return time.Now().Format(time.RFC3339) },
	}

	for _, b := range km.Bindings {
		name, ok := strings.CutPrefix(b.Action, "lua.")
		if !ok {
			continue
		}
		if state == nil {
			return nil, fmt.Errorf("binding %s uses %s but no -lua script is loaded", b.Keys, b.Action)
		}
		action, err := state.GlobalAction(name)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", b.Keys, err)
		}
		actions[b.Action] = action
	}

	return actions, nil
}

// runSpecs runs the action bound to each key spec and prints results.
func runSpecs(kbs *binding.Bindings[key.Chord, string], specs []string) {
	for _, spec := range specs {
		chord, err := key.Parse(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		out, ok := kbs.RunAction(chord)
		if !ok {
			fmt.Printf("%s: unbound\n", chord)
			continue
		}
		fmt.Printf("%s: %s\n", chord, out)
	}
}

// printBindings lists the keymap grouped by category.
func printBindings(km *keymap.Keymap) {
	fmt.Printf("%s (%s)\n", km.Name, km.Source)
	for _, group := range keymap.GroupByCategory(km.Bindings) {
		fmt.Printf("  %s:\n", group.Name)
		for _, b := range group.Bindings {
			chord := b.Keys
			if normalized, err := key.Normalize(b.Keys); err == nil {
				chord = normalized
			}
			if b.Description != "" {
				fmt.Printf("    %-16s %s  (%s)\n", chord, b.Action, b.Description)
			} else {
				fmt.Printf("    %-16s %s\n", chord, b.Action)
			}
		}
	}
}
