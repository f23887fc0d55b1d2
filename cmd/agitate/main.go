// Package main is a small demo of the binding registry, exercising
// basic features. Inspiration is keybindings for a game.
package main

import (
	"fmt"
	"os"

	"github.com/dshills/keybind/binding"
)

// yell is a sample action.
func yell() string {
	return "yell"
}

// scream is another sample action.
func scream() string {
	return "scream"
}

// keycodes is the default list of keycodes and corresponding actions.
var keycodes = []binding.Pair[string, string]{
	{Event: "X", Action: yell},
	{Event: "Y", Action: scream},
}

func main() {
	os.Exit(run())
}

func run() int {
	kbs := binding.NewWith(keycodes)

	out, ok := kbs.RunAction("X")
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: X is unbound")
		return 1
	}
	fmt.Println(out)

	// Rebind X to whatever Y does, then run it again.
	yAction, ok := kbs.GetAction("Y")
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: Y is unbound")
		return 1
	}
	kbs.BindAction("X", yAction)

	out, ok = kbs.RunAction("X")
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: X is unbound")
		return 1
	}
	fmt.Println(out)

	return 0
}
