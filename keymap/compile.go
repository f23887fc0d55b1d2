package keymap

import (
	"fmt"
	"sort"

	"github.com/dshills/keybind/binding"
	"github.com/dshills/keybind/key"
)

// Actions is a named table of callables a keymap can refer to.
type Actions[R any] map[string]binding.Action[R]

// Compile resolves a keymap against an action table into a binding
// registry keyed by key.Chord. Bindings are registered in order, so a
// later binding for the same chord overwrites an earlier one.
//
// A key specification that does not parse, or an action name absent
// from the table, is an error.
func Compile[R any](km *Keymap, actions Actions[R]) (*binding.Bindings[key.Chord, R], error) {
	kbs := binding.New[key.Chord, R]()
	if err := CompileInto(km, actions, kbs); err != nil {
		return nil, err
	}
	return kbs, nil
}

// CompileInto resolves a keymap into an existing registry, overwriting
// any chords already bound there.
func CompileInto[R any](km *Keymap, actions Actions[R], kbs *binding.Bindings[key.Chord, R]) error {
	if km == nil {
		return fmt.Errorf("cannot compile nil keymap")
	}

	for i, b := range km.Bindings {
		chord, err := key.Parse(b.Keys)
		if err != nil {
			return fmt.Errorf("keymap %q binding %d (%s): %w", km.Name, i, b.Keys, err)
		}

		action, ok := actions[b.Action]
		if !ok {
			return fmt.Errorf("keymap %q binding %d (%s): unknown action %q", km.Name, i, b.Keys, b.Action)
		}

		kbs.BindAction(chord, action)
	}

	return nil
}

// CompileAll merges several keymaps into one registry. Keymaps are
// registered in ascending Priority order (ties keep slice order), so
// bindings from a higher-priority keymap overwrite lower-priority ones.
func CompileAll[R any](kms []*Keymap, actions Actions[R]) (*binding.Bindings[key.Chord, R], error) {
	ordered := make([]*Keymap, len(kms))
	copy(ordered, kms)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	kbs := binding.New[key.Chord, R]()
	for _, km := range ordered {
		if err := CompileInto(km, actions, kbs); err != nil {
			return nil, err
		}
	}
	return kbs, nil
}
