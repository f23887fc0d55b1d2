// Package keymap provides declarative keymaps on top of the core binding
// registry.
//
// A Keymap names actions; it does not contain code. Callers supply an
// Actions table mapping action names to callables, and Compile resolves
// key specifications and action names into a ready binding registry keyed
// by key.Chord.
//
// # Precedence
//
// A single keymap resolves duplicate chords last-write-wins, in binding
// order. CompileAll merges several keymaps by registering them in
// ascending Priority order, so bindings from a higher-priority keymap
// overwrite lower-priority ones.
//
// # Files
//
// Loader reads keymap files in JSON, YAML, or TOML, chosen by file
// extension. Watcher reports changes to keymap files so callers can
// recompile and rebind at runtime.
//
// # Usage
//
//	km := keymap.NewKeymap("user").
//	    Add("Ctrl+S", "file.save").
//	    Add("<C-q>", "app.quit")
//
//	actions := keymap.Actions[string]{
//	    "file.save": save,
//	    "app.quit":  quit,
//	}
//
//	kbs, err := keymap.Compile(km, actions)
//	out, ok := kbs.RunAction(key.MustParse("Ctrl+S"))
package keymap
