// Package binding implements a generic event-to-action binding registry,
// the "Command Pattern" decoupled into a reusable data structure.
//
// A registry associates discrete events (keycodes, command names, any
// comparable value) with actions: deferred, zero-argument computations
// producing a result. Dispatch call sites look up or run the action bound
// to an event; behaviors are rebound at runtime without touching those
// call sites.
//
// # Key Concepts
//
// Event: the comparable value used to select an action.
//
// Action: a func() R handle. The registry stores the handle, never a copy
// of the computation; Go closures are garbage collected, so a stored
// handle keeps its referent alive and there is no dangling-action hazard.
//
// Binding: the association of one event to one action handle. At most one
// handle per event; binding an already-bound event overwrites.
//
// # Usage
//
//	kbs := binding.NewWith([]binding.Pair[string, string]{
//	    {Event: "X", Action: yell},
//	    {Event: "Y", Action: scream},
//	})
//
//	out, ok := kbs.RunAction("X") // "yell", true
//	kbs.BindAction("X", scream)
//	out, ok = kbs.RunAction("X") // "scream", true
//
// # Concurrency
//
// A Bindings value is exclusively owned by its creator and performs no
// internal locking. Callers sharing a registry across goroutines must
// wrap it in their own synchronization.
package binding
