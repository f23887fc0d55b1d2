// Package key provides structured keyboard events for use as binding
// registry keys.
//
// A Chord is a single key press: a special key or a character rune plus
// modifier flags. Chord is a comparable value type, so it can key a map
// (or a binding registry) directly, and two chords describing the same
// press always compare equal.
//
// # Notation
//
// Chords parse from several equivalent notations:
//
//	"j"        - Single character
//	"Ctrl+S"   - Readable modifier notation
//	"C-s"      - Vim notation
//	"<C-s>"    - Vim angle-bracket notation
//	"<CR>"     - Vim special-key aliases
//	"Enter"    - Special key by name
//
// Parse returns the canonical Chord for any of these; String renders the
// canonical readable form.
package key
