package key

import (
	"fmt"
	"unicode"
)

// Chord represents a single key press: a special key or a character,
// plus modifiers. Chord is a plain comparable value, so equivalent
// presses always compare equal and a Chord can be used directly as a
// map key.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune chords, zero otherwise.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// NewChord creates a chord for a special key.
func NewChord(k Key, mods Modifier) Chord {
	return Chord{Key: k, Mods: mods}
}

// NewRuneChord creates a chord for a character key.
func NewRuneChord(r rune, mods Modifier) Chord {
	return Chord{Key: KeyRune, Rune: r, Mods: mods}
}

// IsRune returns true if this is a character chord.
func (c Chord) IsRune() bool {
	return c.Key == KeyRune && c.Rune != 0
}

// IsZero returns true if the chord is empty.
func (c Chord) IsZero() bool {
	return c == Chord{}
}

// String returns the canonical readable form, e.g. "s", "Ctrl+s",
// "Ctrl+Enter". The result parses back to an equal Chord.
func (c Chord) String() string {
	var base string
	if c.Key == KeyRune {
		base = string(c.Rune)
	} else {
		base = c.Key.String()
	}

	// Shift alone on an uppercase letter is implied by the letter
	// itself. Other runes (digits, punctuation) keep it spelled out.
	mods := c.Mods
	if c.IsRune() && mods == ModShift && unicode.IsUpper(c.Rune) {
		mods = ModNone
	}

	if mods.IsEmpty() {
		return base
	}
	return fmt.Sprintf("%s+%s", mods, base)
}
