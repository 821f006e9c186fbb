package key

import (
	"fmt"
	"unicode"
)

// Info is a normalized key descriptor: one physical key plus the modifier
// mask active when it was pressed. Info is an immutable value type;
// equality and map-key behavior follow from plain struct comparison.
type Info struct {
	// Key identifies the key.
	Key Key

	// Rune is the character for KeyRune keys.
	Rune rune

	// Mods contains the active modifier keys.
	Mods Modifier
}

// NewInfo creates a normalized key descriptor.
//
// Normalization rules:
//   - For character keys, Shift is dropped from the mask since the rune
//     itself carries the case ("A" is shift+a already).
//   - For Ctrl-modified characters the rune is lowered, so Ctrl+X and
//     Ctrl+x compare equal.
func NewInfo(k Key, r rune, mods Modifier) Info {
	if k == KeyRune {
		mods = mods.Without(ModShift)
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
	} else {
		r = 0
	}
	return Info{Key: k, Rune: r, Mods: mods}
}

// NewRuneInfo creates a descriptor for a character key.
func NewRuneInfo(r rune, mods Modifier) Info {
	return NewInfo(KeyRune, r, mods)
}

// NewSpecialInfo creates a descriptor for a special key.
func NewSpecialInfo(k Key, mods Modifier) Info {
	return NewInfo(k, 0, mods)
}

// Valid returns true if the descriptor identifies an actual key.
func (i Info) Valid() bool {
	if i.Key == KeyNone {
		return false
	}
	if i.Key == KeyRune {
		return i.Rune != 0
	}
	return true
}

// IsRune returns true if this is a character key.
func (i Info) IsRune() bool {
	return i.Key == KeyRune && i.Rune != 0
}

// IsSpecial returns true if this is a special (non-character) key, or if
// it is a character key carrying Ctrl/Alt/Meta.
func (i Info) IsSpecial() bool {
	if i.Key.IsSpecial() {
		return true
	}
	return !i.Mods.IsEmpty()
}

// IsModifier returns true if this is a bare modifier key press.
func (i Info) IsModifier() bool {
	return i.Key.IsModifier()
}

// Text returns the text this key produces, or "" for special keys and
// modified characters.
func (i Info) Text() string {
	if !i.IsRune() || !i.Mods.IsEmpty() {
		return ""
	}
	return string(i.Rune)
}

// String renders the descriptor in the canonical binding notation:
// printable unmodified characters are literal, everything else uses
// angle brackets, e.g. "<Ctrl+x>", "<Escape>", "<Alt+Enter>".
func (i Info) String() string {
	if i.IsRune() && i.Mods.IsEmpty() && unicode.IsPrint(i.Rune) &&
		i.Rune != '<' && i.Rune != ' ' {
		return string(i.Rune)
	}

	name := i.keyName()
	if mods := i.Mods.String(); mods != "" {
		return "<" + mods + "+" + name + ">"
	}
	return "<" + name + ">"
}

// keyName returns the bracket-notation name of the key without modifiers.
func (i Info) keyName() string {
	if i.Key != KeyRune {
		return i.Key.String()
	}
	switch i.Rune {
	case ' ':
		return "Space"
	case '<':
		return "Lt"
	default:
		return string(i.Rune)
	}
}

// GoString implements fmt.GoStringer for debugging.
func (i Info) GoString() string {
	return fmt.Sprintf("Info{Key: %s, Rune: %q, Mods: %s}",
		i.Key.String(), i.Rune, i.Mods.String())
}
