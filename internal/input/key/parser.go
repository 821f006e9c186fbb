package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a single key specification into an Info.
//
// Supported formats (case-insensitive inside brackets):
//   - Single character: "a", "A", "1", "@"
//   - Bracketed special keys: "<Enter>", "<Escape>", "<Space>", "<Lt>"
//   - Bracketed with modifiers: "<Ctrl+x>", "<Ctrl+Shift+Escape>",
//     "<Alt+Enter>"; "-" is accepted as a separator alias and the short
//     modifier names c/a/s/m are accepted on parse
func Parse(spec string) (Info, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Info{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") {
		if !strings.HasSuffix(spec, ">") || len(spec) < 3 {
			return Info{}, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
		}
		return parseBracketed(spec[1 : len(spec)-1])
	}

	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRuneInfo(r, ModNone), nil
	}

	// Bare special-key names are accepted for convenience in config files.
	if k := KeyFromName(spec); k != KeyNone {
		return NewSpecialInfo(k, ModNone), nil
	}

	return Info{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseBracketed parses the inside of a <...> group, e.g. "Ctrl+x" or
// "Escape".
func parseBracketed(inner string) (Info, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Info{}, ErrInvalidSpec
	}

	parts := splitSpec(inner)
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Info{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Info{}, ErrInvalidSpec
	}

	// Aliases that only exist in bracket notation.
	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneInfo(' ', mods), nil
	case "lt":
		return NewRuneInfo('<', mods), nil
	case "gt":
		return NewRuneInfo('>', mods), nil
	case "bar":
		return NewRuneInfo('|', mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialInfo(k, mods), nil
	}

	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRuneInfo(r, mods), nil
	}

	return Info{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// splitSpec splits a bracketed spec on the modifier separator. "+" is
// canonical; "-" is accepted as an alias. A trailing separator means the
// key is the separator character itself, e.g. "Ctrl++".
func splitSpec(inner string) []string {
	sep := "+"
	if !strings.Contains(inner, "+") {
		if !strings.Contains(inner, "-") {
			return []string{inner}
		}
		sep = "-"
	}
	if strings.HasSuffix(inner, sep) {
		parts := strings.Split(strings.TrimSuffix(inner, sep), sep)
		parts[len(parts)-1] = sep
		return parts
	}
	return strings.Split(inner, sep)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Info {
	info, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return info
}
