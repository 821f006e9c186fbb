package key

import (
	"strings"
	"unicode/utf8"
)

// Sequence is an ordered chain of key descriptors typed toward a binding.
// The zero value is the empty sequence, which matches nothing and is the
// valid "no accumulation" state.
type Sequence struct {
	keys []Info
}

// NewSequence creates a sequence from the given descriptors.
func NewSequence(infos ...Info) Sequence {
	keys := make([]Info, len(infos))
	copy(keys, infos)
	return Sequence{keys: keys}
}

// Len returns the number of keys in the sequence.
func (s Sequence) Len() int {
	return len(s.keys)
}

// IsEmpty returns true if the sequence has no keys.
func (s Sequence) IsEmpty() bool {
	return len(s.keys) == 0
}

// At returns the descriptor at the given index.
func (s Sequence) At(index int) Info {
	return s.keys[index]
}

// Keys returns the descriptors in order. The returned slice is shared;
// callers must not modify it.
func (s Sequence) Keys() []Info {
	return s.keys
}

// Append returns a new sequence with the descriptor added at the end.
func (s Sequence) Append(info Info) Sequence {
	keys := make([]Info, len(s.keys)+1)
	copy(keys, s.keys)
	keys[len(s.keys)] = info
	return Sequence{keys: keys}
}

// DropLast returns a new sequence without the final key, used for
// backspace-style correction. Dropping from an empty sequence returns an
// empty sequence.
func (s Sequence) DropLast() Sequence {
	if len(s.keys) == 0 {
		return Sequence{}
	}
	keys := make([]Info, len(s.keys)-1)
	copy(keys, s.keys[:len(s.keys)-1])
	return Sequence{keys: keys}
}

// Equals returns true if two sequences are positionally identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s.keys) != len(other.keys) {
		return false
	}
	for i, k := range s.keys {
		if k != other.keys[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
// The empty prefix matches everything.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix.keys) > len(s.keys) {
		return false
	}
	for i, k := range prefix.keys {
		if k != s.keys[i] {
			return false
		}
	}
	return true
}

// IsProperPrefixOf returns true if this sequence is non-empty and a
// strict prefix of other, i.e. other could still complete a longer chain.
func (s Sequence) IsProperPrefixOf(other Sequence) bool {
	return len(s.keys) > 0 && len(s.keys) < len(other.keys) && other.HasPrefix(s)
}

// String renders the sequence in canonical notation, concatenated
// without separators, e.g. "gg" or "<Ctrl+x><Ctrl+s>".
func (s Sequence) String() string {
	if len(s.keys) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, k := range s.keys {
		sb.WriteString(k.String())
	}
	return sb.String()
}

// ParseSequence parses the canonical notation into a Sequence. Printable
// characters are literal keys; <...> groups are special or modified keys.
// An unmatched "<" is an error; use "<Lt>" for a literal less-than.
func ParseSequence(s string) (Sequence, error) {
	var keys []Info

	for len(s) > 0 {
		if s[0] == '<' {
			end := strings.IndexByte(s, '>')
			if end == -1 {
				return Sequence{}, ErrUnmatchedBracket
			}
			info, err := Parse(s[:end+1])
			if err != nil {
				return Sequence{}, err
			}
			keys = append(keys, info)
			s = s[end+1:]
			continue
		}

		r, size := utf8.DecodeRuneInString(s)
		keys = append(keys, NewRuneInfo(r, ModNone))
		s = s[size:]
	}

	return Sequence{keys: keys}, nil
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}
