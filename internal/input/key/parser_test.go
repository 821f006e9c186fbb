package key

import (
	"errors"
	"testing"
)

func TestParseSingleCharacters(t *testing.T) {
	tests := []struct {
		spec string
		want Info
	}{
		{"a", NewRuneInfo('a', ModNone)},
		{"A", NewRuneInfo('A', ModNone)},
		{"1", NewRuneInfo('1', ModNone)},
		{"@", NewRuneInfo('@', ModNone)},
		{"ä", NewRuneInfo('ä', ModNone)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseBracketed(t *testing.T) {
	tests := []struct {
		spec string
		want Info
	}{
		{"<Escape>", NewSpecialInfo(KeyEscape, ModNone)},
		{"<escape>", NewSpecialInfo(KeyEscape, ModNone)},
		{"<ESC>", NewSpecialInfo(KeyEscape, ModNone)},
		{"<Enter>", NewSpecialInfo(KeyEnter, ModNone)},
		{"<Ctrl+x>", NewRuneInfo('x', ModCtrl)},
		{"<ctrl+X>", NewRuneInfo('x', ModCtrl)},
		{"<C-x>", NewRuneInfo('x', ModCtrl)},
		{"<Ctrl+Shift+Escape>", NewSpecialInfo(KeyEscape, ModCtrl|ModShift)},
		{"<Alt+Enter>", NewSpecialInfo(KeyEnter, ModAlt)},
		{"<Meta+F1>", NewSpecialInfo(KeyF1, ModMeta)},
		{"<Space>", NewRuneInfo(' ', ModNone)},
		{"<Lt>", NewRuneInfo('<', ModNone)},
		{"<Ctrl++>", NewRuneInfo('+', ModCtrl)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"", ErrEmptySpec},
		{"<", ErrUnmatchedBracket},
		{"<Ctrl+", ErrUnmatchedBracket},
		{"<Bogus+x>", ErrInvalidSpec},
		{"<NoSuchKey>", ErrInvalidSpec},
		{"abc", ErrInvalidSpec},
	}

	for _, tt := range tests {
		if _, err := Parse(tt.spec); !errors.Is(err, tt.wantErr) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("gg")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}
	if seq.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", seq.Len())
	}
	if seq.At(0).Rune != 'g' || seq.At(1).Rune != 'g' {
		t.Errorf("unexpected keys: %s", seq)
	}

	seq, err = ParseSequence("<Ctrl+x>o")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}
	if seq.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", seq.Len())
	}
	if want := NewRuneInfo('x', ModCtrl); seq.At(0) != want {
		t.Errorf("At(0) = %#v, want %#v", seq.At(0), want)
	}
	if seq.At(1).Rune != 'o' {
		t.Errorf("At(1) = %#v, want 'o'", seq.At(1))
	}

	if _, err := ParseSequence("a<Ctrl"); !errors.Is(err, ErrUnmatchedBracket) {
		t.Errorf("unterminated bracket error = %v", err)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	seqs := []Sequence{
		NewSequence(),
		NewSequence(NewRuneInfo('g', ModNone), NewRuneInfo('g', ModNone)),
		NewSequence(NewRuneInfo('x', ModCtrl), NewRuneInfo('o', ModNone)),
		NewSequence(NewSpecialInfo(KeyEscape, ModNone)),
		NewSequence(
			NewSpecialInfo(KeyEnter, ModCtrl|ModShift),
			NewRuneInfo(' ', ModNone),
			NewRuneInfo('<', ModNone),
			NewRuneInfo('Z', ModNone),
		),
		NewSequence(NewSpecialInfo(KeyF10, ModAlt), NewRuneInfo('ü', ModNone)),
	}

	for _, s := range seqs {
		parsed, err := ParseSequence(s.String())
		if err != nil {
			t.Errorf("ParseSequence(%q) error = %v", s.String(), err)
			continue
		}
		if !parsed.Equals(s) {
			t.Errorf("round trip of %q = %q", s.String(), parsed.String())
		}
	}
}
