package keymap

import (
	"testing"

	"github.com/dshills/modekeys/internal/input/key"
)

func mustTable(t *testing.T, mode string, bindings map[string]string) *Table {
	t.Helper()
	table, err := BuildTable(mode, bindings, nil)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}
	return table
}

func TestTableMatchClassification(t *testing.T) {
	table := mustTable(t, ModeNormal, map[string]string{
		"ba":  "cmd-x",
		"bba": "cmd-y",
	})

	tests := []struct {
		typed   string
		want    Match
		payload string
	}{
		{"b", PartialMatch, ""},
		{"bb", PartialMatch, ""},
		{"ba", ExactMatch, "cmd-x"},
		{"bba", ExactMatch, "cmd-y"},
		{"a", NoMatch, ""},
		{"bc", NoMatch, ""},
		{"bbab", NoMatch, ""},
	}

	for _, tt := range tests {
		match, payload := table.Match(key.MustParseSequence(tt.typed))
		if match != tt.want || payload != tt.payload {
			t.Errorf("Match(%q) = %v %q, want %v %q",
				tt.typed, match, payload, tt.want, tt.payload)
		}
	}
}

func TestTableEmptySequence(t *testing.T) {
	table := mustTable(t, ModeNormal, map[string]string{"a": "cmd"})
	if match, _ := table.Match(key.NewSequence()); match != NoMatch {
		t.Errorf("empty sequence Match = %v, want NoMatch", match)
	}
}

func TestTableExactWinsOverLongerChains(t *testing.T) {
	table := mustTable(t, ModeNormal, map[string]string{
		"g":  "short",
		"gg": "long",
	})

	match, payload := table.Match(key.MustParseSequence("g"))
	if match != ExactMatch || payload != "short" {
		t.Errorf("Match(\"g\") = %v %q, want ExactMatch \"short\"", match, payload)
	}
}

func TestTableSpecialKeys(t *testing.T) {
	table := mustTable(t, ModeNormal, map[string]string{
		"<Ctrl+x><Ctrl+s>": "save",
	})

	seq := key.NewSequence(key.NewRuneInfo('x', key.ModCtrl))
	if match, _ := table.Match(seq); match != PartialMatch {
		t.Errorf("Match(<Ctrl+x>) = %v, want PartialMatch", match)
	}

	seq = seq.Append(key.NewRuneInfo('s', key.ModCtrl))
	match, payload := table.Match(seq)
	if match != ExactMatch || payload != "save" {
		t.Errorf("Match = %v %q, want ExactMatch \"save\"", match, payload)
	}
}

func TestBuildTableOverrides(t *testing.T) {
	table, err := BuildTable(ModeNormal,
		map[string]string{"o": "open", "j": "scroll down"},
		map[string]string{"o": "open --custom", "j": ""})
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	if payload, ok := table.Lookup(key.MustParseSequence("o")); !ok || payload != "open --custom" {
		t.Errorf("Lookup(o) = %q %v, want override", payload, ok)
	}

	// Empty override unbinds the default.
	if match, _ := table.Match(key.MustParseSequence("j")); match != NoMatch {
		t.Errorf("Match(j) = %v, want NoMatch after unbind", match)
	}
}

func TestBuildTableInvalidSpec(t *testing.T) {
	if _, err := BuildTable(ModeNormal, map[string]string{"<oops": "x"}, nil); err == nil {
		t.Error("BuildTable should fail on malformed spec")
	}
}

func TestRemapApply(t *testing.T) {
	remap, err := ParseRemap(map[string]string{"ä": "a"})
	if err != nil {
		t.Fatalf("ParseRemap: %v", err)
	}

	got := remap.Apply(key.NewRuneInfo('ä', key.ModNone))
	if got.Rune != 'a' {
		t.Errorf("Apply(ä) = %q, want 'a'", got.Rune)
	}

	passthrough := key.NewRuneInfo('z', key.ModNone)
	if remap.Apply(passthrough) != passthrough {
		t.Error("unmapped keys must pass through unchanged")
	}

	var nilRemap Remap
	if nilRemap.Apply(passthrough) != passthrough {
		t.Error("nil remap must pass keys through")
	}
}

func TestDefaultBindingsAreParseable(t *testing.T) {
	for _, mode := range Modes() {
		if _, err := BuildTable(mode, DefaultBindings(mode), nil); err != nil {
			t.Errorf("mode %s: %v", mode, err)
		}
	}
}
