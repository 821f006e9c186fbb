package keymap

import (
	"fmt"

	"github.com/dshills/modekeys/internal/input/key"
)

// Match classifies a typed sequence against a binding table.
type Match int

const (
	// NoMatch means the sequence is neither a binding nor a prefix of one.
	NoMatch Match = iota

	// PartialMatch means the sequence is a non-empty proper prefix of at
	// least one binding.
	PartialMatch

	// ExactMatch means the sequence equals a binding.
	ExactMatch
)

// String returns a human-readable match name.
func (m Match) String() string {
	switch m {
	case PartialMatch:
		return "partial"
	case ExactMatch:
		return "exact"
	default:
		return "none"
	}
}

// Table holds the bindings for one mode.
type Table struct {
	mode     string
	payloads map[string]string
	tree     *prefixTree
}

// NewTable creates an empty binding table for the given mode.
func NewTable(mode string) *Table {
	return &Table{
		mode:     mode,
		payloads: make(map[string]string),
		tree:     newPrefixTree(),
	}
}

// Mode returns the mode this table belongs to.
func (t *Table) Mode() string {
	return t.mode
}

// Len returns the number of bindings in the table.
func (t *Table) Len() int {
	return len(t.payloads)
}

// Bind adds or replaces a binding. Empty sequences are ignored; an empty
// sequence can never be typed.
func (t *Table) Bind(seq key.Sequence, payload string) {
	if seq.IsEmpty() {
		return
	}
	t.tree.insert(seq, payload)
	t.payloads[seq.String()] = payload
}

// BindSpec parses the sequence notation and adds the binding.
func (t *Table) BindSpec(spec, payload string) error {
	seq, err := key.ParseSequence(spec)
	if err != nil {
		return fmt.Errorf("binding %q: %w", spec, err)
	}
	t.Bind(seq, payload)
	return nil
}

// Match classifies the typed sequence. On ExactMatch the bound payload is
// returned; otherwise the payload is empty.
func (t *Table) Match(seq key.Sequence) (Match, string) {
	if seq.IsEmpty() {
		return NoMatch, ""
	}
	return t.tree.match(seq)
}

// Lookup returns the payload bound to exactly this sequence.
func (t *Table) Lookup(seq key.Sequence) (string, bool) {
	payload, ok := t.payloads[seq.String()]
	return payload, ok
}

// Bindings returns a copy of the rendered-sequence to payload mapping.
func (t *Table) Bindings() map[string]string {
	out := make(map[string]string, len(t.payloads))
	for k, v := range t.payloads {
		out[k] = v
	}
	return out
}

// BuildTable creates a table for the mode by merging binding sources in
// priority order: entries in overrides shadow entries in defaults. An
// override with an empty payload unbinds the default.
func BuildTable(mode string, defaults, overrides map[string]string) (*Table, error) {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for spec, payload := range defaults {
		merged[spec] = payload
	}
	for spec, payload := range overrides {
		merged[spec] = payload
	}

	t := NewTable(mode)
	for spec, payload := range merged {
		if payload == "" {
			continue
		}
		if err := t.BindSpec(spec, payload); err != nil {
			return nil, fmt.Errorf("mode %s: %w", mode, err)
		}
	}
	return t, nil
}
