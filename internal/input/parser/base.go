package parser

import (
	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
)

// Parser is what the mode manager routes key-press events through.
type Parser interface {
	// Mode returns the mode identifier this parser serves.
	Mode() string

	// Handle classifies a key event against the parser's bindings. With
	// dryRun set the classification is computed without mutating any
	// parser state and without side effects.
	Handle(ev key.Event, dryRun bool) keymap.Match

	// ClearKeystring resets the working sequence and count buffer and
	// always emits a keystring update with the empty string.
	ClearKeystring()
}

// ReleaseHandler is implemented by parsers that want key-release events.
// HandleRelease returns true when the release was consumed and must not
// propagate further.
type ReleaseHandler interface {
	HandleRelease(ev key.Event) bool
}

// Config holds the construction parameters shared by all parsers.
type Config struct {
	// Mode is the mode identifier the parser serves.
	Mode string

	// Table is the binding table for the mode.
	Table *keymap.Table

	// Remap is the key-to-key translation applied before matching. May
	// be nil.
	Remap keymap.Remap

	// SupportsCount enables the numeric count prefix.
	SupportsCount bool
}

// BaseParser is the keychain matching state machine. Mode parsers embed
// it and install an execute hook for resolved bindings.
type BaseParser struct {
	mode          string
	table         *keymap.Table
	remap         keymap.Remap
	supportsCount bool

	sequence key.Sequence
	count    countState

	// execute is invoked with the bound payload and the count prefix
	// (0 when none was entered) on an exact match.
	execute func(payload string, count int)

	keystringChanged func(keystr string)
}

// NewBase creates a bare matcher. Most callers want one of the mode
// parser constructors instead.
func NewBase(cfg Config) *BaseParser {
	p := &BaseParser{
		mode:          cfg.Mode,
		table:         cfg.Table,
		remap:         cfg.Remap,
		supportsCount: cfg.SupportsCount,
	}
	p.execute = func(string, int) {}
	return p
}

// Mode returns the mode identifier.
func (p *BaseParser) Mode() string {
	return p.mode
}

// Sequence returns the current working sequence.
func (p *BaseParser) Sequence() key.Sequence {
	return p.sequence
}

// Keystring renders the count buffer and working sequence for display.
func (p *BaseParser) Keystring() string {
	return p.count.digits + p.sequence.String()
}

// SetTable replaces the binding table. Used on config reload and by
// hint-label rebinding.
func (p *BaseParser) SetTable(t *keymap.Table) {
	p.table = t
}

// SetRemap replaces the key translation map.
func (p *BaseParser) SetRemap(r keymap.Remap) {
	p.remap = r
}

// SetExecuteFunc installs the hook invoked on exact matches.
func (p *BaseParser) SetExecuteFunc(fn func(payload string, count int)) {
	p.execute = fn
}

// OnKeystringChanged installs the observer notified whenever the
// displayed keystring changes, including when it becomes empty.
func (p *BaseParser) OnKeystringChanged(fn func(keystr string)) {
	p.keystringChanged = fn
}

func (p *BaseParser) notifyKeystring() {
	if p.keystringChanged != nil {
		p.keystringChanged(p.Keystring())
	}
}

// Handle classifies a key-press event. Release events and pure-modifier
// presses never match. Count digits are consumed before chain matching,
// so a nonzero digit cannot be bound as a chain start in a counting
// mode; a leading '0' stays bindable.
func (p *BaseParser) Handle(ev key.Event, dryRun bool) keymap.Match {
	if ev.IsRelease() {
		return keymap.NoMatch
	}
	info, err := ev.KeyInfo()
	if err != nil {
		return keymap.NoMatch
	}
	if info.IsModifier() {
		return keymap.NoMatch
	}

	if p.supportsCount && p.sequence.IsEmpty() && info.IsRune() &&
		info.Mods == key.ModNone && p.count.accepts(info.Rune) {
		if !dryRun {
			p.count.accumulate(info.Rune)
			p.notifyKeystring()
		}
		return keymap.PartialMatch
	}

	mapped := p.remap.Apply(info)
	seq := p.sequence.Append(mapped)
	match, payload := p.table.Match(seq)
	if dryRun {
		return match
	}

	switch match {
	case keymap.ExactMatch:
		count := p.count.get()
		p.ClearKeystring()
		p.execute(payload, count)
	case keymap.PartialMatch:
		p.sequence = seq
		p.notifyKeystring()
	case keymap.NoMatch:
		// The triggering key is not re-evaluated against the empty
		// sequence; it is simply lost to matching. A pending count dies
		// with it so it cannot apply to a later unrelated chain.
		if !p.sequence.IsEmpty() || p.count.active {
			p.ClearKeystring()
		}
	}
	return match
}

// ClearKeystring resets the working sequence and the count buffer and
// emits the empty keystring.
func (p *BaseParser) ClearKeystring() {
	p.sequence = key.NewSequence()
	p.count.reset()
	p.notifyKeystring()
}

// DropLastKey removes the most recent key from the working sequence and
// emits the updated keystring. Used by hint-mode backspace handling.
func (p *BaseParser) DropLastKey() {
	if p.sequence.IsEmpty() {
		return
	}
	p.sequence = p.sequence.DropLast()
	p.notifyKeystring()
}
