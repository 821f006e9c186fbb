package parser

import (
	"unicode"

	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
)

// Hinter is the hint subsystem the hint parser drives.
type Hinter interface {
	// FilterHints narrows the visible hints to those matching text.
	FilterHints(text string)

	// HandlePartialKey receives the current hint-label prefix, or the
	// resolved label on an exact match.
	HandlePartialKey(keystr string)

	// CurrentMode reports the active hinting sub-mode. Filter text is
	// only accepted while it returns "number".
	CurrentMode() string
}

// HintFilterMode is the hinting sub-mode in which typed text filters
// hints instead of matching labels.
const HintFilterMode = "number"

// lastPress records which input kind most recently grew, deciding what
// backspace removes.
type lastPress int

const (
	lastPressNone lastPress = iota
	lastPressFilterText
	lastPressKeystring
)

// HintParser matches hint labels and filter text. Command bindings
// configured for hint mode take priority: each event is first probed
// against an embedded command matcher with a dry run, and only handled
// as label or filter input when that reports NoMatch.
type HintParser struct {
	*BaseParser

	hinter   Hinter
	command  *CommandParser
	baseline map[string]string

	filterText string
	last       lastPress

	keystrObserver func(keystr string)
}

// NewHintParser creates the hint-mode parser. commandBindings are the
// configured hint-mode command chains; labels start empty until
// UpdateBindings is called.
func NewHintParser(commandBindings map[string]string, remap keymap.Remap,
	runner CommandRunner, sink MessageSink, hinter Hinter) (*HintParser, error) {
	cmdTable, err := keymap.BuildTable(keymap.ModeHint, commandBindings, nil)
	if err != nil {
		return nil, err
	}
	p := &HintParser{
		BaseParser: NewBase(Config{
			Mode:  keymap.ModeHint,
			Table: keymap.NewTable(keymap.ModeHint),
			Remap: remap,
		}),
		hinter:   hinter,
		baseline: commandBindings,
	}
	p.command = NewCommandParser(Config{
		Mode:  keymap.ModeHint,
		Table: cmdTable,
		Remap: remap,
	}, runner, sink)
	p.SetExecuteFunc(func(label string, _ int) {
		p.hinter.HandlePartialKey(label)
	})
	// The hint subsystem tracks the label prefix through keystring
	// updates.
	p.BaseParser.OnKeystringChanged(func(keystr string) {
		p.hinter.HandlePartialKey(keystr)
		if p.keystrObserver != nil {
			p.keystrObserver(keystr)
		}
	})
	return p, nil
}

// OnKeystringChanged installs the external keystring observer. The hint
// subsystem keeps receiving updates regardless.
func (p *HintParser) OnKeystringChanged(fn func(keystr string)) {
	p.keystrObserver = fn
}

// CommandSub exposes the embedded command matcher, mainly so observers
// can watch its keystring.
func (p *HintParser) CommandSub() *CommandParser {
	return p.command
}

// SetRemap replaces the key translation map on both the label matcher
// and the command sub-parser.
func (p *HintParser) SetRemap(r keymap.Remap) {
	p.BaseParser.SetRemap(r)
	p.command.SetRemap(r)
}

// Handle probes command bindings first, then hint labels, then filter
// text.
func (p *HintParser) Handle(ev key.Event, dryRun bool) keymap.Match {
	if dryRun {
		if m := p.command.Handle(ev, true); m != keymap.NoMatch {
			return m
		}
		return p.BaseParser.Handle(ev, true)
	}

	if p.command.Handle(ev, true) != keymap.NoMatch {
		p.BaseParser.ClearKeystring()
		return p.command.Handle(ev, false)
	}

	// Backspace edits the working input instead of going through the
	// label matcher, which would abandon the chain on its NoMatch.
	if info, err := ev.KeyInfo(); err == nil && info.Key == key.KeyBackspace {
		return p.handleBackspace()
	}

	match := p.BaseParser.Handle(ev, false)
	switch match {
	case keymap.PartialMatch:
		p.last = lastPressKeystring
	case keymap.ExactMatch:
		p.last = lastPressNone
	case keymap.NoMatch:
		return p.handleFilterKey(ev)
	}
	return match
}

// handleFilterKey handles keys outside the label alphabet: printable
// text grows the filter while the hint subsystem is in its filtering
// sub-mode.
func (p *HintParser) handleFilterKey(ev key.Event) keymap.Match {
	info, err := ev.KeyInfo()
	if err != nil {
		return keymap.NoMatch
	}
	if p.hinter.CurrentMode() != HintFilterMode {
		return keymap.NoMatch
	}
	if !info.IsRune() || !unicode.IsPrint(info.Rune) {
		return keymap.NoMatch
	}

	p.filterText += string(info.Rune)
	p.hinter.FilterHints(p.filterText)
	p.last = lastPressFilterText
	return keymap.ExactMatch
}

// handleBackspace removes one character from whichever input grew last.
// Emptying the keystring while filter text remains resumes filtering.
func (p *HintParser) handleBackspace() keymap.Match {
	switch {
	case p.last != lastPressKeystring && p.filterText != "":
		runes := []rune(p.filterText)
		p.filterText = string(runes[:len(runes)-1])
		p.hinter.FilterHints(p.filterText)
		return keymap.ExactMatch
	case p.last == lastPressKeystring && !p.Sequence().IsEmpty():
		p.DropLastKey()
		if p.Sequence().IsEmpty() && p.filterText != "" {
			// Only reachable in the numeric sub-mode after the typed
			// number was deleted; resume filtering.
			p.hinter.FilterHints(p.filterText)
			p.last = lastPressFilterText
		}
		return keymap.ExactMatch
	default:
		return keymap.NoMatch
	}
}

// UpdateBindings rebuilds the label table from the current hint strings.
// Filter text is reset unless preserveFilter is set.
func (p *HintParser) UpdateBindings(hintStrings []string, preserveFilter bool) error {
	table := keymap.NewTable(keymap.ModeHint)
	for _, s := range hintStrings {
		if err := table.BindSpec(s, s); err != nil {
			return err
		}
	}
	p.SetTable(table)
	if !preserveFilter {
		p.filterText = ""
	}
	return nil
}

// FilterText returns the accumulated filter text.
func (p *HintParser) FilterText() string {
	return p.filterText
}

// ClearKeystring resets both the label matcher and the embedded command
// matcher.
func (p *HintParser) ClearKeystring() {
	p.command.ClearKeystring()
	p.BaseParser.ClearKeystring()
}
