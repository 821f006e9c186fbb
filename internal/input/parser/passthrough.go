package parser

import (
	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
)

// Widget is the forwarding target for keys a passthrough mode does not
// consume.
type Widget interface {
	SendKey(ev key.Event)
}

// WidgetResolver looks up the current forwarding target. A nil result
// means no target is focused and forwarding is skipped.
type WidgetResolver interface {
	FocusedWidget() Widget
}

// PassthroughParser layers key forwarding over the command parser.
// Bound chains still resolve to commands; everything else reaches the
// focused widget verbatim. While a chain is partially matched its
// presses are absorbed, and their releases withheld, until the chain's
// outcome is known: on failure the whole chain is forwarded (presses in
// order, then releases), on an exact match it is swallowed.
type PassthroughParser struct {
	*CommandParser

	resolver WidgetResolver

	// ignoreNextKey suppresses re-classification of the immediately
	// following press after forwarding, in case the windowing layer
	// re-delivers the synthesized event back into the parser. It expires
	// on the next live event of any kind.
	ignoreNextKey bool

	// pending holds the presses absorbed into the current partial chain,
	// in arrival order.
	pending []key.Event

	// held holds withheld releases for pending presses, in arrival
	// order.
	held []key.Event

	// swallow holds forwarded presses whose release was synthesized; the
	// matching real release is consumed when it arrives.
	swallow []key.Event
}

// NewPassthroughParser creates a passthrough parser forwarding to the
// widget resolved through resolver.
func NewPassthroughParser(cfg Config, runner CommandRunner, sink MessageSink,
	resolver WidgetResolver) *PassthroughParser {
	return &PassthroughParser{
		CommandParser: NewCommandParser(cfg, runner, sink),
		resolver:      resolver,
	}
}

// Handle classifies the press and forwards the failed chain on NoMatch.
func (p *PassthroughParser) Handle(ev key.Event, dryRun bool) keymap.Match {
	if !dryRun && p.ignoreNextKey {
		p.ignoreNextKey = false
		if ev.IsPress() {
			return keymap.NoMatch
		}
	}

	match := p.CommandParser.Handle(ev, dryRun)
	if dryRun || ev.IsRelease() {
		return match
	}

	switch match {
	case keymap.PartialMatch:
		p.pending = append(p.pending, ev)
	case keymap.ExactMatch:
		// The chain was consumed by a command; its releases must not
		// reach the widget either.
		p.dropPending()
	case keymap.NoMatch:
		if info, err := ev.KeyInfo(); err == nil && !info.IsModifier() {
			p.forward(&ev)
		}
	}
	return match
}

// HandleRelease withholds releases belonging to an unresolved chain and
// consumes releases already answered by a synthesized one. Returns true
// when the release must not propagate further.
func (p *PassthroughParser) HandleRelease(ev key.Event) bool {
	p.ignoreNextKey = false
	for _, press := range p.pending {
		if press.SameKey(ev) {
			p.held = append(p.held, ev)
			return true
		}
	}
	for i, press := range p.swallow {
		if press.SameKey(ev) {
			p.swallow = append(p.swallow[:i], p.swallow[i+1:]...)
			return true
		}
	}
	return false
}

// ClearKeystring abandons the current chain: its keys are forwarded to
// the widget (they were never consumed by a command) and the matcher is
// reset.
func (p *PassthroughParser) ClearKeystring() {
	p.forward(nil)
	p.CommandParser.ClearKeystring()
}

// forward delivers the pending chain plus the optional triggering event
// to the focused widget: all presses in order, then one release per key.
// Withheld real releases go first in their arrival order, synthesized
// releases cover the rest.
func (p *PassthroughParser) forward(last *key.Event) {
	chain := p.pending
	if last != nil {
		chain = append(append([]key.Event(nil), p.pending...), *last)
	}
	if len(chain) == 0 {
		p.dropPending()
		return
	}

	w := p.resolver.FocusedWidget()
	if w == nil {
		p.dropPending()
		return
	}

	for _, press := range chain {
		w.SendKey(press)
	}
	for _, rel := range p.held {
		w.SendKey(rel)
	}
	for _, press := range chain {
		if p.hasHeldRelease(press) {
			continue
		}
		w.SendKey(key.Event{
			Type: key.Release,
			Info: press.Info,
			Text: press.Text,
			When: press.When,
		})
		p.swallow = append(p.swallow, press)
	}

	p.pending = nil
	p.held = nil
	p.ignoreNextKey = true
}

func (p *PassthroughParser) hasHeldRelease(press key.Event) bool {
	for _, rel := range p.held {
		if rel.SameKey(press) {
			return true
		}
	}
	return false
}

func (p *PassthroughParser) dropPending() {
	p.pending = nil
	p.held = nil
}
