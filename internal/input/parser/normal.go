package parser

import (
	"time"

	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
)

// NormalParser is the command parser for normal mode. On top of chain
// matching it implements the partial-match timeout (a stalled chain is
// abandoned after a configurable delay) and input inhibition (a short
// window after entering the mode during which all presses are dropped,
// so keys still in flight from the previous mode cannot trigger
// bindings).
type NormalParser struct {
	*CommandParser

	// partialTimeout is read on every partial match so config reloads
	// take effect without rebuilding the parser. Zero disables the
	// timeout.
	partialTimeout func() time.Duration

	partialTimer Timer

	inhibited      bool
	inhibitedTimer Timer
}

// NewNormalParser creates the normal-mode parser. partialTimeout may be
// nil to disable the timeout entirely.
func NewNormalParser(cfg Config, runner CommandRunner, sink MessageSink,
	partialTimeout func() time.Duration, timers TimerFactory) *NormalParser {
	if timers == nil {
		timers = NewTimer
	}
	p := &NormalParser{
		CommandParser:  NewCommandParser(cfg, runner, sink),
		partialTimeout: partialTimeout,
	}
	p.partialTimer = timers(p.clearPartialMatch)
	p.inhibitedTimer = timers(p.clearInhibited)
	return p
}

// Handle drops all presses while inhibited. A partial match arms the
// timeout timer; any later event before it fires restarts or stops it,
// so the window slides with activity.
func (p *NormalParser) Handle(ev key.Event, dryRun bool) keymap.Match {
	if p.inhibited && ev.IsPress() {
		return keymap.NoMatch
	}

	match := p.CommandParser.Handle(ev, dryRun)
	if dryRun || ev.IsRelease() {
		return match
	}

	if match == keymap.PartialMatch {
		if d := p.timeout(); d > 0 {
			p.partialTimer.Start(d)
		}
	} else {
		p.partialTimer.Stop()
	}
	return match
}

// SetInhibitedTimeout starts dropping key presses for the given
// duration. A zero duration cancels inhibition immediately.
func (p *NormalParser) SetInhibitedTimeout(d time.Duration) {
	if d <= 0 {
		p.inhibitedTimer.Stop()
		p.inhibited = false
		return
	}
	p.inhibited = true
	p.inhibitedTimer.Start(d)
}

// Inhibited reports whether key presses are currently being dropped.
func (p *NormalParser) Inhibited() bool {
	return p.inhibited
}

// ClearKeystring also disarms the partial-match timer.
func (p *NormalParser) ClearKeystring() {
	p.partialTimer.Stop()
	p.CommandParser.ClearKeystring()
}

func (p *NormalParser) timeout() time.Duration {
	if p.partialTimeout == nil {
		return 0
	}
	return p.partialTimeout()
}

func (p *NormalParser) clearPartialMatch() {
	p.CommandParser.ClearKeystring()
}

func (p *NormalParser) clearInhibited() {
	p.inhibited = false
}
