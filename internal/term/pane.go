package term

import (
	"github.com/dshills/modekeys/internal/input/key"
)

// Pane is the forwarding target for passthrough and insert modes: it
// records keys sent to it and exposes them as display lines. It stands
// in for a real application widget.
type Pane struct {
	lines []string
	max   int
}

// NewPane creates a pane keeping at most max lines of history.
func NewPane(max int) *Pane {
	if max <= 0 {
		max = 100
	}
	return &Pane{max: max}
}

// SendKey records a delivered key event. Releases are accepted and
// dropped; only presses produce output.
func (p *Pane) SendKey(ev key.Event) {
	if !ev.IsPress() {
		return
	}
	p.lines = append(p.lines, ev.String())
	if len(p.lines) > p.max {
		p.lines = p.lines[len(p.lines)-p.max:]
	}
}

// InsertText records typed text, one line per call.
func (p *Pane) InsertText(text string) {
	p.lines = append(p.lines, text)
	if len(p.lines) > p.max {
		p.lines = p.lines[len(p.lines)-p.max:]
	}
}

// Lines returns the recorded history, oldest first.
func (p *Pane) Lines() []string {
	return p.lines
}

// Clear drops the history.
func (p *Pane) Clear() {
	p.lines = nil
}
