package parser

import (
	"fmt"

	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
)

// RegisterAction selects what a register parser does with the captured
// key.
type RegisterAction int

const (
	// ActionSetMark stores the current position under the key.
	ActionSetMark RegisterAction = iota

	// ActionJumpMark jumps to the position stored under the key.
	ActionJumpMark

	// ActionRecordMacro starts or stops macro recording into the key.
	ActionRecordMacro

	// ActionRunMacro plays back the macro stored under the key.
	ActionRunMacro
)

// MarkStore stores and recalls positions by register name.
type MarkStore interface {
	SetMark(name string) error
	JumpMark(name string) error
}

// MacroStore records and plays macros by register name.
type MacroStore interface {
	RecordMacro(name string) error
	RunMacro(name string) error
}

// LeaveFunc asks the mode manager to leave mode. ok reports whether the
// mode completed its purpose.
type LeaveFunc func(mode, reason string, ok bool)

// RegisterParser captures a single key as a register name. Configured
// chains still take priority; any other valid non-special key triggers
// the action fixed at construction and requests leaving the mode.
type RegisterParser struct {
	*CommandParser

	action RegisterAction
	marks  MarkStore
	macros MacroStore
	leave  LeaveFunc
}

// NewRegisterParser creates a register parser for the given action. It
// panics on an unknown action; that is a wiring bug, not a runtime
// condition.
func NewRegisterParser(cfg Config, action RegisterAction, runner CommandRunner,
	sink MessageSink, marks MarkStore, macros MacroStore, leave LeaveFunc) *RegisterParser {
	switch action {
	case ActionSetMark, ActionJumpMark, ActionRecordMacro, ActionRunMacro:
	default:
		panic(fmt.Sprintf("unknown register action %d", action))
	}
	cfg.SupportsCount = false
	return &RegisterParser{
		CommandParser: NewCommandParser(cfg, runner, sink),
		action:        action,
		marks:         marks,
		macros:        macros,
		leave:         leave,
	}
}

// Handle captures the first valid non-special key that no chain claims.
func (p *RegisterParser) Handle(ev key.Event, dryRun bool) keymap.Match {
	match := p.CommandParser.Handle(ev, dryRun)
	if match != keymap.NoMatch || dryRun || ev.IsRelease() {
		return match
	}

	info, err := ev.KeyInfo()
	if err != nil || info.IsSpecial() {
		return keymap.NoMatch
	}
	name := info.Text()
	if name == "" {
		return keymap.NoMatch
	}

	// Leave first. Running a macro re-injects the recorded keys, and
	// those must land in the restored mode, not back here.
	if p.leave != nil {
		p.leave(p.Mode(), "valid register key", true)
	}
	if err := p.runAction(name); err != nil {
		p.sink.Error(err.Error())
	}
	return keymap.ExactMatch
}

func (p *RegisterParser) runAction(name string) error {
	switch p.action {
	case ActionSetMark:
		return p.marks.SetMark(name)
	case ActionJumpMark:
		return p.marks.JumpMark(name)
	case ActionRecordMacro:
		return p.macros.RecordMacro(name)
	default:
		return p.macros.RunMacro(name)
	}
}
