// Package modeman owns the active-mode pointer and routes key events to
// the parser registered for the current mode.
package modeman

import (
	"errors"
	"fmt"

	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
	"github.com/dshills/modekeys/internal/input/parser"
)

// ErrNotInMode is returned when leaving a mode that is not active.
var ErrNotInMode = errors.New("not in mode")

// promptModes pop over an input mode and restore it on leave.
var promptModes = map[string]bool{
	keymap.ModePrompt: true,
	keymap.ModeYesNo:  true,
}

// inputModes are worth restoring after a prompt closes.
var inputModes = map[string]bool{
	keymap.ModeInsert:      true,
	keymap.ModePassthrough: true,
}

// keystringNotifier is satisfied by all parsers built on the base
// matcher.
type keystringNotifier interface {
	OnKeystringChanged(fn func(keystr string))
}

// Manager routes key events to the active mode's parser and coordinates
// mode transitions for one window.
type Manager struct {
	parsers map[string]parser.Parser

	mode     string
	prevMode string

	entered   func(mode string)
	left      func(mode, newMode string)
	keystring func(mode, keystr string)
}

// NewManager creates a manager starting in normal mode with no parsers
// registered.
func NewManager() *Manager {
	return &Manager{
		parsers:  make(map[string]parser.Parser),
		mode:     keymap.ModeNormal,
		prevMode: keymap.ModeNormal,
	}
}

// Register adds a parser under its mode identifier, replacing any
// previous one, and hooks up its keystring notifications.
func (m *Manager) Register(p parser.Parser) {
	m.parsers[p.Mode()] = p
	if n, ok := p.(keystringNotifier); ok {
		mode := p.Mode()
		n.OnKeystringChanged(func(keystr string) {
			if m.keystring != nil {
				m.keystring(mode, keystr)
			}
		})
	}
}

// Parser returns the parser registered for mode, or nil.
func (m *Manager) Parser(mode string) parser.Parser {
	return m.parsers[mode]
}

// Mode returns the active mode identifier.
func (m *Manager) Mode() string {
	return m.mode
}

// OnEntered installs the observer called after a mode becomes active.
func (m *Manager) OnEntered(fn func(mode string)) {
	m.entered = fn
}

// OnLeft installs the observer called after a mode was left. newMode is
// the mode active afterwards.
func (m *Manager) OnLeft(fn func(mode, newMode string)) {
	m.left = fn
}

// OnKeystringUpdated installs the observer for keystring changes in any
// registered parser.
func (m *Manager) OnKeystringUpdated(fn func(mode, keystr string)) {
	m.keystring = fn
}

// Enter switches to mode. Entering normal mode is expressed as leaving
// the current one. With onlyIfNormal set the request is dropped unless
// normal mode is active, so automatic triggers cannot stomp on an
// explicit mode.
func (m *Manager) Enter(mode, reason string, onlyIfNormal bool) error {
	if mode == keymap.ModeNormal {
		return m.Leave(m.mode, fmt.Sprintf("enter normal: %s", reason), false)
	}

	if _, ok := m.parsers[mode]; !ok {
		return fmt.Errorf("no key parser for mode %q", mode)
	}
	if m.mode == mode || (promptModes[m.mode] && promptModes[mode]) {
		return nil
	}
	if m.mode != keymap.ModeNormal {
		if onlyIfNormal {
			return nil
		}
		m.notifyLeft(m.mode, mode)
	}

	if promptModes[mode] && inputModes[m.mode] {
		m.prevMode = m.mode
	} else {
		m.prevMode = keymap.ModeNormal
	}

	m.changeMode(mode)
	if m.entered != nil {
		m.entered(mode)
	}
	return nil
}

// Leave leaves mode and returns to normal mode. With maybe set a
// request for an inactive mode is silently dropped; otherwise it is
// ErrNotInMode. Closing a prompt restores the mode it popped over.
func (m *Manager) Leave(mode, reason string, maybe bool) error {
	if m.mode != mode {
		if maybe {
			return nil
		}
		return fmt.Errorf("%w: %s (active: %s)", ErrNotInMode, mode, m.mode)
	}

	m.changeMode(keymap.ModeNormal)
	m.notifyLeft(mode, m.mode)

	if promptModes[mode] && m.prevMode != keymap.ModeNormal {
		prev := m.prevMode
		m.prevMode = keymap.ModeNormal
		return m.Enter(prev, fmt.Sprintf("restore mode before %s", mode), false)
	}
	return nil
}

// LeaveFunc adapts Leave for parsers that request leaving their own
// mode.
func (m *Manager) LeaveFunc() parser.LeaveFunc {
	return func(mode, reason string, _ bool) {
		// Best effort: a stale request for an inactive mode is dropped.
		_ = m.Leave(mode, reason, true)
	}
}

// HandleEvent routes the event to the active parser. It returns true
// when the event was consumed and must not propagate to normal widget
// handling.
func (m *Manager) HandleEvent(ev key.Event) bool {
	p, ok := m.parsers[m.mode]
	if !ok {
		return false
	}
	if ev.IsRelease() {
		if rh, ok := p.(parser.ReleaseHandler); ok {
			return rh.HandleRelease(ev)
		}
		return false
	}
	return p.Handle(ev, false) != keymap.NoMatch
}

// WouldFilter reports whether the event would be consumed, without
// handling it. Used for shortcut-override style probing.
func (m *Manager) WouldFilter(ev key.Event) bool {
	p, ok := m.parsers[m.mode]
	if !ok || ev.IsRelease() {
		return false
	}
	return p.Handle(ev, true) != keymap.NoMatch
}

// ClearKeychain clears the active parser's working keystring.
func (m *Manager) ClearKeychain() {
	if p, ok := m.parsers[m.mode]; ok {
		p.ClearKeystring()
	}
}

// changeMode clears the matcher being left, then activates mode.
// Leaving a mode always drops its pending keychain so a half-entered
// chain cannot fire after coming back.
func (m *Manager) changeMode(mode string) {
	if p, ok := m.parsers[m.mode]; ok {
		p.ClearKeystring()
	}
	m.mode = mode
}

func (m *Manager) notifyLeft(mode, newMode string) {
	if m.left != nil {
		m.left(mode, newMode)
	}
}
