// Package app assembles the input engine: configuration, the per-mode
// parsers, the mode manager, macro and mark stores, and the terminal
// front end.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/modekeys/internal/config"
	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
	"github.com/dshills/modekeys/internal/input/macro"
	"github.com/dshills/modekeys/internal/input/modeman"
	"github.com/dshills/modekeys/internal/input/parser"
	"github.com/dshills/modekeys/internal/term"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit")

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML config file to load and watch. Empty means
	// defaults only.
	ConfigPath string
}

// Application owns the event loop and all engine components for one
// terminal window.
type Application struct {
	opts Options
	cfg  *config.Config

	screen *term.Screen
	pane   *term.Pane

	manager  *modeman.Manager
	normal   *parser.NormalParser
	hint     *parser.HintParser
	recorder *macro.Recorder
	marks    *macro.Marks
	hints    *hintState

	// reloadable keeps every parser whose table is rebuilt on config
	// reload, keyed by mode.
	reloadable map[string]reloadableParser

	// loopCh marshals timer firings and config reloads onto the event
	// loop, keeping all parser mutation single-threaded.
	loopCh chan func()

	keystring string
	message   string
	scroll    int
	replaying bool
	quit      bool
}

// reloadableParser can swap its binding table and remap in place.
type reloadableParser interface {
	parser.Parser
	SetTable(t *keymap.Table)
	SetRemap(r keymap.Remap)
}

// New builds the full engine from opts. The terminal screen is attached
// separately with SetScreen so tests can run headless.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	a := &Application{
		opts:       opts,
		cfg:        cfg,
		pane:       term.NewPane(200),
		manager:    modeman.NewManager(),
		reloadable: make(map[string]reloadableParser),
		loopCh:     make(chan func(), 16),
	}
	a.hints = newHintState(a)
	a.recorder = macro.NewRecorder(a.replayEvent)
	a.marks = macro.NewMarks(
		func() macro.Position { return macro.Position{Y: a.scroll} },
		func(pos macro.Position) { a.scroll = pos.Y },
	)

	if err := a.buildParsers(); err != nil {
		return nil, err
	}

	a.manager.OnKeystringUpdated(func(mode, keystr string) {
		if mode == a.manager.Mode() {
			a.keystring = keystr
		}
	})
	a.manager.OnLeft(func(mode, newMode string) {
		if newMode == keymap.ModeNormal {
			if d := a.cfg.ModeLockDuration(); d > 0 {
				a.normal.SetInhibitedTimeout(d)
			}
		}
	})

	return a, nil
}

// timerFactory posts timer callbacks onto the event loop. The
// cancellation check runs when the posted callback does, so a fire
// queued behind a restart never clears a fresh chain.
func (a *Application) timerFactory(fn func()) parser.Timer {
	return parser.NewLoopTimer(fn, func(fire func()) {
		a.loopCh <- fire
	})
}

func (a *Application) buildParsers() error {
	remap, err := a.cfg.Remap()
	if err != nil {
		return err
	}
	runner := parser.RunnerFunc(a.runCommand)

	normalTable, err := a.cfg.Table(keymap.ModeNormal)
	if err != nil {
		return err
	}
	a.normal = parser.NewNormalParser(parser.Config{
		Mode:          keymap.ModeNormal,
		Table:         normalTable,
		Remap:         remap,
		SupportsCount: true,
	}, runner, a, func() time.Duration { return a.cfg.PartialTimeoutDuration() }, a.timerFactory)
	a.register(a.normal)

	for _, mode := range []string{keymap.ModeInsert, keymap.ModePassthrough} {
		t, err := a.cfg.Table(mode)
		if err != nil {
			return err
		}
		a.register(parser.NewPassthroughParser(parser.Config{
			Mode:  mode,
			Table: t,
			Remap: remap,
		}, runner, a, a))
	}

	for _, mode := range []string{keymap.ModePrompt, keymap.ModeYesNo} {
		t, err := a.cfg.Table(mode)
		if err != nil {
			return err
		}
		a.register(parser.NewPromptParser(parser.Config{
			Mode:  mode,
			Table: t,
			Remap: remap,
		}, runner, a))
	}

	hintTable, err := a.cfg.Table(keymap.ModeHint)
	if err != nil {
		return err
	}
	a.hint, err = parser.NewHintParser(hintTable.Bindings(), remap, runner, a, a.hints)
	if err != nil {
		return err
	}
	// A partial command chain absorbed by the embedded matcher shows up
	// on the status line like any other pending keychain.
	a.hint.CommandSub().OnKeystringChanged(func(keystr string) {
		if keystr != "" && a.manager.Mode() == keymap.ModeHint {
			a.keystring = keystr
		}
	})
	a.manager.Register(a.hint)

	registerModes := []struct {
		mode   string
		action parser.RegisterAction
	}{
		{keymap.ModeSetMark, parser.ActionSetMark},
		{keymap.ModeJumpMark, parser.ActionJumpMark},
		{keymap.ModeRecordMacro, parser.ActionRecordMacro},
		{keymap.ModeRunMacro, parser.ActionRunMacro},
	}
	for _, rm := range registerModes {
		t, err := a.cfg.Table(rm.mode)
		if err != nil {
			return err
		}
		a.register(parser.NewRegisterParser(parser.Config{
			Mode:  rm.mode,
			Table: t,
			Remap: remap,
		}, rm.action, runner, a, a.marks, a.recorder, a.manager.LeaveFunc()))
	}

	return nil
}

func (a *Application) register(p reloadableParser) {
	a.manager.Register(p)
	a.reloadable[p.Mode()] = p
}

// applyConfig swaps in a freshly loaded configuration without touching
// the active mode.
func (a *Application) applyConfig(cfg *config.Config) error {
	remap, err := cfg.Remap()
	if err != nil {
		return err
	}
	for mode, p := range a.reloadable {
		t, err := cfg.Table(mode)
		if err != nil {
			return err
		}
		p.SetTable(t)
		p.SetRemap(remap)
	}
	a.hint.SetRemap(remap)
	a.cfg = cfg
	return nil
}

// Error implements the message sink; command and register failures land
// in the status line.
func (a *Application) Error(msg string) {
	a.message = msg
}

// FocusedWidget resolves the forwarding target for passthrough-style
// modes. There is a single pane and it is always focused.
func (a *Application) FocusedWidget() parser.Widget {
	return a.pane
}

// SetScreen attaches the terminal screen used by Run.
func (a *Application) SetScreen(s *term.Screen) {
	a.screen = s
}

// Run drives the event loop until the user quits.
func (a *Application) Run() error {
	if a.screen == nil {
		return fmt.Errorf("no screen attached")
	}

	if a.opts.ConfigPath != "" {
		w, err := config.Watch(a.opts.ConfigPath, func(cfg *config.Config) {
			a.loopCh <- func() {
				if err := a.applyConfig(cfg); err != nil {
					a.Error(err.Error())
				} else {
					a.message = "config reloaded"
				}
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}

	done := make(chan struct{})
	defer close(done)
	events := a.screen.Events(done)

	a.draw()
	for !a.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleKey(ev)
		case fn := <-a.loopCh:
			fn()
		}
		a.draw()
	}
	return ErrQuit
}

// handleKey routes one event through the mode manager and keeps the
// macro recorder fed.
func (a *Application) handleKey(ev key.Event) {
	modeBefore := a.manager.Mode()
	wasRecording := a.recorder.Recording()

	consumed := a.manager.HandleEvent(ev)

	// Record presses handled while a macro is active, but not the
	// keychains that drive the recorder itself.
	if ev.IsPress() && !a.replaying && wasRecording && a.recorder.Recording() &&
		!isRegisterMode(modeBefore) && a.manager.Mode() != keymap.ModeRecordMacro {
		a.recorder.Feed(ev)
	}

	// Keys no binding claims reach the focused widget when configured,
	// even outside the passthrough modes.
	mode := a.manager.Mode()
	if !consumed && ev.IsPress() && a.cfg.Input.ForwardUnboundKeys &&
		mode != keymap.ModeInsert && mode != keymap.ModePassthrough {
		if info, err := ev.KeyInfo(); err == nil && !info.IsModifier() {
			a.pane.SendKey(ev)
		}
	}
}

// replayEvent re-injects a recorded press followed by its release.
func (a *Application) replayEvent(ev key.Event) {
	a.replaying = true
	defer func() { a.replaying = false }()

	a.handleKey(ev)
	rel := ev
	rel.Type = key.Release
	a.handleKey(rel)
}

func (a *Application) draw() {
	if a.screen == nil {
		return
	}
	lines := a.pane.Lines()
	if a.manager.Mode() == keymap.ModeHint {
		lines = append(append([]string(nil), lines...), a.hints.overlay()...)
	}
	a.screen.Draw(lines, term.Status{
		Mode:      a.manager.Mode(),
		Keystring: a.keystring,
		Message:   a.message,
		Recording: a.recorder.RecordingRegister(),
	})
}

func isRegisterMode(mode string) bool {
	switch mode {
	case keymap.ModeSetMark, keymap.ModeJumpMark,
		keymap.ModeRecordMacro, keymap.ModeRunMacro:
		return true
	}
	return false
}
