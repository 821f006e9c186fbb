package parser

import (
	"errors"
	"time"

	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
)

// press builds a press event from canonical notation.
func press(spec string) key.Event {
	return key.NewPress(key.MustParse(spec))
}

// release builds a release event from canonical notation.
func release(spec string) key.Event {
	return key.NewRelease(key.MustParse(spec))
}

// buildTable binds spec->payload pairs into a fresh table.
func buildTable(mode string, bindings map[string]string) *keymap.Table {
	t := keymap.NewTable(mode)
	for spec, payload := range bindings {
		if err := t.BindSpec(spec, payload); err != nil {
			panic(err)
		}
	}
	return t
}

// fakeRunner records executed commands.
type fakeRunner struct {
	cmds   []string
	counts []int
	err    error
}

func (r *fakeRunner) Run(cmd string, count int) error {
	r.cmds = append(r.cmds, cmd)
	r.counts = append(r.counts, count)
	return r.err
}

// fakeSink records error messages.
type fakeSink struct {
	errors []string
}

func (s *fakeSink) Error(msg string) {
	s.errors = append(s.errors, msg)
}

// fakeTimer is a manually fired Timer.
type fakeTimer struct {
	fn       func()
	interval time.Duration
	active   bool
	starts   int
}

func (t *fakeTimer) Start(d time.Duration) {
	t.interval = d
	t.active = true
	t.starts++
}

func (t *fakeTimer) Stop() {
	t.active = false
}

func (t *fakeTimer) Active() bool {
	return t.active
}

// fire simulates the timer elapsing.
func (t *fakeTimer) fire() {
	t.active = false
	t.fn()
}

// fakeTimers hands out fakeTimer instances in creation order.
type fakeTimers struct {
	timers []*fakeTimer
}

func (f *fakeTimers) factory(fn func()) Timer {
	t := &fakeTimer{fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// fakeWidget records events sent to it.
type fakeWidget struct {
	events []key.Event
}

func (w *fakeWidget) SendKey(ev key.Event) {
	w.events = append(w.events, ev)
}

// fakeResolver resolves to a fixed widget, or none.
type fakeResolver struct {
	widget *fakeWidget
}

func (r *fakeResolver) FocusedWidget() Widget {
	if r.widget == nil {
		return nil
	}
	return r.widget
}

// fakeHinter records hint subsystem calls.
type fakeHinter struct {
	mode     string
	filtered []string
	partial  []string
}

func (h *fakeHinter) FilterHints(text string)      { h.filtered = append(h.filtered, text) }
func (h *fakeHinter) HandlePartialKey(text string) { h.partial = append(h.partial, text) }
func (h *fakeHinter) CurrentMode() string          { return h.mode }

// fakeRegisters implements both register stores.
type fakeRegisters struct {
	calls []string
	err   error
}

func (f *fakeRegisters) record(op, name string) error {
	f.calls = append(f.calls, op+":"+name)
	return f.err
}

func (f *fakeRegisters) SetMark(name string) error     { return f.record("set-mark", name) }
func (f *fakeRegisters) JumpMark(name string) error    { return f.record("jump-mark", name) }
func (f *fakeRegisters) RecordMacro(name string) error { return f.record("record-macro", name) }
func (f *fakeRegisters) RunMacro(name string) error    { return f.record("run-macro", name) }

var errBoom = errors.New("boom")
