package modeman

import (
	"errors"
	"testing"

	"github.com/dshills/modekeys/internal/input/key"
	"github.com/dshills/modekeys/internal/input/keymap"
	"github.com/dshills/modekeys/internal/input/parser"
)

func press(spec string) key.Event {
	return key.NewPress(key.MustParse(spec))
}

func buildTable(mode string, bindings map[string]string) *keymap.Table {
	t := keymap.NewTable(mode)
	for spec, payload := range bindings {
		if err := t.BindSpec(spec, payload); err != nil {
			panic(err)
		}
	}
	return t
}

type recordingRunner struct {
	cmds []string
}

func (r *recordingRunner) Run(cmd string, count int) error {
	r.cmds = append(r.cmds, cmd)
	return nil
}

func commandParser(mode string, bindings map[string]string, runner parser.CommandRunner) *parser.CommandParser {
	return parser.NewCommandParser(parser.Config{
		Mode:  mode,
		Table: buildTable(mode, bindings),
	}, runner, nil)
}

func newTestManager() (*Manager, *recordingRunner) {
	runner := &recordingRunner{}
	m := NewManager()
	m.Register(commandParser(keymap.ModeNormal, map[string]string{"gg": "scroll-top"}, runner))
	m.Register(commandParser(keymap.ModeInsert, nil, runner))
	m.Register(commandParser(keymap.ModePrompt, map[string]string{"<Enter>": "prompt-accept"}, runner))
	m.Register(commandParser(keymap.ModeYesNo, map[string]string{"y": "prompt-yes"}, runner))
	return m, runner
}

func TestManagerWouldFilterDoesNotConsume(t *testing.T) {
	m, runner := newTestManager()

	// Probing reports what would be consumed without touching state,
	// the shortcut-override style check.
	if !m.WouldFilter(press("g")) {
		t.Fatalf("bound chain start not reported as filtered")
	}
	if m.WouldFilter(press("z")) {
		t.Fatalf("unbound key reported as filtered")
	}

	p := m.Parser(keymap.ModeNormal).(*parser.CommandParser)
	if !p.Sequence().IsEmpty() {
		t.Fatalf("probe mutated the working sequence: %q", p.Keystring())
	}
	if len(runner.cmds) != 0 {
		t.Fatalf("probe ran commands: %v", runner.cmds)
	}

	// A live chain after probing behaves as if no probe happened.
	m.HandleEvent(press("g"))
	m.HandleEvent(press("g"))
	if len(runner.cmds) != 1 || runner.cmds[0] != "scroll-top" {
		t.Fatalf("cmds = %v, want [scroll-top]", runner.cmds)
	}
}

func TestManagerRoutesToActiveParser(t *testing.T) {
	m, runner := newTestManager()

	if !m.HandleEvent(press("g")) {
		t.Fatalf("partial press not consumed")
	}
	if !m.HandleEvent(press("g")) {
		t.Fatalf("exact press not consumed")
	}
	if len(runner.cmds) != 1 || runner.cmds[0] != "scroll-top" {
		t.Errorf("cmds = %v, want [scroll-top]", runner.cmds)
	}

	// Unbound keys are not consumed and propagate.
	if m.HandleEvent(press("z")) {
		t.Errorf("unbound key consumed")
	}
}

func TestManagerEnterAndLeave(t *testing.T) {
	m, _ := newTestManager()
	var enters, leaves []string
	m.OnEntered(func(mode string) { enters = append(enters, mode) })
	m.OnLeft(func(mode, newMode string) { leaves = append(leaves, mode+">"+newMode) })

	if err := m.Enter(keymap.ModeInsert, "test", false); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != keymap.ModeInsert {
		t.Fatalf("mode = %q, want insert", m.Mode())
	}
	if err := m.Leave(keymap.ModeInsert, "test", false); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != keymap.ModeNormal {
		t.Fatalf("mode = %q, want normal", m.Mode())
	}

	if len(enters) != 1 || enters[0] != keymap.ModeInsert {
		t.Errorf("enters = %v", enters)
	}
	if len(leaves) != 1 || leaves[0] != "insert>normal" {
		t.Errorf("leaves = %v", leaves)
	}
}

func TestManagerEnterUnknownMode(t *testing.T) {
	m, _ := newTestManager()
	if err := m.Enter("no-such-mode", "test", false); err == nil {
		t.Errorf("entering unregistered mode did not fail")
	}
}

func TestManagerEnterOnlyIfNormal(t *testing.T) {
	m, _ := newTestManager()
	if err := m.Enter(keymap.ModeInsert, "test", false); err != nil {
		t.Fatal(err)
	}
	if err := m.Enter(keymap.ModePrompt, "test", true); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != keymap.ModeInsert {
		t.Errorf("only_if_normal request overrode insert mode: %q", m.Mode())
	}
}

func TestManagerLeaveWrongMode(t *testing.T) {
	m, _ := newTestManager()

	err := m.Leave(keymap.ModeInsert, "test", false)
	if !errors.Is(err, ErrNotInMode) {
		t.Errorf("err = %v, want ErrNotInMode", err)
	}
	// maybe drops the stale request silently.
	if err := m.Leave(keymap.ModeInsert, "test", true); err != nil {
		t.Errorf("maybe leave: %v", err)
	}
}

func TestManagerLeaveClearsKeystring(t *testing.T) {
	m, _ := newTestManager()
	var updates []string
	m.OnKeystringUpdated(func(mode, keystr string) {
		updates = append(updates, mode+":"+keystr)
	})

	m.HandleEvent(press("g"))
	if len(updates) != 1 || updates[0] != "normal:g" {
		t.Fatalf("updates = %v", updates)
	}

	if err := m.Enter(keymap.ModeInsert, "test", false); err != nil {
		t.Fatal(err)
	}
	last := updates[len(updates)-1]
	if last != "normal:" {
		t.Errorf("keystring not cleared on mode switch: updates = %v", updates)
	}

	// The pending chain must not resurface after coming back.
	if err := m.Leave(keymap.ModeInsert, "test", false); err != nil {
		t.Fatal(err)
	}
	if m.HandleEvent(press("z")) {
		t.Errorf("stale prefix consumed an unrelated key")
	}
}

func TestManagerPromptRestoresPreviousMode(t *testing.T) {
	m, _ := newTestManager()

	if err := m.Enter(keymap.ModeInsert, "test", false); err != nil {
		t.Fatal(err)
	}
	if err := m.Enter(keymap.ModePrompt, "popup", false); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != keymap.ModePrompt {
		t.Fatalf("mode = %q, want prompt", m.Mode())
	}
	if err := m.Leave(keymap.ModePrompt, "closed", false); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != keymap.ModeInsert {
		t.Errorf("mode = %q, want insert restored after prompt", m.Mode())
	}
}

func TestManagerPromptOverPromptIgnored(t *testing.T) {
	m, _ := newTestManager()

	if err := m.Enter(keymap.ModePrompt, "popup", false); err != nil {
		t.Fatal(err)
	}
	if err := m.Enter(keymap.ModeYesNo, "question", false); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != keymap.ModePrompt {
		t.Errorf("mode = %q, want prompt kept", m.Mode())
	}
}

func TestManagerEnterNormalLeavesCurrent(t *testing.T) {
	m, _ := newTestManager()
	if err := m.Enter(keymap.ModeInsert, "test", false); err != nil {
		t.Fatal(err)
	}
	if err := m.Enter(keymap.ModeNormal, "reset", false); err != nil {
		t.Fatal(err)
	}
	if m.Mode() != keymap.ModeNormal {
		t.Errorf("mode = %q, want normal", m.Mode())
	}
}

func TestManagerRegisterParserLeavesOnCapture(t *testing.T) {
	m, runner := newTestManager()
	regs := &markRecorder{}
	m.Register(parser.NewRegisterParser(parser.Config{
		Mode:  keymap.ModeSetMark,
		Table: keymap.NewTable(keymap.ModeSetMark),
	}, parser.ActionSetMark, runner, nil, regs, nil, m.LeaveFunc()))

	if err := m.Enter(keymap.ModeSetMark, "test", false); err != nil {
		t.Fatal(err)
	}
	if !m.HandleEvent(press("a")) {
		t.Fatalf("register key not consumed")
	}
	if len(regs.names) != 1 || regs.names[0] != "a" {
		t.Errorf("marks = %v, want [a]", regs.names)
	}
	if m.Mode() != keymap.ModeNormal {
		t.Errorf("mode = %q, want normal after register capture", m.Mode())
	}
}

func TestManagerReleaseRouting(t *testing.T) {
	m, runner := newTestManager()
	widget := &recordingWidget{}
	m.Register(parser.NewPassthroughParser(parser.Config{
		Mode:  keymap.ModePassthrough,
		Table: buildTable(keymap.ModePassthrough, map[string]string{"xy": "cmd"}),
	}, runner, nil, fixedResolver{widget}))

	if err := m.Enter(keymap.ModePassthrough, "test", false); err != nil {
		t.Fatal(err)
	}
	m.HandleEvent(press("x"))
	if !m.HandleEvent(key.NewRelease(key.MustParse("x"))) {
		t.Errorf("release of pending press not withheld")
	}

	// Parsers without release handling let releases propagate.
	if err := m.Leave(keymap.ModePassthrough, "test", false); err != nil {
		t.Fatal(err)
	}
	if m.HandleEvent(key.NewRelease(key.MustParse("z"))) {
		t.Errorf("release consumed by a parser without release handling")
	}
}

type markRecorder struct {
	names []string
}

func (r *markRecorder) SetMark(name string) error  { r.names = append(r.names, name); return nil }
func (r *markRecorder) JumpMark(name string) error { r.names = append(r.names, name); return nil }

type recordingWidget struct {
	events []key.Event
}

func (w *recordingWidget) SendKey(ev key.Event) { w.events = append(w.events, ev) }

type fixedResolver struct {
	widget parser.Widget
}

func (r fixedResolver) FocusedWidget() parser.Widget { return r.widget }
