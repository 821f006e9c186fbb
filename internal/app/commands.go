package app

import (
	"fmt"
	"strings"

	"github.com/dshills/modekeys/internal/input/keymap"
)

// runCommand executes one resolved command string. count is the numeric
// prefix typed before the keychain, or zero when none was given.
func (a *Application) runCommand(cmd string, count int) error {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	name, args := fields[0], fields[1:]
	times := count
	if times <= 0 {
		times = 1
	}

	switch name {
	case "enter-insert":
		return a.manager.Enter(keymap.ModeInsert, "command", false)
	case "enter-passthrough":
		return a.manager.Enter(keymap.ModePassthrough, "command", false)
	case "enter-set-mark":
		return a.manager.Enter(keymap.ModeSetMark, "command", false)
	case "enter-jump-mark":
		return a.manager.Enter(keymap.ModeJumpMark, "command", false)
	case "enter-record-macro":
		// A second q while recording stops without prompting for a
		// register.
		if a.recorder.Recording() {
			return a.recorder.RecordMacro(a.recorder.RecordingRegister())
		}
		return a.manager.Enter(keymap.ModeRecordMacro, "command", false)
	case "enter-run-macro":
		return a.manager.Enter(keymap.ModeRunMacro, "command", false)
	case "mode-leave":
		return a.manager.Leave(a.manager.Mode(), "command", true)
	case "clear-keychain":
		a.manager.ClearKeychain()
		return nil

	case "hint":
		return a.hints.start(hasFlag(args, "--rapid"))
	case "hint-follow":
		return a.hints.followCurrent()
	case "hint-next":
		a.hints.cycle(times)
		return nil
	case "hint-prev":
		a.hints.cycle(-times)
		return nil

	case "scroll":
		if len(args) != 1 {
			return fmt.Errorf("scroll: want a direction, got %q", cmd)
		}
		switch args[0] {
		case "down":
			a.scroll += times
		case "up":
			a.scroll -= times
			if a.scroll < 0 {
				a.scroll = 0
			}
		default:
			return fmt.Errorf("scroll: unknown direction %q", args[0])
		}
		return nil
	case "scroll-top":
		a.scroll = 0
		return nil
	case "scroll-bottom":
		a.scroll = len(a.pane.Lines())
		return nil
	case "scroll-start", "scroll-end":
		a.message = name
		return nil

	case "open":
		if hasFlag(args, "--tab") {
			a.message = "opened in new tab"
		} else {
			a.message = "opened"
		}
		return nil
	case "yank":
		a.message = fmt.Sprintf("yanked %d line(s)", times)
		return nil
	case "tab-close":
		a.pane.Clear()
		a.scroll = 0
		a.message = "tab closed"
		return nil
	case "reload":
		a.message = "reloaded"
		return nil
	case "prompt-accept":
		if len(args) > 0 {
			a.message = fmt.Sprintf("prompt accepted: %s", args[0])
		} else {
			a.message = "prompt accepted"
		}
		return a.manager.Leave(a.manager.Mode(), "prompt accepted", true)

	case "quit":
		a.quit = true
		return nil
	}
	return fmt.Errorf("unknown command: %s", cmd)
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}
