// Package term adapts a tcell terminal screen to the input engine:
// translating terminal key events into normalized key events and
// rendering the mode/keystring status line.
package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modekeys/internal/input/key"
)

// FromEventKey translates a tcell key event into a normalized press.
// Returns false for events with no resolvable key identity.
func FromEventKey(ev *tcell.EventKey) (key.Event, bool) {
	k, r, mods := translate(ev)
	if k == key.KeyNone {
		return key.Event{}, false
	}
	info := key.NewInfo(k, r, mods)
	return key.Event{
		Type: key.Press,
		Info: info,
		Text: info.Text(),
		When: ev.When(),
	}, true
}

func translate(ev *tcell.EventKey) (key.Key, rune, key.Modifier) {
	mods := translateMods(ev.Modifiers())

	tk := ev.Key()

	// tcell folds Ctrl+letter into dedicated key codes.
	if tk >= tcell.KeyCtrlA && tk <= tcell.KeyCtrlZ {
		switch tk {
		case tcell.KeyCtrlI:
			return key.KeyTab, 0, mods.Without(key.ModCtrl)
		case tcell.KeyCtrlM:
			return key.KeyEnter, 0, mods.Without(key.ModCtrl)
		case tcell.KeyCtrlH:
			return key.KeyBackspace, 0, mods.Without(key.ModCtrl)
		}
		return key.KeyRune, rune('a' + tk - tcell.KeyCtrlA), mods.With(key.ModCtrl)
	}

	switch tk {
	case tcell.KeyRune:
		return key.KeyRune, ev.Rune(), mods
	case tcell.KeyEscape:
		return key.KeyEscape, 0, mods
	case tcell.KeyEnter:
		return key.KeyEnter, 0, mods
	case tcell.KeyTab:
		return key.KeyTab, 0, mods
	case tcell.KeyBacktab:
		return key.KeyTab, 0, mods.With(key.ModShift)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace, 0, mods
	case tcell.KeyDelete:
		return key.KeyDelete, 0, mods
	case tcell.KeyInsert:
		return key.KeyInsert, 0, mods
	case tcell.KeyHome:
		return key.KeyHome, 0, mods
	case tcell.KeyEnd:
		return key.KeyEnd, 0, mods
	case tcell.KeyPgUp:
		return key.KeyPageUp, 0, mods
	case tcell.KeyPgDn:
		return key.KeyPageDown, 0, mods
	case tcell.KeyUp:
		return key.KeyUp, 0, mods
	case tcell.KeyDown:
		return key.KeyDown, 0, mods
	case tcell.KeyLeft:
		return key.KeyLeft, 0, mods
	case tcell.KeyRight:
		return key.KeyRight, 0, mods
	case tcell.KeyF1:
		return key.KeyF1, 0, mods
	case tcell.KeyF2:
		return key.KeyF2, 0, mods
	case tcell.KeyF3:
		return key.KeyF3, 0, mods
	case tcell.KeyF4:
		return key.KeyF4, 0, mods
	case tcell.KeyF5:
		return key.KeyF5, 0, mods
	case tcell.KeyF6:
		return key.KeyF6, 0, mods
	case tcell.KeyF7:
		return key.KeyF7, 0, mods
	case tcell.KeyF8:
		return key.KeyF8, 0, mods
	case tcell.KeyF9:
		return key.KeyF9, 0, mods
	case tcell.KeyF10:
		return key.KeyF10, 0, mods
	case tcell.KeyF11:
		return key.KeyF11, 0, mods
	case tcell.KeyF12:
		return key.KeyF12, 0, mods
	}
	return key.KeyNone, 0, mods
}

func translateMods(m tcell.ModMask) key.Modifier {
	mods := key.ModNone
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
