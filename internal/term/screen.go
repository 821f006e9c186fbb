package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modekeys/internal/input/key"
)

// Status is what the status line shows.
type Status struct {
	Mode      string
	Keystring string
	Message   string
	Recording string
}

// Screen wraps a tcell screen: key event source plus a minimal two-part
// display (content pane and status line).
type Screen struct {
	tc tcell.Screen
}

// NewScreen allocates and initializes the terminal screen.
func NewScreen() (*Screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := tc.Init(); err != nil {
		return nil, err
	}
	return &Screen{tc: tc}, nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.tc.Fini()
}

// Events polls the terminal and delivers normalized key events on the
// returned channel. Terminals report no key releases, so every press is
// followed by a synthesized release; the pairing bookkeeping in the
// parsers relies on that ordering. The channel closes when done closes
// or the screen is finalized.
func (s *Screen) Events(done <-chan struct{}) <-chan key.Event {
	events := make(chan key.Event, 100)

	go func() {
		defer close(events)
		for {
			ev := s.tc.PollEvent()
			if ev == nil {
				return
			}
			tev, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			press, ok := FromEventKey(tev)
			if !ok {
				continue
			}
			release := press
			release.Type = key.Release

			for _, out := range []key.Event{press, release} {
				select {
				case events <- out:
				case <-done:
					return
				}
			}
		}
	}()

	return events
}

// Draw renders the content lines and the status line.
func (s *Screen) Draw(lines []string, status Status) {
	s.tc.Clear()
	width, height := s.tc.Size()
	if height < 2 {
		return
	}

	for y, line := range lines {
		if y >= height-1 {
			break
		}
		drawText(s.tc, 0, y, width, line, tcell.StyleDefault, false)
	}

	left := fmt.Sprintf(" -- %s --", status.Mode)
	if status.Recording != "" {
		left += fmt.Sprintf(" recording @%s", status.Recording)
	}
	if status.Message != "" {
		left += "  " + status.Message
	}
	statusStyle := tcell.StyleDefault.Reverse(true)
	drawText(s.tc, 0, height-1, width, left, statusStyle, true)
	if status.Keystring != "" {
		x := width - len(status.Keystring) - 1
		if x > len(left) {
			drawText(s.tc, x, height-1, width, status.Keystring, statusStyle, false)
		}
	}

	s.tc.Show()
}

func drawText(tc tcell.Screen, x, y, width int, text string, style tcell.Style, pad bool) {
	col := x
	for _, r := range text {
		if col >= width {
			break
		}
		tc.SetContent(col, y, r, nil, style)
		col++
	}
	if pad {
		for ; col < width; col++ {
			tc.SetContent(col, y, ' ', nil, style)
		}
	}
}
