package app

import (
	"fmt"
	"strings"

	"github.com/dshills/modekeys/internal/input/keymap"
	"github.com/dshills/modekeys/internal/input/parser"
)

// hintLabelChars is the alphabet hint labels are generated from. Digits
// keep label keys and filter text disjoint from the letter keys used to
// type filter words.
const hintLabelChars = "0123456789"

// hintTarget is one selectable element shown during hinting.
type hintTarget struct {
	label string
	text  string
}

// hintState drives the demo hint overlay. It owns the target list, the
// current filtered subset, and the cursor used by hint-next/hint-prev.
// It satisfies the hint parser's Hinter interface.
type hintState struct {
	app     *Application
	targets []hintTarget
	visible []hintTarget
	cursor  int
	rapid   bool
	partial string
}

func newHintState(a *Application) *hintState {
	return &hintState{app: a}
}

// start opens the hint overlay over a fixed set of demo targets and
// switches to hint mode.
func (h *hintState) start(rapid bool) error {
	texts := []string{
		"home", "downloads", "documents", "settings", "history",
		"bookmarks", "help", "about", "search", "quit to normal",
		"open link", "copy link",
	}
	labels := hintLabels(len(texts), hintLabelChars)
	h.targets = h.targets[:0]
	for i, text := range texts {
		h.targets = append(h.targets, hintTarget{label: labels[i], text: text})
	}
	h.visible = append([]hintTarget(nil), h.targets...)
	h.cursor = 0
	h.rapid = rapid
	h.partial = ""

	if err := h.app.hint.UpdateBindings(labels, false); err != nil {
		return err
	}
	return h.app.manager.Enter(keymap.ModeHint, "start hinting", false)
}

// FilterHints narrows the visible targets to those whose text contains
// every space-separated word of text, then relabels the survivors. A
// single survivor is followed immediately.
func (h *hintState) FilterHints(text string) {
	words := strings.Fields(strings.ToLower(text))
	h.visible = h.visible[:0]
	for _, t := range h.targets {
		if matchesWords(t.text, words) {
			h.visible = append(h.visible, t)
		}
	}
	labels := hintLabels(len(h.visible), hintLabelChars)
	for i := range h.visible {
		h.visible[i].label = labels[i]
	}
	h.cursor = 0
	h.partial = ""

	if err := h.app.hint.UpdateBindings(labels, true); err != nil {
		h.app.Error(err.Error())
		return
	}
	if len(h.visible) == 1 {
		h.follow(h.visible[0])
	}
}

func matchesWords(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if !strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

// HandlePartialKey receives the label keystring as it grows. An exact
// label follows its target; a prefix narrows the highlight.
func (h *hintState) HandlePartialKey(keystr string) {
	h.partial = keystr
	for i, t := range h.visible {
		if t.label == keystr {
			h.cursor = i
			h.follow(t)
			return
		}
	}
}

// CurrentMode reports the hinting sub-mode. The demo always filters by
// element text, which is the behavior of number hints.
func (h *hintState) CurrentMode() string {
	return parser.HintFilterMode
}

// follow selects a target. Rapid hinting stays in hint mode so several
// targets can be followed in a row.
func (h *hintState) follow(t hintTarget) {
	h.app.message = fmt.Sprintf("followed hint: %s", t.text)
	h.app.pane.InsertText(fmt.Sprintf("[hint] %s", t.text))
	if h.rapid {
		h.app.hint.ClearKeystring()
		h.partial = ""
		return
	}
	if err := h.app.manager.Leave(keymap.ModeHint, "followed hint", true); err != nil {
		h.app.Error(err.Error())
	}
}

// followCurrent follows the target under the cursor, for hint-follow.
func (h *hintState) followCurrent() error {
	if len(h.visible) == 0 {
		return fmt.Errorf("no hint to follow")
	}
	h.follow(h.visible[h.cursor])
	return nil
}

// cycle moves the cursor by delta, wrapping around the visible targets.
func (h *hintState) cycle(delta int) {
	if len(h.visible) == 0 {
		return
	}
	h.cursor = (h.cursor + delta + len(h.visible)) % len(h.visible)
}

// overlay renders the visible targets for the status area.
func (h *hintState) overlay() []string {
	out := make([]string, 0, len(h.visible)+1)
	out = append(out, "-- hints --")
	for i, t := range h.visible {
		marker := "  "
		if i == h.cursor {
			marker = "> "
		}
		out = append(out, fmt.Sprintf("%s%s  %s", marker, t.label, t.text))
	}
	return out
}

// hintLabels generates n distinct labels over chars. All labels share
// one length, so no label is a prefix of another and partial matching
// stays unambiguous.
func hintLabels(n int, chars string) []string {
	if n == 0 {
		return nil
	}
	width := 1
	for capacity := len(chars); capacity < n; capacity *= len(chars) {
		width++
	}
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		var b strings.Builder
		x := i
		for pos := 0; pos < width; pos++ {
			b.WriteByte(chars[x%len(chars)])
			x /= len(chars)
		}
		// Digits were emitted least significant first.
		raw := []byte(b.String())
		for l, r := 0, len(raw)-1; l < r; l, r = l+1, r-1 {
			raw[l], raw[r] = raw[r], raw[l]
		}
		labels[i] = string(raw)
	}
	return labels
}
