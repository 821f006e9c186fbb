package keymap

// Mode identifiers used throughout the engine.
const (
	ModeNormal      = "normal"
	ModeInsert      = "insert"
	ModePassthrough = "passthrough"
	ModeHint        = "hint"
	ModePrompt      = "prompt"
	ModeYesNo       = "yesno"
	ModeSetMark     = "set-mark"
	ModeJumpMark    = "jump-mark"
	ModeRecordMacro = "record-macro"
	ModeRunMacro    = "run-macro"
)

// defaultBindings are the built-in binding tables per mode. User config
// entries shadow these.
var defaultBindings = map[string]map[string]string{
	ModeNormal: {
		"i":         "enter-insert",
		"o":         "open",
		"O":         "open --tab",
		"f":         "hint",
		"gg":        "scroll-top",
		"G":         "scroll-bottom",
		"j":         "scroll down",
		"k":         "scroll up",
		"dd":        "tab-close",
		"yy":        "yank",
		"m":         "enter-set-mark",
		"'":         "enter-jump-mark",
		"q":         "enter-record-macro",
		"@":         "enter-run-macro",
		"<Ctrl+v>":  "enter-passthrough",
		"<Escape>":  "clear-keychain",
		"<Ctrl+r>":  "reload",
		"0":         "scroll-start",
		"$":         "scroll-end",
		"ZZ":        "quit",
	},
	ModeInsert: {
		"<Escape>": "mode-leave",
	},
	ModePassthrough: {
		"<Shift+Escape>": "mode-leave",
	},
	ModeHint: {
		"<Escape>":    "mode-leave",
		"<Enter>":     "hint-follow",
		"<Ctrl+r>":    "hint --rapid",
		"<Tab>":       "hint-next",
		"<Shift+Tab>": "hint-prev",
	},
	ModePrompt: {
		"<Escape>": "mode-leave",
		"<Enter>":  "prompt-accept",
	},
	ModeYesNo: {
		"y":        "prompt-accept yes",
		"n":        "prompt-accept no",
		"<Escape>": "mode-leave",
		"<Enter>":  "prompt-accept",
	},
	ModeSetMark:     {"<Escape>": "mode-leave"},
	ModeJumpMark:    {"<Escape>": "mode-leave"},
	ModeRecordMacro: {"<Escape>": "mode-leave"},
	ModeRunMacro:    {"<Escape>": "mode-leave"},
}

// DefaultBindings returns the built-in bindings for a mode. The result
// is a copy; callers may modify it.
func DefaultBindings(mode string) map[string]string {
	src := defaultBindings[mode]
	out := make(map[string]string, len(src))
	for spec, cmd := range src {
		out[spec] = cmd
	}
	return out
}

// Modes returns all mode identifiers that have built-in bindings.
func Modes() []string {
	return []string{
		ModeNormal, ModeInsert, ModePassthrough, ModeHint,
		ModePrompt, ModeYesNo,
		ModeSetMark, ModeJumpMark, ModeRecordMacro, ModeRunMacro,
	}
}
