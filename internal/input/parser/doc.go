// Package parser implements the keychain matching state machine and the
// mode-specific parsers layered on top of it.
//
// BaseParser is the shared matcher: it accumulates pressed keys into a
// working sequence, classifies the chain against a binding table, and
// manages the numeric count prefix. The mode parsers form a closed set:
//
//   - Command: resolves chains to commands via a CommandRunner; also
//     serves prompt/yesno modes (count disabled)
//   - Normal: adds the partial-match timeout and input inhibition
//   - Passthrough: forwards unmatched chains to the focused widget and
//     tracks press/release pairing for forwarded keys
//   - Hint: composes an embedded command matcher with hint-label
//     matching and text filtering
//   - Register: captures a single key as a mark/macro register name
//
// Parsers are single-threaded: all handling happens on the thread that
// owns the windowing event queue. Timer callbacks re-enter through the
// same queue, never concurrently with event handling.
package parser
