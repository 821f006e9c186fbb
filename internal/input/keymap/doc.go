// Package keymap provides mode-scoped binding tables.
//
// A Table maps key sequences to payloads - command strings for command
// modes, hint labels for hint mode - and classifies a typed sequence as
// NoMatch, PartialMatch or ExactMatch using a prefix tree.
//
// Tables are built per mode by merging sources in priority order: user
// overrides win over mode defaults. Key-remapping substitutions are a
// separate concern (see Remap); they rewrite individual keys before they
// ever reach a table.
package keymap
