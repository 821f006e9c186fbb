// Package macro implements the register-addressed stores behind the
// register capture modes: named key-event macros (record and replay)
// and named position marks.
//
// Registers are single characters: lowercase letters and digits, with
// uppercase letters normalized to lowercase. All failures are
// *RegisterError values; they are reported to the user and never abort
// input handling.
package macro
