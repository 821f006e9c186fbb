// Package key provides keyboard key representation for the dispatch engine.
//
// The package defines:
//   - Key: physical key identification (special keys and character keys)
//   - Modifier: modifier key bitmask (Ctrl, Alt, Shift, Meta)
//   - Info: a normalized key descriptor (key + modifiers), the unit that
//     keychains are built from
//   - Event: a single press or release delivered by the windowing layer
//   - Sequence: an ordered chain of Info values with prefix matching
//   - Parsing of the textual notation used in binding tables, e.g.
//     "gg", "<Ctrl+x>o", "<Escape>"
//
// The notation round-trips: for any Sequence s built from representable
// Info values, ParseSequence(s.String()) equals s.
package key
