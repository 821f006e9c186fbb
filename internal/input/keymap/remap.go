package keymap

import (
	"fmt"

	"github.com/dshills/modekeys/internal/input/key"
)

// Remap rewrites individual keys before table lookup. It implements the
// global key-mapping substitutions, e.g. mapping a non-ASCII character to
// its ASCII equivalent so one binding serves both layouts. The
// substitution affects matching only; the original event is untouched.
type Remap map[key.Info]key.Info

// Apply returns the substituted descriptor, or the input unchanged when
// no substitution exists.
func (r Remap) Apply(info key.Info) key.Info {
	if r == nil {
		return info
	}
	if mapped, ok := r[info]; ok {
		return mapped
	}
	return info
}

// ParseRemap builds a Remap from single-key spec pairs, e.g.
// {"<Ctrl+й>": "<Ctrl+i>"}. Each side must parse to exactly one key.
func ParseRemap(specs map[string]string) (Remap, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	remap := make(Remap, len(specs))
	for from, to := range specs {
		fromInfo, err := key.Parse(from)
		if err != nil {
			return nil, fmt.Errorf("key mapping %q: %w", from, err)
		}
		toInfo, err := key.Parse(to)
		if err != nil {
			return nil, fmt.Errorf("key mapping %q -> %q: %w", from, to, err)
		}
		remap[fromInfo] = toInfo
	}
	return remap, nil
}
