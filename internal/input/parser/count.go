package parser

import "math"

// countState tracks count prefix accumulation during parsing.
type countState struct {
	// value is the accumulated count value.
	value int

	// digits is the raw digit string, kept for keystring display.
	digits string

	// active indicates if a count is being accumulated.
	active bool
}

// reset clears the count state.
func (c *countState) reset() {
	c.value = 0
	c.digits = ""
	c.active = false
}

// accepts reports whether the digit would be consumed as a count digit.
// A leading '0' is never a count digit so it stays bindable as a key.
func (c *countState) accepts(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	return c.active || r != '0'
}

// accumulate adds a digit to the count. Returns true if the digit was
// accepted.
func (c *countState) accumulate(r rune) bool {
	if !c.accepts(r) {
		return false
	}

	digit := int(r - '0')
	c.active = true
	c.digits += string(r)

	// Guard against integer overflow
	if c.value > (math.MaxInt-digit)/10 {
		c.value = math.MaxInt / 10
		return true
	}

	c.value = c.value*10 + digit
	return true
}

// get returns the accumulated count, or 0 if no count was entered.
func (c *countState) get() int {
	if !c.active {
		return 0
	}
	return c.value
}
