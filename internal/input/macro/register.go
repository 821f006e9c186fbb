package macro

import (
	"fmt"
	"unicode"
)

// RegisterError reports an invalid register name or a failed register
// action.
type RegisterError struct {
	Register string
	Reason   string
}

func (e *RegisterError) Error() string {
	if e.Register == "" {
		return e.Reason
	}
	return fmt.Sprintf("register %q: %s", e.Register, e.Reason)
}

func registerErr(register, reason string) *RegisterError {
	return &RegisterError{Register: register, Reason: reason}
}

// IsValidRegister returns true if name is a single lowercase letter or
// digit.
func IsValidRegister(name string) bool {
	runes := []rune(name)
	if len(runes) != 1 {
		return false
	}
	r := runes[0]
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// NormalizeRegister lowers an uppercase register name. Anything else is
// returned unchanged; validity is checked separately.
func NormalizeRegister(name string) string {
	runes := []rune(name)
	if len(runes) == 1 && runes[0] >= 'A' && runes[0] <= 'Z' {
		return string(unicode.ToLower(runes[0]))
	}
	return name
}

// checkRegister normalizes and validates a register name.
func checkRegister(name string) (string, error) {
	name = NormalizeRegister(name)
	if !IsValidRegister(name) {
		return "", registerErr(name, "invalid register name")
	}
	return name, nil
}
