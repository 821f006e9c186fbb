package key

import (
	"errors"
	"time"
)

// ErrInvalidKey is returned when an event carries no resolvable key
// identity. Such events are discarded, never matched.
var ErrInvalidKey = errors.New("event has no resolvable key")

// EventType distinguishes key presses from key releases.
type EventType uint8

const (
	// Press is a key-press event.
	Press EventType = iota

	// Release is a key-release event.
	Release
)

// String returns "press" or "release".
func (t EventType) String() string {
	if t == Release {
		return "release"
	}
	return "press"
}

// Event is a single key press or release as delivered by the windowing
// layer, or as synthesized for forwarding.
type Event struct {
	// Type is Press or Release.
	Type EventType

	// Info is the normalized key descriptor.
	Info Info

	// Text is the display text delivered with the event. For synthesized
	// events this is derived from the descriptor.
	Text string

	// AutoRepeat is set when the event comes from key auto-repeat.
	AutoRepeat bool

	// When is the event timestamp.
	When time.Time
}

// NewPress creates a press event for the given descriptor.
func NewPress(info Info) Event {
	return Event{
		Type: Press,
		Info: info,
		Text: info.Text(),
		When: time.Now(),
	}
}

// NewRelease creates a release event for the given descriptor.
func NewRelease(info Info) Event {
	return Event{
		Type: Release,
		Info: info,
		Text: info.Text(),
		When: time.Now(),
	}
}

// KeyInfo returns the normalized descriptor, or ErrInvalidKey if the
// event has no resolvable key identity.
func (e Event) KeyInfo() (Info, error) {
	if !e.Info.Valid() {
		return Info{}, ErrInvalidKey
	}
	return e.Info, nil
}

// IsPress returns true for key-press events.
func (e Event) IsPress() bool {
	return e.Type == Press
}

// IsRelease returns true for key-release events.
func (e Event) IsRelease() bool {
	return e.Type == Release
}

// SameKey reports whether two events refer to the same physical key,
// ignoring the event type and the modifier mask. Modifiers may differ
// between a press and its release (the modifier can be let go first), so
// release pairing must not compare them.
func (e Event) SameKey(other Event) bool {
	return e.Info.Key == other.Info.Key && e.Info.Rune == other.Info.Rune
}

// String renders the event's key in canonical notation.
func (e Event) String() string {
	return e.Info.String()
}
