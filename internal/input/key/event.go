package key

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(key Key, r rune, mods Modifier) Event {
	return Event{
		Key:       key,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return NewEvent(key, 0, mods)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if the event types a character: a rune at or above
// U+0020 (DEL excluded) held with no chord modifiers, or with AltGr alone.
// Shift never disqualifies a character.
func (e Event) IsChar() bool {
	if !e.IsRune() || e.Rune < ' ' || e.Rune == 0x7f {
		return false
	}
	chord := e.Modifiers & ModChord
	return chord == ModNone || chord == ModAltGr
}

// IsPlain returns true if the key is pressed with none of Shift, Ctrl,
// Alt, Meta or AltGr.
func (e Event) IsPlain(k Key) bool {
	return e.Key == k && e.Modifiers == ModNone
}

// String returns a canonical string representation.
// Examples: "a", "C-v", "S-F3", "Enter"
func (e Event) String() string {
	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasAltGr() {
		parts = append(parts, "G")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "M")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}
	return strings.Join(parts, "-")
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}

// Binding is a set of key presses that trigger the same command.
type Binding []Event

// ParseBinding parses each spec into a Binding.
func ParseBinding(specs ...string) (Binding, error) {
	b := make(Binding, 0, len(specs))
	for _, spec := range specs {
		ev, err := Parse(spec)
		if err != nil {
			return nil, err
		}
		b = append(b, ev)
	}
	return b, nil
}

// MustParseBinding is like ParseBinding but panics on error.
// Use only for known-valid specs in initialization code.
func MustParseBinding(specs ...string) Binding {
	b, err := ParseBinding(specs...)
	if err != nil {
		panic(err)
	}
	return b
}

// Matches reports whether ev is one of the binding's key presses.
// Character comparisons ignore letter case when Ctrl is held, since
// terminals differ in what they report for Ctrl+letter.
func (b Binding) Matches(ev Event) bool {
	for _, want := range b {
		if want.Key != ev.Key || want.Modifiers != ev.Modifiers {
			continue
		}
		if want.Key != KeyRune {
			return true
		}
		if want.Rune == ev.Rune {
			return true
		}
		if ev.Modifiers.HasCtrl() && strings.EqualFold(string(want.Rune), string(ev.Rune)) {
			return true
		}
	}
	return false
}

// String returns the specs joined with ", ".
func (b Binding) String() string {
	parts := make([]string, len(b))
	for i, ev := range b {
		parts[i] = ev.String()
	}
	return strings.Join(parts, ", ")
}
