package input

import (
	"fmt"

	"github.com/dshills/quicksearch/internal/input/key"
)

// Kind identifies the type of an input event.
type Kind uint8

const (
	// KindKey is a keyboard event.
	KindKey Kind = iota
	// KindMouse is a mouse event.
	KindMouse
	// KindFocus is a focus change.
	KindFocus
	// KindOther is any other host event (resize, menu, ...).
	KindOther
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindFocus:
		return "focus"
	default:
		return "other"
	}
}

// Button is a bit set of pressed mouse buttons.
type Button uint8

const (
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft Button = 1 << iota
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonOther covers any further buttons.
	ButtonOther
)

// ButtonNone indicates no button is pressed (moves and wheel scrolls).
const ButtonNone Button = 0

// Mouse describes a mouse event.
type Mouse struct {
	X, Y      int
	Buttons   Button
	Modifiers key.Modifier
}

// Event is a single input event.
type Event struct {
	Kind Kind

	// Key is set for KindKey events.
	Key key.Event
	// Down is false for key releases.
	Down bool

	// Mouse is set for KindMouse events.
	Mouse Mouse
}

// KeyDown wraps a key press.
func KeyDown(ev key.Event) Event {
	return Event{Kind: KindKey, Key: ev, Down: true}
}

// KeyUp wraps a key release.
func KeyUp(ev key.Event) Event {
	return Event{Kind: KindKey, Key: ev}
}

// Char returns a key press typing r.
func Char(r rune) Event {
	return KeyDown(key.NewRuneEvent(r, key.ModNone))
}

// Special returns a key press of k with mods.
func Special(k key.Key, mods key.Modifier) Event {
	return KeyDown(key.NewSpecialEvent(k, mods))
}

// MouseEvent wraps mouse activity.
func MouseEvent(m Mouse) Event {
	return Event{Kind: KindMouse, Mouse: m}
}

// String returns a short description for logging.
func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		if e.Down {
			return "key " + e.Key.String()
		}
		return "key-up " + e.Key.String()
	case KindMouse:
		return fmt.Sprintf("mouse (%d,%d) buttons=%b", e.Mouse.X, e.Mouse.Y, e.Mouse.Buttons)
	default:
		return e.Kind.String()
	}
}
