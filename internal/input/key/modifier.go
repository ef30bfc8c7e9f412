package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta

	// ModAltGr indicates the AltGr chord (right Alt, reported by some
	// hosts as left Ctrl + right Alt).
	ModAltGr
)

// ModChord is the set of modifiers that turn a character key into a command.
const ModChord = ModCtrl | ModAlt | ModMeta | ModAltGr

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// HasAltGr returns true if the AltGr chord is pressed.
func (m Modifier) HasAltGr() bool {
	return m.Has(ModAltGr)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// modifierOrder is the order modifiers appear in String and in bindings
// written back to config files.
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModAltGr, "AltGr"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

// String returns the modifiers joined with "+", like "Ctrl+Shift".
func (m Modifier) String() string {
	var b strings.Builder
	for _, o := range modifierOrder {
		if !m.Has(o.mod) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(o.name)
	}
	return b.String()
}

// modifierNames accepts the long names used in config files and the
// single-letter forms of "<C-v>" specs.
var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"a":       ModAlt,
	"altgr":   ModAltGr,
	"shift":   ModShift,
	"s":       ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
	"m":       ModMeta,
}

// ModifierFromName looks name up ignoring case; unknown names give ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(name)]
}
