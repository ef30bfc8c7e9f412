package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/input/key"
)

// ConvertEvent converts a tcell event. Resizes, paste markers and
// interrupts become input.KindOther; unknown events report ok=false.
func ConvertEvent(ev tcell.Event) (input.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return input.KeyDown(convertKey(e)), true

	case *tcell.EventMouse:
		x, y := e.Position()
		return input.MouseEvent(input.Mouse{
			X:         x,
			Y:         y,
			Buttons:   convertButtons(e.Buttons()),
			Modifiers: convertMod(e.Modifiers()),
		}), true

	case *tcell.EventFocus:
		return input.Event{Kind: input.KindFocus}, true

	case *tcell.EventResize, *tcell.EventPaste, *tcell.EventInterrupt:
		return input.Event{Kind: input.KindOther}, true

	default:
		return input.Event{}, false
	}
}

func convertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	if k == tcell.KeyRune {
		// Shift is already folded into the rune.
		return key.NewRuneEvent(e.Rune(), mods.Without(key.ModShift))
	}
	if k == tcell.KeyBacktab {
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift))
	}
	if special, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(special, mods)
	}
	// xterm reports Shift+F1..F12 as F13..F24.
	if k >= tcell.KeyF13 && k <= tcell.KeyF24 {
		return key.NewSpecialEvent(key.KeyF1+key.Key(k-tcell.KeyF13), mods.With(key.ModShift))
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))
	}
	if k == tcell.KeyCtrlSpace {
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl))
	}
	return key.NewSpecialEvent(key.KeyNone, mods)
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
	tcell.KeyPause:      key.KeyPause,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

func convertButtons(b tcell.ButtonMask) input.Button {
	var buttons input.Button
	if b&tcell.Button1 != 0 {
		buttons |= input.ButtonLeft
	}
	if b&tcell.Button2 != 0 {
		buttons |= input.ButtonRight
	}
	if b&tcell.Button3 != 0 {
		buttons |= input.ButtonMiddle
	}
	if b&(tcell.Button4|tcell.Button5|tcell.Button6|tcell.Button7|tcell.Button8) != 0 {
		buttons |= input.ButtonOther
	}
	return buttons
}
