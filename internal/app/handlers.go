package app

import (
	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/plugin"
)

// HandleEvent processes one input event. The quick-search plugin sees
// every event first. It returns ErrQuit when the user quits.
func (a *Application) HandleEvent(ev input.Event) error {
	if ev.Kind == input.KindOther {
		a.resize()
	}

	id := a.currentID()
	if a.plugin.ProcessInput(id, ev) {
		return nil
	}

	switch ev.Kind {
	case input.KindKey:
		if ev.Down {
			return a.handleKey(id, ev.Key)
		}
	case input.KindMouse:
		a.handleMouse(id, ev.Mouse)
	}
	return nil
}

func (a *Application) handleKey(id host.BufferID, k key.Event) error {
	a.message = ""
	b := a.bindings

	switch {
	case b.Quit.Matches(k):
		return ErrQuit
	case b.SearchForward.Matches(k):
		a.startSearch(id, 0)
	case b.SearchBackward.Matches(k):
		a.startSearch(id, 1)
	case b.Menu.Matches(k):
		items := a.plugin.MenuItems()
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = item.Text
		}
		a.startSearch(id, a.screen.Menu(a.msgs.Caption, labels))
	case b.Help.Matches(k):
		a.showHelp()
	case k.IsPlain(key.KeyF6):
		a.current = (a.current + 1) % len(a.docs)
		a.selAnchor = nil
	case k.IsPlain(key.KeyEscape):
		a.selAnchor = nil
		_ = a.editor.ClearSelection(id)
	default:
		a.navigate(id, k)
	}
	return nil
}

func (a *Application) startSearch(id host.BufferID, choice int) {
	a.selAnchor = nil
	if choice == plugin.Cancelled {
		return
	}
	// Failures are already on the status line.
	_ = a.plugin.Open(id, choice)
}

// navigate moves the cursor. Shift extends a stream selection and
// Alt+Shift a column selection from where the extension started.
func (a *Application) navigate(id host.BufferID, k key.Event) {
	info, err := a.editor.GetInfo(id)
	if err != nil {
		a.log.Error("navigate: %v", err)
		return
	}
	from := host.At(info.CurLine, info.CurCol)
	to, ok := a.move(id, info, k.Key)
	if !ok {
		return
	}
	if err := a.editor.SetPosition(id, to); err != nil {
		a.log.Error("navigate: %v", err)
		return
	}

	mods := k.Modifiers
	if !mods.HasShift() {
		a.selAnchor = nil
		return
	}
	if a.selAnchor == nil {
		a.selAnchor = &from
	}
	typ := host.BlockStream
	if mods.HasAlt() {
		typ = host.BlockColumn
	}
	blk := blockBetween(typ, *a.selAnchor, to)
	if blk.IsEmpty() {
		err = a.editor.ClearSelection(id)
	} else {
		err = a.editor.SetSelection(id, blk)
	}
	if err != nil {
		a.log.Error("select: %v", err)
	}
}

func (a *Application) move(id host.BufferID, info host.Info, k key.Key) (host.Position, bool) {
	line, col := info.CurLine, info.CurCol
	_, rows := a.editor.Window()
	last := info.TotalLines - 1

	switch k {
	case key.KeyUp:
		line--
	case key.KeyDown:
		line++
	case key.KeyPageUp:
		line -= rows
	case key.KeyPageDown:
		line += rows
	case key.KeyLeft:
		if col > 0 {
			col--
		} else if line > 0 {
			line--
			col = a.editor.LineLen(id, line)
		}
	case key.KeyRight:
		if col < a.editor.LineLen(id, line) {
			col++
		} else if line < last {
			line++
			col = 0
		}
	case key.KeyHome:
		col = 0
	case key.KeyEnd:
		col = a.editor.LineLen(id, line)
	default:
		return host.Position{}, false
	}

	line = min(max(line, 0), last)
	col = min(col, a.editor.LineLen(id, line))
	return host.At(line, col), true
}

// blockBetween returns the selection spanning two cursor positions, or
// host.NoBlock if they coincide.
func blockBetween(typ host.BlockType, p, q host.Position) host.Block {
	if p.Line == q.Line && p.Col == q.Col {
		return host.NoBlock
	}
	if typ == host.BlockColumn {
		return host.Block{
			Type:      host.BlockColumn,
			StartLine: min(p.Line, q.Line),
			StartCol:  min(p.Col, q.Col),
			Height:    max(p.Line, q.Line) - min(p.Line, q.Line) + 1,
			Width:     max(p.Col, q.Col) - min(p.Col, q.Col),
		}
	}
	if q.Line < p.Line || (q.Line == p.Line && q.Col < p.Col) {
		p, q = q, p
	}
	return host.Block{
		Type:      host.BlockStream,
		StartLine: p.Line,
		StartCol:  p.Col,
		Height:    q.Line - p.Line + 1,
		Width:     q.Col - p.Col,
	}
}

func (a *Application) handleMouse(id host.BufferID, m input.Mouse) {
	if m.Buttons&input.ButtonLeft == 0 {
		return
	}
	info, err := a.editor.GetInfo(id)
	if err != nil {
		return
	}
	_, rows := a.editor.Window()
	if m.Y >= rows {
		return
	}
	line := min(info.TopLine+m.Y, info.TotalLines-1)
	col := min(info.LeftPos+m.X, a.editor.LineLen(id, line))
	a.selAnchor = nil
	if err := a.editor.SetPosition(id, host.At(line, col)); err != nil {
		a.log.Error("click: %v", err)
	}
}
