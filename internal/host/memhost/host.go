package memhost

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/quicksearch/internal/host"
)

// GetInfo implements host.Host.
func (e *Editor) GetInfo(id host.BufferID) (host.Info, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, err := e.get("GetInfo", id)
	if err != nil {
		return host.Info{}, err
	}
	info := host.Info{
		CurLine:    b.curLine,
		CurCol:     b.curCol,
		TotalLines: len(b.lines),
		TopLine:    b.top,
		LeftPos:    b.left,
		BlockType:  b.block.Type,
	}
	if !b.block.IsEmpty() {
		info.BlockStartLine = b.block.StartLine
	}
	return info, nil
}

// SetPosition implements host.Host. The line must exist; the column may lie
// past the end of the line. With TopLine or LeftPos set to host.Keep the
// viewport scrolls just enough to show the cursor.
func (e *Editor) SetPosition(id host.BufferID, pos host.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.get("SetPosition", id)
	if err != nil {
		return err
	}
	if pos.Line != host.Keep && (pos.Line < 0 || pos.Line >= len(b.lines)) {
		return host.NewCallError("SetPosition", id,
			fmt.Errorf("%w: line %d of %d", host.ErrInvalidPosition, pos.Line, len(b.lines)))
	}
	if pos.Col < host.Keep || pos.TopLine < host.Keep || pos.LeftPos < host.Keep {
		return host.NewCallError("SetPosition", id, host.ErrInvalidPosition)
	}

	if pos.Line != host.Keep {
		b.curLine = pos.Line
	}
	if pos.Col != host.Keep {
		b.curCol = pos.Col
	}
	if pos.TopLine != host.Keep {
		b.top = min(pos.TopLine, len(b.lines)-1)
	}
	if pos.LeftPos != host.Keep {
		b.left = pos.LeftPos
	}
	if pos.TopLine == host.Keep || pos.LeftPos == host.Keep {
		e.scrollToCursor(b)
	}
	return nil
}

// scrollToCursor moves the viewport the minimum distance to show the cursor.
func (e *Editor) scrollToCursor(b *buffer) {
	if b.curLine < b.top {
		b.top = b.curLine
	} else if b.curLine >= b.top+e.height {
		b.top = b.curLine - e.height + 1
	}
	if b.curCol < b.left {
		b.left = b.curCol
	} else if b.curCol >= b.left+e.width {
		b.left = b.curCol - e.width + 1
	}
}

// GetLine implements host.Host.
func (e *Editor) GetLine(id host.BufferID, n int) (host.Line, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, err := e.get("GetLine", id)
	if err != nil {
		return host.Line{}, err
	}
	if n < 0 || n >= len(b.lines) {
		return host.Line{}, host.NewCallError("GetLine", id,
			fmt.Errorf("%w: line %d of %d", host.ErrInvalidPosition, n, len(b.lines)))
	}
	return b.line(n), nil
}

// CurrentLine implements host.Host.
func (e *Editor) CurrentLine(id host.BufferID) (host.Line, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b, err := e.get("CurrentLine", id)
	if err != nil {
		return host.Line{}, err
	}
	return b.line(b.curLine), nil
}

func (b *buffer) line(n int) host.Line {
	l := host.Line{Number: n, Text: b.lines[n], SelStart: -1, SelEnd: -1}
	blk := b.block
	if blk.IsEmpty() || n < blk.StartLine || n > blk.EndLine() {
		return l
	}
	switch blk.Type {
	case host.BlockColumn:
		l.SelStart = blk.StartCol
		l.SelEnd = blk.EndCol()
	case host.BlockStream:
		l.SelStart = 0
		if n == blk.StartLine {
			l.SelStart = blk.StartCol
		}
		if n == blk.EndLine() {
			l.SelEnd = blk.EndCol()
		}
	}
	return l
}

// SetSelection implements host.Host. A BlockNone block clears the selection.
func (e *Editor) SetSelection(id host.BufferID, blk host.Block) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.get("SetSelection", id)
	if err != nil {
		return err
	}
	if blk.IsEmpty() {
		b.block = host.NoBlock
		return nil
	}
	if blk.StartLine < 0 || blk.StartCol < 0 || blk.Height < 1 || blk.EndLine() >= len(b.lines) {
		return host.NewCallError("SetSelection", id,
			fmt.Errorf("%w: block %+v", host.ErrInvalidPosition, blk))
	}
	if blk.Type == host.BlockColumn && blk.Width < 0 {
		return host.NewCallError("SetSelection", id,
			fmt.Errorf("%w: negative column block width", host.ErrInvalidPosition))
	}
	b.block = blk
	return nil
}

// ClearSelection implements host.Host.
func (e *Editor) ClearSelection(id host.BufferID) error {
	return e.SetSelection(id, host.NoBlock)
}

// SetTitle implements host.Host.
func (e *Editor) SetTitle(id host.BufferID, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.get("SetTitle", id)
	if err != nil {
		return err
	}
	b.title = text
	return nil
}

// Redraw implements host.Host. The in-memory editor only counts redraws;
// the terminal viewer repaints after every event.
func (e *Editor) Redraw(id host.BufferID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.get("Redraw", id)
	if err != nil {
		return err
	}
	b.redraws++
	return nil
}

// ReadClipboardText implements host.Host.
func (e *Editor) ReadClipboardText() (string, error) {
	if e.clipboard == nil {
		return "", nil
	}
	text, err := e.clipboard()
	if err != nil {
		return "", host.NewCallError("ReadClipboardText", "", err)
	}
	return text, nil
}

// ShowHelp implements host.Host.
func (e *Editor) ShowHelp() {
	e.mu.Lock()
	e.helpCalls++
	show := e.help
	e.mu.Unlock()
	if show != nil {
		show()
	}
}

// ShowMessage implements host.Host.
func (e *Editor) ShowMessage(text string) {
	e.mu.Lock()
	e.messages = append(e.messages, text)
	show := e.message
	e.mu.Unlock()
	if show != nil {
		show(text)
	}
}

// Selection returns a buffer's current selection block.
func (e *Editor) Selection(id host.BufferID) host.Block {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if b, ok := e.buffers[id]; ok {
		return b.block
	}
	return host.NoBlock
}

// Title returns a buffer's title indicator.
func (e *Editor) Title(id host.BufferID) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if b, ok := e.buffers[id]; ok {
		return b.title
	}
	return ""
}

// Redraws returns how many times a buffer was redrawn.
func (e *Editor) Redraws(id host.BufferID) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if b, ok := e.buffers[id]; ok {
		return b.redraws
	}
	return 0
}

// Messages returns every text passed to ShowMessage.
func (e *Editor) Messages() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.messages...)
}

// HelpCalls returns how many times ShowHelp was called.
func (e *Editor) HelpCalls() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.helpCalls
}

// LineLen returns the rune length of line n, or 0 if it does not exist.
func (e *Editor) LineLen(id host.BufferID, n int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if b, ok := e.buffers[id]; ok && n >= 0 && n < len(b.lines) {
		return utf8.RuneCountInString(b.lines[n])
	}
	return 0
}
