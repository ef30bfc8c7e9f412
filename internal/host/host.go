package host

// BufferID identifies one open editing context.
type BufferID string

// Keep leaves a Position field unchanged.
const Keep = -1

// BlockType is the kind of selection in a buffer.
type BlockType uint8

const (
	// BlockNone means nothing is selected.
	BlockNone BlockType = iota
	// BlockStream is a character-stream selection.
	BlockStream
	// BlockColumn is a rectangular selection.
	BlockColumn
)

// String returns the block type name.
func (t BlockType) String() string {
	switch t {
	case BlockStream:
		return "stream"
	case BlockColumn:
		return "column"
	default:
		return "none"
	}
}

// Block describes a selection.
type Block struct {
	Type      BlockType
	StartLine int
	StartCol  int
	Height    int
	Width     int
}

// NoBlock is the empty selection.
var NoBlock = Block{Type: BlockNone}

// IsEmpty reports whether the block selects nothing.
func (b Block) IsEmpty() bool {
	return b.Type == BlockNone
}

// EndLine returns the last line covered by the block.
func (b Block) EndLine() int {
	return b.StartLine + b.Height - 1
}

// EndCol returns the exclusive end column on the last line.
func (b Block) EndCol() int {
	return b.StartCol + b.Width
}

// Info is the editor state returned by GetInfo.
//
// Only the start line of the selection is reported; its full extent has to
// be recovered by walking lines with GetLine.
type Info struct {
	CurLine        int
	CurCol         int
	TotalLines     int
	TopLine        int
	LeftPos        int
	BlockType      BlockType
	BlockStartLine int
}

// Position is a cursor/viewport update. Fields set to Keep are unchanged.
type Position struct {
	Line    int
	Col     int
	TopLine int
	LeftPos int
}

// At returns a Position moving the cursor only.
func At(line, col int) Position {
	return Position{Line: line, Col: col, TopLine: Keep, LeftPos: Keep}
}

// Line is a single line of text and the selected span within it.
type Line struct {
	Number int
	Text   string
	// SelStart is the first selected column, or -1 if the line has no
	// selection.
	SelStart int
	// SelEnd is the exclusive end of the selection in this line, or -1 if
	// the selection continues past the end of the line.
	SelEnd int
}

// Len returns the line length in runes.
func (l Line) Len() int {
	n := 0
	for range l.Text {
		n++
	}
	return n
}

// Host is the buffer-access interface consumed by the search engine.
type Host interface {
	// GetInfo returns the cursor, viewport and selection start of a buffer.
	GetInfo(id BufferID) (Info, error)

	// SetPosition moves the cursor and viewport.
	SetPosition(id BufferID, pos Position) error

	// GetLine returns line n of the buffer.
	GetLine(id BufferID, n int) (Line, error)

	// CurrentLine returns the line under the cursor.
	CurrentLine(id BufferID) (Line, error)

	// SetSelection replaces the selection with b.
	SetSelection(id BufferID, b Block) error

	// ClearSelection removes the selection.
	ClearSelection(id BufferID) error

	// SetTitle displays text in the buffer's title indicator; "" clears it.
	SetTitle(id BufferID, text string) error

	// Redraw repaints the buffer.
	Redraw(id BufferID) error

	// ReadClipboardText returns the clipboard text, or "" if there is none.
	ReadClipboardText() (string, error)

	// ShowHelp opens the host's help for quick search.
	ShowHelp()

	// ShowMessage displays a dialog-level message.
	ShowMessage(text string)
}
