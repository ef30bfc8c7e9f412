package memhost

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/quicksearch/internal/host"
)

type buffer struct {
	name    string
	lines   []string
	curLine int
	curCol  int
	top     int
	left    int
	block   host.Block
	title   string
	redraws int
}

// Editor is an in-memory host.Host.
type Editor struct {
	mu      sync.RWMutex
	buffers map[host.BufferID]*buffer
	order   []host.BufferID

	width  int
	height int

	clipboard func() (string, error)
	help      func()
	message   func(string)

	messages  []string
	helpCalls int
}

var _ host.Host = (*Editor)(nil)

// New creates an empty editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		buffers: make(map[host.BufferID]*buffer),
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open adds a buffer holding text and returns its identifier.
func (e *Editor) Open(text string) host.BufferID {
	return e.OpenNamed("", text)
}

// OpenNamed adds a named buffer holding text.
func (e *Editor) OpenNamed(name, text string) host.BufferID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := host.BufferID(uuid.NewString())
	e.buffers[id] = &buffer{name: name, lines: splitLines(text)}
	e.order = append(e.order, id)
	return id
}

// Close removes a buffer.
func (e *Editor) Close(id host.BufferID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.buffers[id]; !ok {
		return host.NewCallError("Close", id, host.ErrUnknownBuffer)
	}
	delete(e.buffers, id)
	for i, other := range e.order {
		if other == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// Buffers returns the open buffer identifiers in opening order.
func (e *Editor) Buffers() []host.BufferID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]host.BufferID(nil), e.order...)
}

// Name returns the name a buffer was opened with.
func (e *Editor) Name(id host.BufferID) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if b, ok := e.buffers[id]; ok {
		return b.name
	}
	return ""
}

// SetText replaces a buffer's text, clamping the cursor, viewport and
// selection to the new line count.
func (e *Editor) SetText(id host.BufferID, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.get("SetText", id)
	if err != nil {
		return err
	}
	b.lines = splitLines(text)
	last := len(b.lines) - 1
	b.curLine = min(b.curLine, last)
	b.top = min(b.top, last)
	if !b.block.IsEmpty() && b.block.EndLine() > last {
		b.block = host.NoBlock
	}
	return nil
}

// Resize changes the viewport size.
func (e *Editor) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if width > 0 {
		e.width = width
	}
	if height > 0 {
		e.height = height
	}
	for _, b := range e.buffers {
		e.scrollToCursor(b)
	}
}

// Window returns the viewport size.
func (e *Editor) Window() (width, height int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.width, e.height
}

func (e *Editor) get(op string, id host.BufferID) (*buffer, error) {
	b, ok := e.buffers[id]
	if !ok {
		return nil, host.NewCallError(op, id, host.ErrUnknownBuffer)
	}
	return b, nil
}

// splitLines normalizes line endings and splits text into lines. A trailing
// newline does not start an extra line; an empty text is one empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
