package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/input"
)

// Styles are the colors used for drawing.
type Styles struct {
	Text      tcell.Style
	Selection tcell.Style
	Status    tcell.Style
	Menu      tcell.Style
	MenuFocus tcell.Style
}

// DefaultStyles returns reverse-video selection on the default colors.
func DefaultStyles() Styles {
	return Styles{
		Text:      tcell.StyleDefault,
		Selection: tcell.StyleDefault.Reverse(true),
		Status:    tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite),
		Menu:      tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack),
		MenuFocus: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite).Bold(true),
	}
}

// View is everything needed to draw one buffer.
type View struct {
	// Lines are the visible lines, the first being TopLine.
	Lines      []host.Line
	TopLine    int
	LeftPos    int
	CurLine    int
	CurCol     int
	TotalLines int

	Name string
	// Title is the buffer's title indicator; Message shows when it is empty.
	Title   string
	Message string
}

// Screen is a tcell terminal.
type Screen struct {
	mu     sync.Mutex
	screen tcell.Screen
	styles Styles
}

// New opens the terminal.
func New() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen)
}

// NewWithScreen initializes screen, e.g. a tcell.SimulationScreen.
func NewWithScreen(screen tcell.Screen) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnableFocus()
	return &Screen{screen: screen, styles: DefaultStyles()}, nil
}

// SetStyles replaces the drawing styles.
func (s *Screen) SetStyles(styles Styles) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.styles = styles
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Fini()
}

// Size returns the terminal size in cells.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.Size()
}

// TextSize returns the size of the text area above the status line.
func (s *Screen) TextSize() (int, int) {
	w, h := s.Size()
	return w, max(h-1, 1)
}

// PollEvent blocks for the next input event. It returns false once the
// screen has been closed.
func (s *Screen) PollEvent() (input.Event, bool) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return input.Event{}, false
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.mu.Lock()
			s.screen.Sync()
			s.mu.Unlock()
		}
		if converted, ok := ConvertEvent(ev); ok {
			return converted, true
		}
	}
}

// Interrupt wakes up PollEvent with a KindOther event.
func (s *Screen) Interrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Draw paints v and the status line.
func (s *Screen) Draw(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
	width, height := s.screen.Size()
	rows := max(height-1, 0)

	for y := 0; y < rows && y < len(v.Lines); y++ {
		s.drawLine(y, width, v.Lines[y], v.LeftPos)
	}
	s.drawStatus(height-1, width, v)

	cy := v.CurLine - v.TopLine
	if cy >= 0 && cy < rows && cy < len(v.Lines) {
		cx := cellOffset(v.Lines[cy].Text, v.LeftPos, v.CurCol)
		if cx >= 0 && cx < width {
			s.screen.ShowCursor(cx, cy)
		} else {
			s.screen.HideCursor()
		}
	} else {
		s.screen.HideCursor()
	}
	s.screen.Show()
}

func (s *Screen) drawLine(y, width int, line host.Line, left int) {
	x, col := 0, 0
	for _, r := range line.Text {
		if col < left {
			col++
			continue
		}
		r, w := displayRune(r)
		if x+w > width {
			return
		}
		style := s.styles.Text
		if selected(line, col) {
			style = s.styles.Selection
		}
		s.screen.SetContent(x, y, r, nil, style)
		x += w
		col++
	}
	// Mark a selection that runs past the end of the line.
	if line.SelStart != -1 && line.SelEnd == -1 && x < width && col >= line.SelStart {
		s.screen.SetContent(x, y, ' ', nil, s.styles.Selection)
	}
}

func (s *Screen) drawStatus(y, width int, v View) {
	if y < 0 {
		return
	}
	for x := 0; x < width; x++ {
		s.screen.SetContent(x, y, ' ', nil, s.styles.Status)
	}

	right := fmt.Sprintf(" %s %d:%d ", v.Name, v.CurLine+1, v.CurCol+1)
	rightWidth := runewidth.StringWidth(right)
	left := v.Title
	if left == "" {
		left = v.Message
	}
	left = runewidth.Truncate(left, max(width-rightWidth-1, 0), "…")

	s.drawString(0, y, left, s.styles.Status)
	if rightWidth < width {
		s.drawString(width-rightWidth, y, right, s.styles.Status)
	}
}

func (s *Screen) drawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		r, w := displayRune(r)
		s.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// displayRune maps r to what is drawn and the cells it takes. Tabs and
// control characters take one cell.
func displayRune(r rune) (rune, int) {
	if r == '\t' || r < ' ' || r == 0x7f {
		return ' ', 1
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = 1
	}
	return r, w
}

func selected(line host.Line, col int) bool {
	return line.SelStart != -1 && col >= line.SelStart && (line.SelEnd == -1 || col < line.SelEnd)
}

// cellOffset returns the screen x of column col when the view starts at
// column left. Columns past the end of the text take one cell each.
func cellOffset(text string, left, col int) int {
	if col < left {
		return -1
	}
	x, c := 0, 0
	for _, r := range text {
		if c >= col {
			return x
		}
		if c >= left {
			_, w := displayRune(r)
			x += w
		}
		c++
	}
	return x + col - max(c, left)
}
