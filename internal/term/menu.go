package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Menu shows a modal list of items and returns the chosen index, or -1 if
// the menu was dismissed. An "&" in an item marks its hotkey.
func (s *Screen) Menu(title string, items []string) int {
	focus := 0
	for {
		s.drawMenu(title, items, focus)

		ev := s.screen.PollEvent()
		switch e := ev.(type) {
		case nil:
			return -1
		case *tcell.EventResize:
			s.mu.Lock()
			s.screen.Sync()
			s.mu.Unlock()
		case *tcell.EventKey:
			switch e.Key() {
			case tcell.KeyEscape:
				return -1
			case tcell.KeyEnter:
				return focus
			case tcell.KeyUp:
				focus = (focus + len(items) - 1) % len(items)
			case tcell.KeyDown, tcell.KeyTab:
				focus = (focus + 1) % len(items)
			case tcell.KeyRune:
				if i := hotkeyIndex(items, e.Rune()); i >= 0 {
					return i
				}
			}
		}
	}
}

func (s *Screen) drawMenu(title string, items []string, focus int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	labels := make([]string, len(items))
	inner := runewidth.StringWidth(title)
	for i, item := range items {
		labels[i] = strings.Replace(item, "&", "", 1)
		inner = max(inner, runewidth.StringWidth(labels[i]))
	}
	inner += 2

	width, height := s.screen.Size()
	boxW, boxH := inner+2, len(items)+2
	x0, y0 := max((width-boxW)/2, 0), max((height-boxH)/2, 0)

	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			s.screen.SetContent(x, y, ' ', nil, s.styles.Menu)
		}
	}
	s.drawString(x0+(boxW-runewidth.StringWidth(title))/2, y0, title, s.styles.Menu)
	for i, label := range labels {
		style := s.styles.Menu
		if i == focus {
			style = s.styles.MenuFocus
			for x := x0 + 1; x < x0+boxW-1; x++ {
				s.screen.SetContent(x, y0+1+i, ' ', nil, style)
			}
		}
		s.drawString(x0+2, y0+1+i, label, style)
	}
	s.screen.HideCursor()
	s.screen.Show()
}

// hotkeyIndex returns the item whose "&"-marked letter is r.
func hotkeyIndex(items []string, r rune) int {
	for i, item := range items {
		idx := strings.IndexByte(item, '&')
		if idx < 0 || idx+1 >= len(item) {
			continue
		}
		hot := []rune(item[idx+1:])[0]
		if strings.EqualFold(string(hot), string(r)) {
			return i
		}
	}
	return -1
}
