package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/term"
	"github.com/dshills/quicksearch/internal/watcher"
)

type fakeScreen struct {
	events     []input.Event
	views      []term.View
	menuChoice int
	menuItems  []string
	closed     bool
}

func (s *fakeScreen) PollEvent() (input.Event, bool) {
	if len(s.events) == 0 {
		return input.Event{}, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

func (s *fakeScreen) Draw(v term.View) { s.views = append(s.views, v) }

func (s *fakeScreen) Menu(title string, items []string) int {
	s.menuItems = items
	return s.menuChoice
}

func (s *fakeScreen) TextSize() (int, int) { return 40, 10 }
func (s *fakeScreen) Interrupt()           {}
func (s *fakeScreen) Close()               { s.closed = true }

func (s *fakeScreen) last() term.View { return s.views[len(s.views)-1] }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newApp(t *testing.T, files ...string) (*Application, *fakeScreen) {
	t.Helper()
	t.Setenv("QUICKSEARCH_LOCALE", "en")
	screen := &fakeScreen{}
	a, err := New(Options{
		ConfigPath: filepath.Join(t.TempDir(), "none.toml"),
		Files:      files,
		Screen:     screen,
		Clipboard:  func() (string, error) { return "beta", nil },
		NoWatch:    true,
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, screen
}

func keyPress(k key.Key, mods key.Modifier) input.Event {
	return input.Special(k, mods)
}

func ctrl(r rune) input.Event {
	return input.KeyDown(key.NewRuneEvent(r, key.ModCtrl))
}

func TestSearchThroughViewer(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "alpha beta\ngamma alpha\ndelta\n")
	a, screen := newApp(t, path)
	screen.events = []input.Event{
		ctrl('s'),
		input.Char('a'), input.Char('l'), input.Char('p'),
		keyPress(key.KeyF3, key.ModNone),
		keyPress(key.KeyEnter, key.ModNone),
		ctrl('q'),
	}

	require.NoError(t, a.Run())
	v := screen.last()
	assert.Equal(t, "doc.txt", v.Name)
	assert.Empty(t, v.Title)
	assert.Equal(t, 1, v.CurLine)
	assert.Equal(t, 9, v.CurCol)
	require.Len(t, v.Lines, 3)
	assert.Equal(t, 6, v.Lines[1].SelStart)
	assert.Equal(t, 9, v.Lines[1].SelEnd)
}

func TestTitleShownWhileSearching(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "one two")
	a, screen := newApp(t, path)
	screen.events = []input.Event{ctrl('r'), input.Char('x')}

	require.NoError(t, a.Run())
	assert.Equal(t, "?x (not found)", screen.last().Title)
}

func TestMenuStartsSearch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "one two")
	a, screen := newApp(t, path)
	screen.menuChoice = 0
	screen.events = []input.Event{keyPress(key.KeyF7, key.ModNone), input.Char('t')}

	require.NoError(t, a.Run())
	assert.Equal(t, []string{"Search &forward", "Search &backward"}, screen.menuItems)
	assert.Equal(t, "/t", screen.last().Title)
}

func TestMenuCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "one two")
	a, screen := newApp(t, path)
	screen.menuChoice = -1
	screen.events = []input.Event{keyPress(key.KeyF7, key.ModNone), input.Char('t')}

	require.NoError(t, a.Run())
	assert.Empty(t, screen.last().Title)
}

func TestPasteUsesClipboard(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "alpha beta")
	a, screen := newApp(t, path)
	screen.events = []input.Event{ctrl('s'), ctrl('v')}

	require.NoError(t, a.Run())
	v := screen.last()
	assert.Equal(t, "/beta", v.Title)
	assert.Equal(t, 6, v.Lines[0].SelStart)
	assert.Equal(t, 10, v.Lines[0].SelEnd)
}

func TestHelpDuringSearch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "alpha")
	a, screen := newApp(t, path)
	screen.events = []input.Event{ctrl('s'), keyPress(key.KeyF1, key.ModNone)}

	require.NoError(t, a.Run())
	assert.Contains(t, screen.last().Message, "Tab: range end")
	assert.True(t, a.reg.Active(a.currentID()))
}

func TestNavigationAndSelection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "abc\ndefgh\nij")
	a, _ := newApp(t, path)
	id := a.currentID()

	require.NoError(t, a.HandleEvent(keyPress(key.KeyDown, key.ModNone)))
	require.NoError(t, a.HandleEvent(keyPress(key.KeyEnd, key.ModNone)))
	info, err := a.editor.GetInfo(id)
	require.NoError(t, err)
	assert.Equal(t, 1, info.CurLine)
	assert.Equal(t, 5, info.CurCol)

	require.NoError(t, a.HandleEvent(keyPress(key.KeyDown, key.ModShift)))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 1, StartCol: 5, Height: 2, Width: -3}, a.editor.Selection(id))

	require.NoError(t, a.HandleEvent(keyPress(key.KeyLeft, key.ModNone)))
	require.NoError(t, a.HandleEvent(keyPress(key.KeyUp, key.ModShift|key.ModAlt)))
	assert.Equal(t, host.Block{Type: host.BlockColumn, StartLine: 1, StartCol: 1, Height: 2, Width: 0}, a.editor.Selection(id))

	require.NoError(t, a.HandleEvent(keyPress(key.KeyEscape, key.ModNone)))
	assert.True(t, a.editor.Selection(id).IsEmpty())
}

func TestBlockBetween(t *testing.T) {
	p := host.At(2, 4)
	q := host.At(0, 1)

	assert.Equal(t, host.NoBlock, blockBetween(host.BlockStream, p, p))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 1, Height: 3, Width: 3}, blockBetween(host.BlockStream, p, q))
	assert.Equal(t, host.Block{Type: host.BlockColumn, StartLine: 0, StartCol: 1, Height: 3, Width: 3}, blockBetween(host.BlockColumn, p, q))
}

func TestSwitchBuffers(t *testing.T) {
	dir := t.TempDir()
	a, screen := newApp(t, writeFile(t, dir, "a.txt", "aaa"), writeFile(t, dir, "b.txt", "bbb"))
	screen.events = []input.Event{ctrl('s'), input.Char('a'), keyPress(key.KeyF6, key.ModNone)}

	require.NoError(t, a.Run())

	// F6 ends the search on a.txt before switching.
	first := a.docs[0].id
	assert.False(t, a.reg.Active(first))
	assert.Empty(t, a.editor.Title(first))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 0, Height: 1, Width: 1}, a.editor.Selection(first))
	assert.Equal(t, 1, a.current)
	assert.Equal(t, "b.txt", screen.last().Name)
}

func TestMissingFiles(t *testing.T) {
	screen := &fakeScreen{}
	_, err := New(Options{
		Files:   []string{filepath.Join(t.TempDir(), "missing.txt")},
		Screen:  screen,
		NoWatch: true,
	})
	assert.ErrorIs(t, err, ErrNoFiles)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScratchBuffer(t *testing.T) {
	a, _ := newApp(t)
	require.Len(t, a.docs, 1)
	assert.Equal(t, "[scratch]", a.editor.Name(a.currentID()))
}

func TestReloadDropsSearch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "old text")
	a, _ := newApp(t, path)
	id := a.currentID()

	require.NoError(t, a.HandleEvent(ctrl('s')))
	require.NoError(t, a.HandleEvent(input.Char('t')))
	require.True(t, a.reg.Active(id))

	writeFile(t, dir, "doc.txt", "new\ncontent")
	a.reload(watcher.Event{Path: a.docs[0].path, Op: watcher.OpWrite})

	assert.False(t, a.reg.Active(id))
	assert.Empty(t, a.editor.Title(id))
	assert.Equal(t, "reloaded doc.txt", a.message)
	line, err := a.editor.GetLine(id, 1)
	require.NoError(t, err)
	assert.Equal(t, "content", line.Text)
}

func TestForwardReloadsStopsAfterRun(t *testing.T) {
	a, _ := newApp(t)
	a.reloads = make(chan watcher.Event, 1)
	a.done = make(chan struct{})

	events := make(chan watcher.Event, 4)
	for i := 0; i < 4; i++ {
		events <- watcher.Event{Path: "doc.txt", Op: watcher.OpWrite}
	}

	finished := make(chan struct{})
	go func() {
		a.forwardReloads(events)
		close(finished)
	}()

	require.Eventually(t, func() bool { return len(a.reloads) == 1 }, time.Second, time.Millisecond)
	close(a.done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "forwarder still blocked on a full reload queue")
	}
}

func TestForwardReloadsStopsWhenEventsClose(t *testing.T) {
	a, _ := newApp(t)
	a.reloads = make(chan watcher.Event, 4)
	a.done = make(chan struct{})

	events := make(chan watcher.Event, 1)
	events <- watcher.Event{Path: "doc.txt", Op: watcher.OpWrite}
	close(events)

	a.forwardReloads(events)
	assert.Len(t, a.reloads, 1)
}
