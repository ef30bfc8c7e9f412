package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/host/memhost"
	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/search/match"
)

const sample = "alpha beta\ngamma alpha\ndelta"

func newSession(t *testing.T, ed *memhost.Editor, id host.BufferID, dir match.Direction) *Session {
	t.Helper()
	s, err := New(ed, id, dir, DefaultOptions())
	require.NoError(t, err)
	return s
}

func typeText(t *testing.T, s *Session, text string) {
	t.Helper()
	for _, r := range text {
		consumed, err := s.Handle(input.Char(r))
		require.NoError(t, err)
		require.True(t, consumed)
	}
}

func press(t *testing.T, s *Session, k key.Key, mods key.Modifier) bool {
	t.Helper()
	consumed, err := s.Handle(input.Special(k, mods))
	require.NoError(t, err)
	return consumed
}

func cursor(t *testing.T, ed *memhost.Editor, id host.BufferID) (int, int) {
	t.Helper()
	info, err := ed.GetInfo(id)
	require.NoError(t, err)
	return info.CurLine, info.CurCol
}

func TestNewClearsSelection(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	require.NoError(t, ed.SetSelection(id, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 0, Height: 1, Width: 5}))

	s := newSession(t, ed, id, match.Forward)

	assert.True(t, ed.Selection(id).IsEmpty())
	assert.Equal(t, CollectingStart, s.State())
	assert.Equal(t, match.Anchor{Line: 0, Col: 0}, s.Anchor(SlotStart))
	assert.Equal(t, match.NoMatch, s.Anchor(SlotEnd))
}

func TestForwardRangeSelection(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "alpha")
	assert.Equal(t, match.Anchor{Line: 0, Col: 0, Len: 5}, s.Anchor(SlotStart))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 0, Height: 1, Width: 5}, ed.Selection(id))
	line, col := cursor(t, ed, id)
	assert.Equal(t, 0, line)
	assert.Equal(t, 5, col)
	assert.Equal(t, "/alpha", ed.Title(id))

	assert.True(t, press(t, s, key.KeyTab, key.ModNone))
	assert.Equal(t, CollectingEnd, s.State())
	assert.Equal(t, "/alpha/", ed.Title(id))

	typeText(t, s, "alpha")
	assert.Equal(t, match.Anchor{Line: 1, Col: 6, Len: 5}, s.Anchor(SlotEnd))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 0, Height: 2, Width: 11}, ed.Selection(id))
	line, col = cursor(t, ed, id)
	assert.Equal(t, 1, line)
	assert.Equal(t, 11, col)
	assert.Equal(t, "/alpha/alpha", ed.Title(id))
}

func TestNotFoundRollsBack(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "zzz")

	assert.Equal(t, match.Anchor{Line: 0, Col: 0}, s.Anchor(SlotStart))
	assert.True(t, ed.Selection(id).IsEmpty())
	line, col := cursor(t, ed, id)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)
	assert.Equal(t, "/zzz (not found)", ed.Title(id))
}

func TestNotFoundKeepsPreviousMatch(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "gamma")
	typeText(t, s, "x")

	assert.Equal(t, match.Anchor{Line: 1, Col: 0, Len: 5}, s.Anchor(SlotStart))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 1, StartCol: 0, Height: 1, Width: 5}, ed.Selection(id))
	line, col := cursor(t, ed, id)
	assert.Equal(t, 1, line)
	assert.Equal(t, 5, col)
	assert.Equal(t, "/gammax (not found)", ed.Title(id))

	assert.True(t, press(t, s, key.KeyBackspace, key.ModNone))
	assert.Equal(t, "/gamma", ed.Title(id))
}

func TestBackwardRepeatAtTop(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	require.NoError(t, ed.SetPosition(id, host.At(2, 5)))
	s := newSession(t, ed, id, match.Backward)

	typeText(t, s, "delta")
	assert.Equal(t, match.Anchor{Line: 2, Col: 0, Len: 5}, s.Anchor(SlotStart))
	line, col := cursor(t, ed, id)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)
	assert.Equal(t, "?delta", ed.Title(id))

	assert.True(t, press(t, s, key.KeyF3, key.ModShift))
	assert.Equal(t, match.Anchor{Line: 2, Col: 0, Len: 5}, s.Anchor(SlotStart))
	line, col = cursor(t, ed, id)
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)
	assert.Equal(t, "?delta (not found)", ed.Title(id))
}

func TestRepeatForward(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "alpha")
	assert.True(t, press(t, s, key.KeyF3, key.ModNone))
	assert.Equal(t, match.Anchor{Line: 1, Col: 6, Len: 5}, s.Anchor(SlotStart))

	assert.True(t, press(t, s, key.KeyF3, key.ModNone))
	assert.Equal(t, match.Anchor{Line: 1, Col: 6, Len: 5}, s.Anchor(SlotStart))
	assert.Equal(t, "/alpha (not found)", ed.Title(id))

	assert.True(t, press(t, s, key.KeyF3, key.ModShift))
	assert.Equal(t, match.Anchor{Line: 0, Col: 0, Len: 5}, s.Anchor(SlotStart))
	line, col := cursor(t, ed, id)
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)
}

func TestEscapeRestoresOriginalView(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	orig := host.Block{Type: host.BlockColumn, StartLine: 0, StartCol: 1, Height: 2, Width: 3}
	require.NoError(t, ed.SetSelection(id, orig))
	require.NoError(t, ed.SetPosition(id, host.At(0, 2)))
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "gam")
	press(t, s, key.KeyTab, key.ModNone)
	typeText(t, s, "del")
	press(t, s, key.KeyBackspace, key.ModNone)
	press(t, s, key.KeyF3, key.ModNone)

	assert.True(t, press(t, s, key.KeyEscape, key.ModNone))
	assert.Equal(t, Terminated, s.State())
	assert.Equal(t, orig, ed.Selection(id))
	line, col := cursor(t, ed, id)
	assert.Equal(t, 0, line)
	assert.Equal(t, 2, col)
	assert.Empty(t, ed.Title(id))
}

func TestEscapeRestoresViewport(t *testing.T) {
	ed := memhost.New(memhost.WithWindow(10, 2))
	id := ed.Open("alpha\nbeta\ngamma\ndelta\nfar away needle")
	require.NoError(t, ed.SetPosition(id, host.At(1, 2)))
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "needle")
	info, err := ed.GetInfo(id)
	require.NoError(t, err)
	assert.Equal(t, 3, info.TopLine, "match scrolled the view down")
	assert.Equal(t, 6, info.LeftPos, "match scrolled the view right")

	assert.True(t, press(t, s, key.KeyEscape, key.ModNone))
	info, err = ed.GetInfo(id)
	require.NoError(t, err)
	assert.Equal(t, 1, info.CurLine)
	assert.Equal(t, 2, info.CurCol)
	assert.Equal(t, 0, info.TopLine)
	assert.Equal(t, 0, info.LeftPos)
	assert.True(t, ed.Selection(id).IsEmpty())
}

func TestEnterKeepsSelection(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "beta")
	assert.True(t, press(t, s, key.KeyEnter, key.ModNone))

	assert.Equal(t, Terminated, s.State())
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 6, Height: 1, Width: 4}, ed.Selection(id))
	assert.Empty(t, ed.Title(id))

	_, err := s.Handle(input.Char('x'))
	assert.ErrorIs(t, err, ErrTerminated)
}

func TestTabBackDropsEndSlot(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "alpha")
	press(t, s, key.KeyTab, key.ModNone)
	typeText(t, s, "delta")
	require.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 0, Height: 3, Width: 5}, ed.Selection(id))

	assert.True(t, press(t, s, key.KeyTab, key.ModNone))
	assert.Equal(t, CollectingStart, s.State())
	assert.Empty(t, s.Pattern(SlotEnd))
	assert.Equal(t, match.NoMatch, s.Anchor(SlotEnd))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 0, Height: 1, Width: 5}, ed.Selection(id))
	line, col := cursor(t, ed, id)
	assert.Equal(t, 0, line)
	assert.Equal(t, 5, col)
	assert.Equal(t, "/alpha", ed.Title(id))

	typeText(t, s, " b")
	assert.Equal(t, match.Anchor{Line: 0, Col: 0, Len: 7}, s.Anchor(SlotStart))
}

func TestEndBeforeStartIsNotFound(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "gamma alpha")
	press(t, s, key.KeyTab, key.ModNone)
	typeText(t, s, "beta")

	assert.Equal(t, match.NoMatch, s.Anchor(SlotEnd))
	assert.Equal(t, "/gamma alpha/beta (not found)", ed.Title(id))

	press(t, s, key.KeyF3, key.ModShift)
	assert.Equal(t, match.NoMatch, s.Anchor(SlotEnd))
	assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 1, StartCol: 0, Height: 1, Width: 11}, ed.Selection(id))
}

func TestEmptyPatternResets(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	require.NoError(t, ed.SetPosition(id, host.At(0, 3)))
	s := newSession(t, ed, id, match.Forward)

	assert.True(t, press(t, s, key.KeyBackspace, key.ModNone))
	assert.Empty(t, s.Pattern(SlotStart))

	typeText(t, s, "d")
	assert.Equal(t, match.Anchor{Line: 2, Col: 0, Len: 1}, s.Anchor(SlotStart))
	press(t, s, key.KeyBackspace, key.ModNone)

	assert.Equal(t, match.Anchor{Line: 0, Col: 3}, s.Anchor(SlotStart))
	assert.True(t, ed.Selection(id).IsEmpty())
	line, col := cursor(t, ed, id)
	assert.Equal(t, 0, line)
	assert.Equal(t, 3, col)
	assert.Equal(t, "/", ed.Title(id))
}

func TestPasteReplaysCharacters(t *testing.T) {
	ed := memhost.New(memhost.WithClipboard(func() (string, error) {
		return "gam\tma\x7f", nil
	}))
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	consumed, err := s.Handle(input.KeyDown(key.NewRuneEvent('v', key.ModCtrl)))
	require.NoError(t, err)
	assert.True(t, consumed)

	assert.Equal(t, "gamma", s.Pattern(SlotStart))
	assert.Equal(t, match.Anchor{Line: 1, Col: 0, Len: 5}, s.Anchor(SlotStart))
}

func TestPasteShiftInsert(t *testing.T) {
	ed := memhost.New(memhost.WithClipboard(func() (string, error) { return "beta", nil }))
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	assert.True(t, press(t, s, key.KeyInsert, key.ModShift))
	assert.Equal(t, match.Anchor{Line: 0, Col: 6, Len: 4}, s.Anchor(SlotStart))
}

func TestPasteClipboardError(t *testing.T) {
	boom := errors.New("no clipboard")
	ed := memhost.New(memhost.WithClipboard(func() (string, error) { return "", boom }))
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)

	_, err := s.Handle(input.KeyDown(key.NewRuneEvent('v', key.ModCtrl)))
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, host.ErrSystemCall)
}

func TestIgnoredEvents(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Forward)
	typeText(t, s, "beta")

	events := []input.Event{
		input.KeyUp(key.NewRuneEvent('x', key.ModNone)),
		input.Special(key.KeyShift, key.ModShift),
		input.Special(key.KeyCtrl, key.ModCtrl),
		input.MouseEvent(input.Mouse{X: 3, Y: 1}),
		{Kind: input.KindFocus},
		{Kind: input.KindOther},
	}
	for _, ev := range events {
		consumed, err := s.Handle(ev)
		require.NoError(t, err)
		assert.True(t, consumed, ev.String())
	}
	assert.Equal(t, "beta", s.Pattern(SlotStart))
	assert.Equal(t, CollectingStart, s.State())
}

func TestUnhandledInputTerminates(t *testing.T) {
	tests := []struct {
		name string
		ev   input.Event
	}{
		{"arrow", input.Special(key.KeyDown, key.ModNone)},
		{"ctrl letter", input.KeyDown(key.NewRuneEvent('a', key.ModCtrl))},
		{"shift tab", input.Special(key.KeyTab, key.ModShift)},
		{"mouse click", input.MouseEvent(input.Mouse{X: 1, Y: 1, Buttons: input.ButtonLeft})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := memhost.New()
			id := ed.Open(sample)
			s := newSession(t, ed, id, match.Forward)
			typeText(t, s, "beta")

			consumed, err := s.Handle(tt.ev)
			require.NoError(t, err)
			assert.False(t, consumed)
			assert.Equal(t, Terminated, s.State())
			assert.Empty(t, ed.Title(id))
			assert.Equal(t, host.Block{Type: host.BlockStream, StartLine: 0, StartCol: 6, Height: 1, Width: 4}, ed.Selection(id))
		})
	}
}

func TestAltGrCharacterIsTyped(t *testing.T) {
	ed := memhost.New()
	id := ed.Open("price: 10€\ntotal")
	s := newSession(t, ed, id, match.Forward)

	consumed, err := s.Handle(input.KeyDown(key.NewRuneEvent('€', key.ModAltGr)))
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, match.Anchor{Line: 0, Col: 9, Len: 1}, s.Anchor(SlotStart))
}

func TestColumnSelectionKeepsType(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	require.NoError(t, ed.SetSelection(id, host.Block{Type: host.BlockColumn, StartLine: 2, StartCol: 0, Height: 1, Width: 2}))
	s := newSession(t, ed, id, match.Forward)

	typeText(t, s, "beta")
	press(t, s, key.KeyTab, key.ModNone)
	typeText(t, s, "gamma")

	assert.Equal(t, host.Block{Type: host.BlockColumn, StartLine: 0, StartCol: 5, Height: 2, Width: 1}, ed.Selection(id))
}

func TestPromptShownOnFirstEvent(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	s := newSession(t, ed, id, match.Backward)
	s.SetNotice(" (busy)")

	consumed, err := s.Handle(input.MouseEvent(input.Mouse{}))
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, "? (busy)", ed.Title(id))
	assert.Positive(t, ed.Redraws(id))

	typeText(t, s, "a")
	assert.Equal(t, "?a (not found)", ed.Title(id))
}

type failingLines struct {
	*memhost.Editor
	err error
}

func (f failingLines) GetLine(id host.BufferID, n int) (host.Line, error) {
	return host.Line{}, host.NewCallError("GetLine", id, f.err)
}

func TestHostErrorsPropagate(t *testing.T) {
	ed := memhost.New()
	id := ed.Open(sample)
	boom := errors.New("read failed")
	s, err := New(failingLines{ed, boom}, id, match.Forward, DefaultOptions())
	require.NoError(t, err)

	_, err = s.Handle(input.Char('a'))
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, host.ErrSystemCall)
}

func TestNewUnknownBuffer(t *testing.T) {
	ed := memhost.New()
	_, err := New(ed, "missing", match.Forward, DefaultOptions())
	assert.ErrorIs(t, err, host.ErrUnknownBuffer)
}
