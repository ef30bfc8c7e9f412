package session

import (
	"errors"
	"strings"

	"github.com/dshills/quicksearch/internal/host"
	"github.com/dshills/quicksearch/internal/input"
	"github.com/dshills/quicksearch/internal/input/key"
	"github.com/dshills/quicksearch/internal/logging"
	"github.com/dshills/quicksearch/internal/search/match"
	"github.com/dshills/quicksearch/internal/search/viewstate"
)

// ErrTerminated is returned when a terminated session receives input.
var ErrTerminated = errors.New("search session terminated")

// Slot is a pattern role.
type Slot int

const (
	// SlotStart anchors the beginning of the selection.
	SlotStart Slot = iota
	// SlotEnd anchors the end of a range selection.
	SlotEnd
)

// String returns the slot name.
func (s Slot) String() string {
	if s == SlotEnd {
		return "end"
	}
	return "start"
}

// State is the session's position in its life cycle.
type State uint8

const (
	// CollectingStart edits the Start pattern.
	CollectingStart State = iota
	// CollectingEnd edits the End pattern.
	CollectingEnd
	// Terminated sessions ignore further input.
	Terminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case CollectingStart:
		return "collecting-start"
	case CollectingEnd:
		return "collecting-end"
	default:
		return "terminated"
	}
}

// Session is the incremental search running on one buffer.
type Session struct {
	host host.Host
	id   host.BufferID
	dir  match.Direction
	opts Options
	log  *logging.Logger

	slot       Slot
	terminated bool

	patterns [2][]rune
	anchors  [2]match.Anchor
	views    [2]viewstate.ViewState

	notice string
	shown  bool
}

// New starts a session on buffer id searching in direction dir. The current
// view is saved for Escape and the selection is cleared.
func New(h host.Host, id host.BufferID, dir match.Direction, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	s := &Session{
		host: h,
		id:   id,
		dir:  dir,
		opts: opts,
		log:  opts.Logger.WithComponent("session").WithField("buffer", id),
	}

	v, err := viewstate.Snapshot(h, id)
	if err != nil {
		return nil, err
	}
	if err := viewstate.RestorePosition(h, id, v); err != nil {
		return nil, err
	}
	if err := h.ClearSelection(id); err != nil {
		return nil, err
	}

	s.views[SlotStart] = v
	s.anchors[SlotStart] = s.initialAnchor(SlotStart)
	s.anchors[SlotEnd] = match.NoMatch
	s.log.Debug("started %s search at (%d:%d)", dir, v.CurLine, v.CurCol)
	return s, nil
}

// BufferID returns the buffer the session searches.
func (s *Session) BufferID() host.BufferID { return s.id }

// Direction returns the direction the session was started with.
func (s *Session) Direction() match.Direction { return s.dir }

// State returns the current state.
func (s *Session) State() State {
	switch {
	case s.terminated:
		return Terminated
	case s.slot == SlotEnd:
		return CollectingEnd
	default:
		return CollectingStart
	}
}

// Terminated reports whether the session has ended.
func (s *Session) Terminated() bool { return s.terminated }

// ActiveSlot returns the slot being edited.
func (s *Session) ActiveSlot() Slot { return s.slot }

// Pattern returns the text of a slot's pattern.
func (s *Session) Pattern(slot Slot) string { return string(s.patterns[slot]) }

// Anchor returns the last match of a slot.
func (s *Session) Anchor(slot Slot) match.Anchor { return s.anchors[slot] }

// SetNotice queues msg to be shown once with the next prompt refresh.
func (s *Session) SetNotice(msg string) { s.notice = msg }

// Handle offers ev to the session. It reports whether the event was
// consumed; an unconsumed event ends the session and belongs to the host.
func (s *Session) Handle(ev input.Event) (bool, error) {
	if s.terminated {
		return false, ErrTerminated
	}
	if !s.shown {
		s.shown = true
		if err := s.showPattern(false); err != nil {
			return false, err
		}
	}

	switch ev.Kind {
	case input.KindKey:
		return s.handleKey(ev)
	case input.KindMouse:
		if ev.Mouse.Buttons == input.ButtonNone {
			return true, nil
		}
		return false, s.terminate()
	default:
		return true, nil
	}
}

func (s *Session) handleKey(ev input.Event) (bool, error) {
	if !ev.Down {
		return true, nil
	}
	k := ev.Key
	keys := s.opts.Keys

	switch {
	case k.IsChar():
		s.patterns[s.slot] = append(s.patterns[s.slot], k.Rune)
		return true, s.searchAgain()
	case k.Key.IsModifierOnly():
		return true, nil
	case keys.Paste.Matches(k):
		return true, s.paste()
	case keys.RepeatForward.Matches(k):
		return true, s.repeat(match.Forward)
	case keys.RepeatBackward.Matches(k):
		return true, s.repeat(match.Backward)
	case k.IsPlain(key.KeyBackspace):
		return true, s.backspace()
	case k.IsPlain(key.KeyTab):
		return true, s.toggleSlot()
	case k.IsPlain(key.KeyEscape):
		return true, s.cancel()
	case k.IsPlain(key.KeyEnter):
		s.log.Debug("accepted")
		return true, s.terminate()
	}

	s.log.Debug("rejected %s", ev)
	return false, s.terminate()
}

func (s *Session) backspace() error {
	p := s.patterns[s.slot]
	if len(p) == 0 {
		return nil
	}
	s.patterns[s.slot] = p[:len(p)-1]
	return s.searchAgain()
}

// paste replays the clipboard text as typed characters, so the search
// follows the text as it grows.
func (s *Session) paste() error {
	text, err := s.host.ReadClipboardText()
	if err != nil {
		return err
	}
	for _, r := range text {
		ev := input.Char(r)
		if !ev.Key.IsChar() {
			continue
		}
		if _, err := s.Handle(ev); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) toggleSlot() error {
	if s.slot == SlotStart {
		v, err := viewstate.Snapshot(s.host, s.id)
		if err != nil {
			return err
		}
		if err := viewstate.RestorePosition(s.host, s.id, v); err != nil {
			return err
		}
		s.views[SlotEnd] = v
		s.patterns[SlotEnd] = nil
		s.anchors[SlotEnd] = match.NoMatch
		s.slot = SlotEnd
		s.log.Debug("end slot active")
		return s.showPattern(false)
	}

	s.patterns[SlotEnd] = nil
	s.anchors[SlotEnd] = match.NoMatch
	s.slot = SlotStart
	if err := viewstate.RestoreBoth(s.host, s.id, s.views[SlotEnd]); err != nil {
		return err
	}
	s.log.Debug("end slot dropped")
	return s.showPattern(false)
}

func (s *Session) cancel() error {
	if err := viewstate.RestoreBoth(s.host, s.id, s.views[SlotStart]); err != nil {
		return err
	}
	s.log.Debug("cancelled")
	return s.terminate()
}

func (s *Session) terminate() error {
	s.terminated = true
	if err := s.host.SetTitle(s.id, ""); err != nil {
		return err
	}
	return s.host.Redraw(s.id)
}

// searchAgain reruns the active slot's pattern from the position saved when
// the slot became active.
func (s *Session) searchAgain() error {
	rollback, err := s.position()
	if err != nil {
		return err
	}
	if len(s.patterns[s.slot]) == 0 {
		return s.resetSlot()
	}

	v := s.views[s.slot]
	if err := viewstate.RestorePosition(s.host, s.id, v); err != nil {
		return err
	}
	dir := match.Forward
	if s.slot == SlotStart && s.dir == match.Backward {
		dir = match.Backward
	}
	return s.findNext(match.Point{Line: v.CurLine, Col: v.CurCol}, dir, rollback)
}

// repeat looks for the next occurrence past (or before) the active slot's
// current match.
func (s *Session) repeat(dir match.Direction) error {
	rollback, err := s.position()
	if err != nil {
		return err
	}
	from := match.Point{Line: rollback.Line, Col: rollback.Col}
	if a := s.anchors[s.slot]; a.IsValid() {
		from = match.Point{Line: a.Line, Col: a.Col}
		if dir == match.Forward {
			from.Col = a.End()
		}
	}
	return s.findNext(from, dir, rollback)
}

// findNext searches for the active pattern and either commits the match or
// returns the cursor to rollback and reports "not found". An End match
// ordering before the Start match counts as not found.
func (s *Session) findNext(from match.Point, dir match.Direction, rollback host.Position) error {
	a, found, err := s.opts.Matcher.Find(lines{s.host, s.id}, string(s.patterns[s.slot]), from, dir)
	if err != nil {
		return err
	}
	if found && s.slot == SlotEnd && a.Before(s.anchors[SlotStart]) {
		s.log.Debug("end match %s precedes start %s", a, s.anchors[SlotStart])
		found = false
	}
	if !found {
		if err := s.host.SetPosition(s.id, rollback); err != nil {
			return err
		}
		return s.showPattern(true)
	}

	s.anchors[s.slot] = a
	if err := s.host.SetSelection(s.id, s.selection()); err != nil {
		return err
	}
	col := a.End()
	if dir == match.Backward {
		col = a.Col
	}
	if err := s.host.SetPosition(s.id, host.At(a.Line, col)); err != nil {
		return err
	}
	s.log.WithField("slot", s.slot).Debug("matched %s", a)
	return s.showPattern(false)
}

// resetSlot returns an emptied slot to the state it had when it became
// active.
func (s *Session) resetSlot() error {
	s.anchors[s.slot] = s.initialAnchor(s.slot)
	var err error
	if s.slot == SlotStart {
		err = s.host.ClearSelection(s.id)
	} else {
		err = viewstate.RestoreSelection(s.host, s.id, s.views[SlotEnd])
	}
	if err != nil {
		return err
	}
	if err := viewstate.RestorePosition(s.host, s.id, s.views[s.slot]); err != nil {
		return err
	}
	return s.showPattern(false)
}

func (s *Session) initialAnchor(slot Slot) match.Anchor {
	if slot == SlotEnd {
		return match.NoMatch
	}
	v := s.views[SlotStart]
	return match.Anchor{Line: v.CurLine, Col: v.CurCol}
}

// selection spans from the Start match to the End match (or to the end of
// the Start match while no End match exists), using the original
// selection's block type.
func (s *Session) selection() host.Block {
	typ := s.views[SlotStart].Block.Type
	if typ == host.BlockNone {
		typ = host.BlockStream
	}
	start := s.anchors[SlotStart]
	end := start
	if s.slot == SlotEnd && s.anchors[SlotEnd].IsValid() {
		end = s.anchors[SlotEnd]
	}

	blk := host.Block{
		Type:      typ,
		StartLine: start.Line,
		StartCol:  start.Col,
		Height:    end.Line - start.Line + 1,
		Width:     end.End() - start.Col,
	}
	if typ == host.BlockColumn && blk.Width < 0 {
		blk.StartCol = end.End()
		blk.Width = -blk.Width
	}
	return blk
}

func (s *Session) position() (host.Position, error) {
	info, err := s.host.GetInfo(s.id)
	if err != nil {
		return host.Position{}, err
	}
	return host.Position{Line: info.CurLine, Col: info.CurCol, TopLine: info.TopLine, LeftPos: info.LeftPos}, nil
}

// Prompt returns the title indicator text for the current patterns.
func (s *Session) Prompt() string {
	var b strings.Builder
	if s.dir == match.Backward {
		b.WriteString(s.opts.Prompt.Backward)
	} else {
		b.WriteString(s.opts.Prompt.Forward)
	}
	b.WriteString(string(s.patterns[SlotStart]))
	if s.slot == SlotEnd {
		b.WriteString(s.opts.Prompt.Separator)
		b.WriteString(string(s.patterns[SlotEnd]))
	}
	return b.String()
}

func (s *Session) showPattern(notFound bool) error {
	text := s.Prompt()
	if notFound {
		text += s.opts.Messages.NotFound
	}
	if s.notice != "" {
		text += s.notice
		s.notice = ""
	}
	if err := s.host.SetTitle(s.id, text); err != nil {
		return err
	}
	return s.host.Redraw(s.id)
}

// lines reads buffer lines for the matcher.
type lines struct {
	h  host.Host
	id host.BufferID
}

func (l lines) LineCount() (int, error) {
	info, err := l.h.GetInfo(l.id)
	return info.TotalLines, err
}

func (l lines) LineText(n int) (string, error) {
	line, err := l.h.GetLine(l.id, n)
	return line.Text, err
}
