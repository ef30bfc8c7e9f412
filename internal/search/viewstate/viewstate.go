package viewstate

import (
	"github.com/dshills/quicksearch/internal/host"
)

// ViewState is a restorable snapshot of a buffer's visible state.
type ViewState struct {
	CurLine int
	CurCol  int
	TopLine int
	LeftPos int
	Block   host.Block
}

// Position returns the cursor and viewport part of the snapshot.
func (v ViewState) Position() host.Position {
	return host.Position{Line: v.CurLine, Col: v.CurCol, TopLine: v.TopLine, LeftPos: v.LeftPos}
}

// Snapshot reads the current view of buffer id.
func Snapshot(h host.Host, id host.BufferID) (ViewState, error) {
	info, err := h.GetInfo(id)
	if err != nil {
		return ViewState{}, err
	}
	v := ViewState{
		CurLine: info.CurLine,
		CurCol:  info.CurCol,
		TopLine: info.TopLine,
		LeftPos: info.LeftPos,
		Block:   host.NoBlock,
	}
	if info.BlockType == host.BlockNone {
		return v, nil
	}

	blk, err := blockExtent(h, id, info)
	if err != nil {
		return ViewState{}, err
	}
	v.Block = blk
	return v, nil
}

// blockExtent walks from the block's first line to its last: for a stream
// block the first line reporting a selection end, for a column block the
// last consecutive line with a selection. A stream selection running to the
// end of the buffer ends at the end of the last line.
func blockExtent(h host.Host, id host.BufferID, info host.Info) (host.Block, error) {
	first, err := h.GetLine(id, info.BlockStartLine)
	if err != nil {
		return host.Block{}, err
	}

	last := first
	for last.Number+1 < info.TotalLines {
		if info.BlockType == host.BlockStream && last.SelEnd != -1 {
			break
		}
		next, err := h.GetLine(id, last.Number+1)
		if err != nil {
			return host.Block{}, err
		}
		if info.BlockType == host.BlockColumn && next.SelStart == -1 {
			break
		}
		last = next
	}
	end := last.SelEnd
	if end == -1 {
		end = last.Len()
	}

	start := max(first.SelStart, 0)
	return host.Block{
		Type:      info.BlockType,
		StartLine: info.BlockStartLine,
		StartCol:  start,
		Height:    last.Number - info.BlockStartLine + 1,
		Width:     end - start,
	}, nil
}

// RestorePosition moves the cursor and viewport back to v without touching
// the selection.
func RestorePosition(h host.Host, id host.BufferID, v ViewState) error {
	return h.SetPosition(id, v.Position())
}

// RestoreSelection reapplies the selection recorded in v, clearing the
// selection if v had none.
func RestoreSelection(h host.Host, id host.BufferID, v ViewState) error {
	if v.Block.IsEmpty() {
		return h.ClearSelection(id)
	}
	return h.SetSelection(id, v.Block)
}

// RestoreBoth restores the selection, then the position.
func RestoreBoth(h host.Host, id host.BufferID, v ViewState) error {
	if err := RestoreSelection(h, id, v); err != nil {
		return err
	}
	return RestorePosition(h, id, v)
}
