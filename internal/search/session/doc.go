// Package session implements one buffer's incremental search.
//
// A Session starts in the Start slot. Every typed character extends the
// active slot's pattern and searches again from the position saved when the
// slot became active, selecting the match and moving the cursor past it.
// Tab switches to the End slot, whose match extends the selection into a
// range from the Start match to the End match; Tab again drops the End slot.
// Enter keeps the selection, Escape restores the buffer exactly as it was
// before the session began.
//
// A failed search leaves the last good match selected, returns the cursor
// to where it was before the keystroke and shows a "not found" suffix in the
// prompt.
//
// Sessions are not safe for concurrent use; hosts call Handle from their
// single input-processing path.
package session
