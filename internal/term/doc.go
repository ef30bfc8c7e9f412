// Package term draws buffers on a terminal and turns terminal events into
// input events, using tcell.
//
// The bottom row is the status line: the buffer's title indicator (or the
// latest message) on the left, file name and cursor position on the right.
// Every other row shows one buffer line. Cell widths come from
// go-runewidth so wide characters take two cells.
package term
