// Package viewstate captures and restores what a user sees of a buffer: the
// cursor, the viewport and the selection block.
//
// The host reports only the first line of a selection, so Snapshot walks
// lines from there until one reports where the selection ends.
package viewstate
