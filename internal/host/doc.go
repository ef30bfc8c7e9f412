// Package host defines the buffer-access interface a host editor exposes to
// the quick search engine.
//
// All calls are synchronous. Positions are 0-indexed; columns count runes.
// A failing call returns a *CallError, which matches ErrSystemCall under
// errors.Is.
//
// Selection geometry follows the editor convention:
//
//   - A stream block starts at (StartLine, StartCol) and ends, exclusive, at
//     (StartLine+Height-1, StartCol+Width). Width may be negative when the
//     block spans lines and ends left of where it started.
//   - A column block covers columns [StartCol, StartCol+Width) on each of
//     Height lines.
package host
