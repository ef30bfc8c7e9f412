// Package match implements the literal, case-insensitive line scanner used by
// quick search.
//
// A Matcher scans lines supplied by a LineSource forward or backward from a
// starting point and returns the Anchor of the nearest occurrence. Pattern
// and line text are uppercased rune by rune with the casing rules of the
// configured language, so column offsets in the folded text equal those in
// the original. Nothing is cached between calls: the buffer may change
// between keystrokes.
package match
