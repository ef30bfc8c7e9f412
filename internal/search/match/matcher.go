package match

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Direction is the scan direction.
type Direction uint8

const (
	// Forward scans toward the end of the buffer.
	Forward Direction = iota
	// Backward scans toward the start of the buffer.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// LineSource gives random access to buffer lines.
type LineSource interface {
	// LineCount returns the number of lines.
	LineCount() (int, error)
	// LineText returns the text of line n.
	LineText(n int) (string, error)
}

// Point is a line and rune column.
type Point struct {
	Line int
	Col  int
}

// Matcher finds literal patterns ignoring case.
type Matcher struct {
	tag language.Tag
}

// New creates a matcher folding case with the rules of tag.
func New(tag language.Tag) *Matcher {
	return &Matcher{tag: tag}
}

// Language returns the language whose casing rules the matcher applies.
func (m *Matcher) Language() language.Tag {
	return m.tag
}

// Find scans src for pattern starting at from. Forward scans begin at
// from.Col on from.Line and return the first occurrence starting at or after
// it; backward scans return the last occurrence ending at or before from.Col.
// Lines are visited one at a time toward the end (or start) of the buffer;
// the scan never wraps. An empty pattern never matches.
//
// The boolean result is false when nothing matched; err reports a failed read.
func (m *Matcher) Find(src LineSource, pattern string, from Point, dir Direction) (Anchor, bool, error) {
	if pattern == "" || from.Line < 0 {
		return NoMatch, false, nil
	}
	total, err := src.LineCount()
	if err != nil {
		return NoMatch, false, err
	}
	if from.Line >= total {
		return NoMatch, false, nil
	}

	caser := cases.Upper(m.tag)
	pat := m.fold(caser, pattern)

	if dir == Backward {
		return m.findBackward(src, caser, pat, from)
	}
	return m.findForward(src, caser, pat, from, total)
}

func (m *Matcher) findForward(src LineSource, caser cases.Caser, pat []rune, from Point, total int) (Anchor, bool, error) {
	start := max(from.Col, 0)
	for line := from.Line; line < total; line++ {
		text, err := src.LineText(line)
		if err != nil {
			return NoMatch, false, err
		}
		folded := m.fold(caser, text)
		if start <= len(folded) {
			if i := index(folded[start:], pat); i >= 0 {
				return Anchor{Line: line, Col: start + i, Len: len(pat)}, true, nil
			}
		}
		start = 0
	}
	return NoMatch, false, nil
}

func (m *Matcher) findBackward(src LineSource, caser cases.Caser, pat []rune, from Point) (Anchor, bool, error) {
	limit := from.Col
	for line := from.Line; line >= 0; line-- {
		text, err := src.LineText(line)
		if err != nil {
			return NoMatch, false, err
		}
		folded := m.fold(caser, text)
		end := len(folded)
		if line == from.Line {
			end = min(max(limit, 0), end)
		}
		if i := lastIndex(folded[:end], pat); i >= 0 {
			return Anchor{Line: line, Col: i, Len: len(pat)}, true, nil
		}
	}
	return NoMatch, false, nil
}

// fold uppercases s one rune at a time. A rune whose uppercase form is not
// a single rune (German ß becomes SS) keeps its simple uppercase mapping so
// the result stays aligned with the original columns.
func (m *Matcher) fold(caser cases.Caser, s string) []rune {
	out := make([]rune, 0, len(s))
	var buf [utf8.UTFMax]byte
	for _, r := range s {
		if r < utf8.RuneSelf && !m.dottedI(r) {
			if 'a' <= r && r <= 'z' {
				r -= 'a' - 'A'
			}
			out = append(out, r)
			continue
		}
		n := utf8.EncodeRune(buf[:], r)
		up := caser.String(string(buf[:n]))
		if ur, size := utf8.DecodeRuneInString(up); size == len(up) && ur != utf8.RuneError {
			out = append(out, ur)
		} else {
			out = append(out, unicode.ToUpper(r))
		}
	}
	return out
}

// dottedI reports whether an ASCII i needs the language's own casing
// (Turkish and Azeri map i to İ), so it goes through the caser.
func (m *Matcher) dottedI(r rune) bool {
	if r != 'i' {
		return false
	}
	base, _ := m.tag.Base()
	switch base.String() {
	case "tr", "az":
		return true
	}
	return false
}

// index returns the first position of pat in s, or -1.
func index(s, pat []rune) int {
	n := len(pat)
	for i := 0; i+n <= len(s); i++ {
		if equal(s[i:i+n], pat) {
			return i
		}
	}
	return -1
}

// lastIndex returns the last position of pat in s, or -1.
func lastIndex(s, pat []rune) int {
	n := len(pat)
	for i := len(s) - n; i >= 0; i-- {
		if equal(s[i:i+n], pat) {
			return i
		}
	}
	return -1
}

func equal(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
