package match

import "fmt"

// Anchor is a matched span: Len runes starting at (Line, Col).
type Anchor struct {
	Line int
	Col  int
	Len  int
}

// NoMatch is the anchor of a slot that has not matched anything.
var NoMatch = Anchor{Line: -1}

// IsValid reports whether a is a real span rather than NoMatch.
func (a Anchor) IsValid() bool {
	return a.Line >= 0
}

// End returns the column just past the span.
func (a Anchor) End() int {
	return a.Col + a.Len
}

// Compare orders anchors lexicographically by (Line, Col, Len).
// It returns -1 if a < b, 0 if a == b, 1 if a > b.
func (a Anchor) Compare(b Anchor) int {
	switch {
	case a.Line != b.Line:
		return cmpInt(a.Line, b.Line)
	case a.Col != b.Col:
		return cmpInt(a.Col, b.Col)
	default:
		return cmpInt(a.Len, b.Len)
	}
}

// Before returns true if a orders before b.
func (a Anchor) Before(b Anchor) bool {
	return a.Compare(b) < 0
}

// String returns a human-readable representation of the anchor.
func (a Anchor) String() string {
	if !a.IsValid() {
		return "(no match)"
	}
	return fmt.Sprintf("(%d:%d+%d)", a.Line, a.Col, a.Len)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
