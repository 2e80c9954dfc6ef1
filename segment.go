package beancomplete

import (
	"strings"
	"unicode"
)

// Segment accumulates one dot-separated component of a member-access chain. Characters are
// prepended because the chain is read from right to left, and bracket and quote balance is
// tracked as they arrive.
type Segment struct {
	// rev holds the text in reverse order.
	rev []rune

	parens   int
	brackets int
	singles  int
	doubles  int

	// brokenQuote is set when a newline arrives inside an open quote.
	brokenQuote bool
}

// NewSegment returns a segment holding text, as if each character had been prepended from
// the right.
func NewSegment(text string) *Segment {
	s := &Segment{}

	runes := []rune(text)
	for i := len(runes) - 1; i >= 0; i-- {
		s.Prepend(runes[i])
	}

	return s
}

// Prepend adds ch to the front of the segment. Identifier characters are dropped while the
// segment is unbalanced so that arguments and indices do not leak into its value.
func (s *Segment) Prepend(ch rune) {
	if IsIdentifierChar(ch) && !s.IsValid() {
		return
	}

	s.rev = append(s.rev, ch)

	switch ch {
	case '(':
		s.parens--
	case ')':
		if s.parens >= 0 {
			s.parens++
		}
	case '[':
		s.brackets--
	case ']':
		if s.brackets >= 0 {
			s.brackets++
		}
	case '\'':
		s.singles ^= 1
	case '"':
		s.doubles ^= 1
	case '\n':
		if s.singles != 0 || s.doubles != 0 {
			s.brokenQuote = true
		}
	}
}

// IsValid reports whether every bracket and quote in the segment is balanced.
func (s *Segment) IsValid() bool {
	return s.parens == 0 && s.brackets == 0 && s.singles == 0 && s.doubles == 0 && !s.brokenQuote
}

// IsDefinitelyInvalid reports whether no further prepended text can balance the segment.
// Once true it stays true.
func (s *Segment) IsDefinitelyInvalid() bool {
	return s.parens < 0 || s.brackets < 0 || s.brokenQuote
}

// Text returns the raw accumulated text.
func (s *Segment) Text() string {
	out := make([]rune, len(s.rev))
	for i, r := range s.rev {
		out[len(s.rev)-1-i] = r
	}

	return string(out)
}

// Value returns the identifier characters of a valid segment, or "" for an invalid one.
func (s *Segment) Value() string {
	if !s.IsValid() {
		return ""
	}

	var b strings.Builder
	for i := len(s.rev) - 1; i >= 0; i-- {
		if IsIdentifierChar(s.rev[i]) {
			b.WriteRune(s.rev[i])
		}
	}

	return b.String()
}

// IsArrayElement reports whether the segment ends with an index access.
func (s *Segment) IsArrayElement() bool {
	return len(s.rev) > 0 && s.rev[0] == ']'
}

// IsRawArray reports whether the segment is an array literal such as [] or [1, 2].
func (s *Segment) IsRawArray() bool {
	return s.IsValid() && s.IsArrayElement() && s.Value() == ""
}

// IsEmpty reports whether the segment has no text other than whitespace.
func (s *Segment) IsEmpty() bool {
	for _, r := range s.rev {
		if !unicode.IsSpace(r) {
			return false
		}
	}

	return true
}

// delimitedBySpace reports whether whitespace at the front of the segment separates it from
// a preceding word ending in before, as in "return foo" or "new Foo".
func (s *Segment) delimitedBySpace(before rune) bool {
	n := len(s.rev)
	if n == 0 || !unicode.IsSpace(s.rev[n-1]) {
		return false
	}

	if !IsIdentifierChar(before) && !isClosing(before) {
		return false
	}

	for i := n - 1; i >= 0; i-- {
		if !unicode.IsSpace(s.rev[i]) {
			return IsIdentifierChar(s.rev[i])
		}
	}

	return false
}

func (s *Segment) clone() *Segment {
	c := *s
	c.rev = append([]rune(nil), s.rev...)

	return &c
}
