package beancomplete

import (
	"fmt"
	"strings"
)

// Expression is a member-access chain such as a.b().c[0], held as segments in source order.
type Expression struct {
	segments []*Segment
}

// NewExpression returns an expression over segs. With no segments it holds one empty
// segment, so an expression is never empty.
func NewExpression(segs ...*Segment) *Expression {
	if len(segs) == 0 {
		return &Expression{segments: []*Segment{{}}}
	}

	return &Expression{segments: append([]*Segment(nil), segs...)}
}

// ParseExpression runs the reverse parse over text and returns the chain that ends at its
// last character.
func ParseExpression(text string) *Expression {
	buf := NewStringBuffer(text)
	last := buf.LineCount() - 1

	stream, err := NewBackwardStream(buf, last, buf.LineLength(last))
	if err != nil {
		return NewExpression()
	}

	return scanExpression(stream)
}

// Push inserts seg at the front. Segments are found right to left, so pushing to the front
// keeps source order.
func (e *Expression) Push(seg *Segment) {
	e.segments = append([]*Segment{seg}, e.segments...)
}

// Len returns the number of segments.
func (e *Expression) Len() int {
	return len(e.segments)
}

// Segment returns the i-th segment in source order.
func (e *Expression) Segment(i int) *Segment {
	return e.segments[i]
}

// Segments returns the segments in source order.
func (e *Expression) Segments() []*Segment {
	return append([]*Segment(nil), e.segments...)
}

// Slice returns the segments in [from, to) as a new expression.
func (e *Expression) Slice(from, to int) (*Expression, error) {
	if from < 0 || from > to || to > len(e.segments) {
		return nil, fmt.Errorf("%w: slice [%d:%d] of %d segments", ErrInvalidArgument, from, to, len(e.segments))
	}

	return NewExpression(e.segments[from:to]...), nil
}

// RebuildAsVariable joins the segment texts with dots, the form used as a variable key.
func (e *Expression) RebuildAsVariable() string {
	return rebuild(e.segments)
}

func rebuild(segs []*Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = strings.TrimSpace(s.Text())
	}

	return strings.TrimSpace(strings.Join(parts, "."))
}

// String returns the chain as it would read in source.
func (e *Expression) String() string {
	return e.RebuildAsVariable()
}

// Substitute returns a new expression with segments [from, to) replaced by sub.
func (e *Expression) Substitute(from, to int, sub *Expression) (*Expression, error) {
	if from < 0 || from > to || to > len(e.segments) {
		return nil, fmt.Errorf("%w: substitute [%d:%d] of %d segments", ErrInvalidArgument, from, to, len(e.segments))
	}

	segs := make([]*Segment, 0, len(e.segments)-(to-from)+sub.Len())
	segs = append(segs, e.segments[:from]...)
	segs = append(segs, sub.segments...)
	segs = append(segs, e.segments[to:]...)

	return NewExpression(segs...), nil
}

// MakeSubstitutions replaces the longest prefix of the chain naming a known variable with
// that variable's expression, and repeats on the result until no prefix matches or
// maxRounds substitutions have been made.
func (e *Expression) MakeSubstitutions(maxRounds int, known map[string]*Expression) *Expression {
	cur := e

	for range maxRounds {
		replaced := false

		for n := cur.Len(); n > 0; n-- {
			sub, ok := known[rebuild(cur.segments[:n])]
			if !ok {
				continue
			}

			next, err := cur.Substitute(0, n, sub)
			if err != nil {
				return cur
			}

			cur = next
			replaced = true

			break
		}

		if !replaced {
			break
		}
	}

	return cur
}

// Equal reports whether both expressions have the same segment texts.
func (e *Expression) Equal(o *Expression) bool {
	if e.Len() != o.Len() {
		return false
	}

	for i := range e.segments {
		if e.segments[i].Text() != o.segments[i].Text() {
			return false
		}
	}

	return true
}
