package beancomplete

import "fmt"

// CharStream produces characters one at a time. Peek returns the next character without
// consuming it; Next consumes it. Both report false once the stream is exhausted.
type CharStream interface {
	Peek() (rune, bool)
	Next() (rune, bool)
}

// StreamOption configures a BackwardStream.
type StreamOption func(*BackwardStream)

// WithMaxLines bounds the number of distinct lines the stream visits, including the start
// line. Zero means unbounded.
func WithMaxLines(n int) StreamOption {
	return func(s *BackwardStream) {
		s.maxLines = n
	}
}

// WithWrap makes the stream continue from the last line of the buffer when it reaches the
// start, until it would revisit the start position.
func WithWrap() StreamOption {
	return func(s *BackwardStream) {
		s.wrap = true
	}
}

// BackwardStream walks a Buffer right-to-left from a start position, emitting a synthetic
// '\n' at every line boundary it crosses. It reads the buffer lazily.
type BackwardStream struct {
	buf Buffer

	startLine int
	startCol  int

	// line and col address the slot after the next character: the next character is
	// (line, col-1).
	line int
	col  int

	maxLines int
	visited  int
	wrap     bool
	wrapped  bool

	peeked  rune
	hasPeek bool
	done    bool
}

// NewBackwardStream creates a stream over the characters before (line, col).
func NewBackwardStream(buf Buffer, line, col int, opts ...StreamOption) (*BackwardStream, error) {
	s := &BackwardStream{
		buf:       buf,
		startLine: line,
		startCol:  col,
		line:      line,
		col:       col,
		visited:   1,
	}

	for _, opt := range opts {
		opt(s)
	}

	if buf.LineCount() == 0 {
		s.done = true

		return s, nil
	}

	if line < 0 || line >= buf.LineCount() || col < 0 || col > buf.LineLength(line) {
		return nil, fmt.Errorf("%w: position %d:%d outside buffer", ErrInvalidArgument, line, col)
	}

	if s.maxLines < 0 {
		return nil, fmt.Errorf("%w: negative max lines %d", ErrInvalidArgument, s.maxLines)
	}

	return s, nil
}

// Peek returns the next character without consuming it.
func (s *BackwardStream) Peek() (rune, bool) {
	if !s.hasPeek {
		s.peeked, s.hasPeek = s.advance()
	}

	return s.peeked, s.hasPeek
}

// Next consumes and returns the next character.
func (s *BackwardStream) Next() (rune, bool) {
	if s.hasPeek {
		s.hasPeek = false

		return s.peeked, true
	}

	return s.advance()
}

func (s *BackwardStream) advance() (rune, bool) {
	if s.done {
		return 0, false
	}

	if s.col > 0 {
		if s.revisiting(s.line, s.col) {
			s.done = true

			return 0, false
		}

		s.col--

		return s.buf.CharAt(s.line, s.col), true
	}

	// Crossing to the previous line.
	prev := s.line - 1
	if prev < 0 {
		if !s.wrap || s.wrapped {
			s.done = true

			return 0, false
		}

		s.wrapped = true
		prev = s.buf.LineCount() - 1
	}

	if s.maxLines > 0 && s.visited >= s.maxLines {
		s.done = true

		return 0, false
	}

	length := s.buf.LineLength(prev)
	if s.revisiting(prev, length) {
		s.done = true

		return 0, false
	}

	s.visited++
	s.line = prev
	s.col = length

	return '\n', true
}

// revisiting reports whether emitting the character before (line, col) would produce a
// character already produced before the stream wrapped.
func (s *BackwardStream) revisiting(line, col int) bool {
	return s.wrapped && line == s.startLine && col <= s.startCol
}
