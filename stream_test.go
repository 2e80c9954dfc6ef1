package beancomplete_test

import (
	"errors"
	"testing"

	"github.com/rlch/beancomplete"
)

func TestBackwardStream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		line     int
		col      int
		opts     []beancomplete.StreamOption
		expected string
	}{
		{
			name:     "single line",
			text:     "abc def",
			line:     0,
			col:      5,
			expected: "d cba",
		},
		{
			name:     "crosses lines",
			text:     "ab\ncd\nef",
			line:     2,
			col:      1,
			expected: "e\ndc\nba",
		},
		{
			name:     "empty buffer at origin",
			text:     "",
			line:     0,
			col:      0,
			expected: "",
		},
		{
			name:     "empty buffer with wrap",
			text:     "",
			line:     0,
			col:      0,
			opts:     []beancomplete.StreamOption{beancomplete.WithWrap()},
			expected: "",
		},
		{
			name:     "empty lines emit newlines",
			text:     "a\n\n",
			line:     2,
			col:      0,
			expected: "\n\na",
		},
		{
			name:     "max lines stops at line start",
			text:     "ab\ncd",
			line:     1,
			col:      2,
			opts:     []beancomplete.StreamOption{beancomplete.WithMaxLines(1)},
			expected: "dc",
		},
		{
			name:     "max lines two",
			text:     "ab\ncd\nef",
			line:     2,
			col:      2,
			opts:     []beancomplete.StreamOption{beancomplete.WithMaxLines(2)},
			expected: "fe\ndc",
		},
		{
			name:     "wrap continues from the last line",
			text:     "ab\ncd\nef",
			line:     1,
			col:      1,
			opts:     []beancomplete.StreamOption{beancomplete.WithWrap()},
			expected: "c\nba\nfe\nd",
		},
		{
			name:     "wrap stops before revisiting the start",
			text:     "abc",
			line:     0,
			col:      1,
			opts:     []beancomplete.StreamOption{beancomplete.WithWrap()},
			expected: "a\ncb",
		},
		{
			name:     "wrap with cursor at line end",
			text:     "ab\ncd",
			line:     0,
			col:      2,
			opts:     []beancomplete.StreamOption{beancomplete.WithWrap()},
			expected: "ba\ndc",
		},
		{
			name:     "wrap bounded by max lines",
			text:     "ab\ncd\nef",
			line:     0,
			col:      1,
			opts:     []beancomplete.StreamOption{beancomplete.WithWrap(), beancomplete.WithMaxLines(2)},
			expected: "a\nfe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := beancomplete.NewStringBuffer(tt.text)
			s := streamAt(t, buf, tt.line, tt.col, tt.opts...)

			got := drain(s)
			if got != tt.expected {
				t.Errorf("stream = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBackwardStream_PeekDoesNotConsume(t *testing.T) {
	t.Parallel()

	s := streamAt(t, beancomplete.NewStringBuffer("xy"), 0, 2)

	for range 3 {
		r, ok := s.Peek()
		if !ok || r != 'y' {
			t.Fatalf("Peek() = %q, %v; want 'y', true", r, ok)
		}
	}

	if r, _ := s.Next(); r != 'y' {
		t.Errorf("Next() = %q, want 'y'", r)
	}

	if r, _ := s.Next(); r != 'x' {
		t.Errorf("Next() = %q, want 'x'", r)
	}

	if _, ok := s.Peek(); ok {
		t.Error("Peek() after end should report false")
	}

	if _, ok := s.Next(); ok {
		t.Error("Next() after end should report false")
	}
}

func TestBackwardStream_Reproducible(t *testing.T) {
	t.Parallel()

	buf := beancomplete.NewStringBuffer("foo.bar(baz)\n  qux.")

	first := drain(streamAt(t, buf, 1, 6, beancomplete.WithWrap()))
	second := drain(streamAt(t, buf, 1, 6, beancomplete.WithWrap()))

	if first != second {
		t.Errorf("streams differ: %q vs %q", first, second)
	}
}

func TestBackwardStream_InvalidStart(t *testing.T) {
	t.Parallel()

	buf := beancomplete.NewStringBuffer("abc")

	for _, pos := range [][2]int{{-1, 0}, {1, 0}, {0, 4}, {0, -1}} {
		_, err := beancomplete.NewBackwardStream(buf, pos[0], pos[1])
		if !errors.Is(err, beancomplete.ErrInvalidArgument) {
			t.Errorf("NewBackwardStream(%d, %d) error = %v, want ErrInvalidArgument", pos[0], pos[1], err)
		}
	}
}

func TestStringBuffer_Offsets(t *testing.T) {
	t.Parallel()

	buf := beancomplete.NewStringBuffer("ab\r\ncdé\n")

	if got := buf.LineCount(); got != 3 {
		t.Fatalf("LineCount() = %d, want 3", got)
	}

	if got := buf.Line(0); got != "ab" {
		t.Errorf("Line(0) = %q, want %q", got, "ab")
	}

	if got := buf.LineLength(1); got != 3 {
		t.Errorf("LineLength(1) = %d, want 3", got)
	}

	if got := buf.CharAt(1, 2); got != 'é' {
		t.Errorf("CharAt(1, 2) = %q, want 'é'", got)
	}

	if got := buf.Offset(1, 1); got != 4 {
		t.Errorf("Offset(1, 1) = %d, want 4", got)
	}

	line, col := buf.Position(4)
	if line != 1 || col != 1 {
		t.Errorf("Position(4) = %d:%d, want 1:1", line, col)
	}
}
