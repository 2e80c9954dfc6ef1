package beancomplete

import "strings"

// Buffer gives line/column access to an in-memory document. Lines and columns are zero-based
// and columns count runes.
type Buffer interface {
	LineCount() int
	LineLength(line int) int
	CharAt(line, col int) rune
}

// StringBuffer is a Buffer over a fixed snapshot of text.
type StringBuffer struct {
	lines [][]rune
}

// NewStringBuffer splits text on newlines. The result always has at least one line.
func NewStringBuffer(text string) *StringBuffer {
	raw := strings.Split(text, "\n")
	lines := make([][]rune, len(raw))

	for i, l := range raw {
		lines[i] = []rune(strings.TrimSuffix(l, "\r"))
	}

	return &StringBuffer{lines: lines}
}

// LineCount returns the number of lines.
func (b *StringBuffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the number of runes on line, or 0 when line is out of range.
func (b *StringBuffer) LineLength(line int) int {
	if line < 0 || line >= len(b.lines) {
		return 0
	}

	return len(b.lines[line])
}

// CharAt returns the rune at (line, col), or 0 when out of range.
func (b *StringBuffer) CharAt(line, col int) rune {
	if line < 0 || line >= len(b.lines) || col < 0 || col >= len(b.lines[line]) {
		return 0
	}

	return b.lines[line][col]
}

// Line returns the text of a line.
func (b *StringBuffer) Line(line int) string {
	if line < 0 || line >= len(b.lines) {
		return ""
	}

	return string(b.lines[line])
}

// Offset converts (line, col) to an absolute rune offset, counting one rune per newline.
func (b *StringBuffer) Offset(line, col int) int {
	off := 0
	for i := 0; i < line && i < len(b.lines); i++ {
		off += len(b.lines[i]) + 1
	}

	return off + col
}

// Position converts an absolute rune offset back to (line, col). Offsets past the end clamp
// to the end of the last line.
func (b *StringBuffer) Position(offset int) (int, int) {
	for i, l := range b.lines {
		if offset <= len(l) {
			return i, max(offset, 0)
		}

		offset -= len(l) + 1
	}

	last := len(b.lines) - 1

	return last, len(b.lines[last])
}
