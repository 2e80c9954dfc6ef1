package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"go.lsp.dev/protocol"

	"github.com/rlch/beancomplete"
)

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri protocol.DocumentURI) string {
	u, err := url.Parse(string(uri))
	if err != nil {
		// Fallback: strip file:// prefix
		return strings.TrimPrefix(string(uri), "file://")
	}

	if u.Scheme == "file" {
		return u.Path
	}

	return string(uri)
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) protocol.DocumentURI {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}

	return protocol.DocumentURI("file://" + filepath.ToSlash(path))
}

// clampPosition converts an LSP position to a (line, column) inside buf. LSP characters
// count UTF-16 code units, buffer columns count runes.
func clampPosition(buf *beancomplete.StringBuffer, pos protocol.Position) (int, int) {
	line := min(int(pos.Line), buf.LineCount()-1)

	units := 0
	for col := range buf.LineLength(line) {
		if units >= int(pos.Character) {
			return line, col
		}

		units += utf16.RuneLen(buf.CharAt(line, col))
	}

	return line, buf.LineLength(line)
}

// character converts a rune column on line to UTF-16 code units.
func character(buf *beancomplete.StringBuffer, line, col int) uint32 {
	units := 0
	for c := range min(col, buf.LineLength(line)) {
		units += utf16.RuneLen(buf.CharAt(line, c))
	}

	return uint32(units) //nolint:gosec // G115: line lengths are small
}

// identifierAt returns the start and end columns of the identifier touching col, or
// ok=false when there is none.
func identifierAt(buf *beancomplete.StringBuffer, line, col int) (start, end int, ok bool) {
	start, end = col, col

	for start > 0 && beancomplete.IsIdentifierChar(buf.CharAt(line, start-1)) {
		start--
	}

	for end < buf.LineLength(line) && beancomplete.IsIdentifierChar(buf.CharAt(line, end)) {
		end++
	}

	return start, end, start < end
}

// lineRange is the range between two rune columns of a line of buf.
func lineRange(buf *beancomplete.StringBuffer, line, start, end int) protocol.Range {
	l := uint32(line) //nolint:gosec // G115: buffer positions are small

	return protocol.Range{
		Start: protocol.Position{Line: l, Character: character(buf, line, start)},
		End:   protocol.Position{Line: l, Character: character(buf, line, end)},
	}
}

func rangePtr(r protocol.Range) *protocol.Range {
	return &r
}
