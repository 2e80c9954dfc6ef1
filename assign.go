package beancomplete

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// ParseLine reads one assignment statement ending at the stream's position, such as
// "var x = foo.bar()" or "a = b = Foo", and binds every assigned variable to the right-hand
// side. Lines that are not simple assignments leave the bindings untouched. It reports
// whether any variable was bound.
func (a *Autocompleter) ParseLine(stream CharStream) bool {
	for {
		ch, ok := stream.Peek()
		if !ok || (!unicode.IsSpace(ch) && ch != ';') {
			break
		}

		stream.Next()
	}

	rhs := a.Expression(stream)
	if rhs.RebuildAsVariable() == "" {
		return false
	}

	skipSpace(stream)

	if !skipNew(stream) {
		return false
	}

	if ch, ok := stream.Next(); !ok || ch != '=' {
		return false
	}

	// "==", "!=", "<=", "+=" and friends are not plain assignments.
	if ch, ok := stream.Peek(); ok && strings.ContainsRune("=!<>+-*/%&|^~?:", ch) {
		return false
	}

	var rev []rune

	for {
		ch, ok := stream.Peek()
		if !ok || strings.ContainsRune("\n;{}()", ch) {
			break
		}

		stream.Next()
		rev = append(rev, ch)
	}

	bound := false

	for _, side := range strings.Split(reverse(rev), "=") {
		for _, name := range assignedNames(side) {
			a.Bind(name, rhs)
			bound = true
		}
	}

	if !bound {
		a.logger.Debug("Assignment without a variable", zap.String("rhs", rhs.String()))
	}

	return bound
}

// skipNew consumes a "new" keyword between the assignment and its right-hand side. It
// reports false when some other word is there, which means the line is not an assignment.
func skipNew(stream CharStream) bool {
	ch, ok := stream.Peek()
	if !ok || !IsIdentifierChar(ch) {
		return true
	}

	if readPrefix(stream) != "new" {
		return false
	}

	skipSpace(stream)

	return true
}

// assignedNames returns the names an assignment target binds: its trailing identifier and,
// for member targets such as "this.p", the dotted path as well. Index targets such as
// "a[0]" end in no identifier and bind nothing.
func assignedNames(s string) []string {
	runes := []rune(strings.TrimRightFunc(s, unicode.IsSpace))

	start := len(runes)
	for start > 0 && IsIdentifierChar(runes[start-1]) {
		start--
	}

	if start == len(runes) || !IsIdentifierStart(runes[start]) {
		return nil
	}

	names := []string{string(runes[start:])}

	path := start
	for path > 0 && (IsIdentifierChar(runes[path-1]) || runes[path-1] == '.') {
		path--
	}

	if dotted := strings.TrimLeft(string(runes[path:]), "."); dotted != names[0] {
		names = append(names, dotted)
	}

	return names
}

// ScanLines runs ParseLine over lines [from, to) of buf, top to bottom, so that later
// assignments overwrite earlier ones.
func (a *Autocompleter) ScanLines(buf Buffer, from, to int) {
	from = max(from, 0)
	to = min(to, buf.LineCount())

	for line := from; line < to; line++ {
		stream, err := NewBackwardStream(buf, line, buf.LineLength(line), WithMaxLines(1))
		if err != nil {
			continue
		}

		a.ParseLine(stream)
	}
}
