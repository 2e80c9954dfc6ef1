// Package snippet renders the text an editor inserts for a chosen completion entry.
package snippet

import (
	"strconv"
	"strings"

	"github.com/rlch/beancomplete"
)

// Insert returns the plain text to insert for e and the cursor position within it, in runes.
// Methods insert their call parentheses with the cursor between them when they take
// arguments and after them otherwise; every other entry inserts its name.
func Insert(e beancomplete.Entry) (string, int) {
	name := []rune(e.Name)
	if e.Kind != beancomplete.KindMethod {
		return e.Name, len(name)
	}

	text := e.Name + "()"
	if e.ParamCount() > 0 {
		return text, len(name) + 1
	}

	return text, len(name) + 2
}

// Snippet returns e in LSP snippet syntax, with a tab stop per method parameter and the
// final cursor after the call, e.g. "find(${1:name})$0".
func Snippet(e beancomplete.Entry) string {
	if e.Kind != beancomplete.KindMethod {
		return escape(e.Name)
	}

	var b strings.Builder

	b.WriteString(escape(e.Name))
	b.WriteByte('(')

	for i, p := range e.Params {
		if i > 0 {
			b.WriteString(", ")
		}

		placeholder := p.Name
		if placeholder == "" {
			placeholder = "arg" + strconv.Itoa(i+1)
		}

		b.WriteString("${")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte(':')
		b.WriteString(escape(placeholder))
		b.WriteByte('}')
	}

	b.WriteString(")$0")

	return b.String()
}

var escaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

// escape protects snippet metacharacters. Bean identifiers may contain '$'.
func escape(s string) string {
	return escaper.Replace(s)
}
