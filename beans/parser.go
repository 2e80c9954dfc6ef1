package beans

import (
	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[File](
	participle.Lexer(beansLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace", "BlockComment", "LineComment"),
	participle.UseLookahead(2),
)

// Parse parses a .beans file. Errors carry the file name and position of the failure.
func Parse(filename string, data []byte) (*File, error) {
	return parser.ParseBytes(filename, data)
}
