package beans

import "github.com/alecthomas/participle/v2/lexer"

// beansLexer tokenizes .beans files. Whitespace and comments are elided by the parser.
var beansLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`, Action: nil},
		{Name: "LineComment", Pattern: `(?://|#)[^\r\n]*`, Action: nil},

		{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},

		// "[]" is a single token so array suffixes cannot be split by whitespace.
		{Name: "Array", Pattern: `\[\]`},

		{Name: "Punct", Pattern: `[{}():,.]`},

		{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	},
})
