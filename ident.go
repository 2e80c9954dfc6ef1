package beancomplete

import "unicode"

// IsIdentifierStart reports whether r may begin an identifier.
func IsIdentifierStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

// IsIdentifierChar reports whether r may continue an identifier.
// Digits, combining marks and connector punctuation are only valid after the first character.
func IsIdentifierChar(r rune) bool {
	return IsIdentifierStart(r) ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Pc, r)
}

func isClosing(r rune) bool {
	return r == ')' || r == ']' || r == '}'
}
