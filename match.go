package beancomplete

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matcher decides whether a candidate name matches the prefix being typed.
type Matcher func(prefix, name string) bool

// PrefixMatcher matches names starting with prefix, ignoring case.
func PrefixMatcher(prefix, name string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix))
}

// FuzzyMatcher matches names containing the characters of prefix in order, ignoring case.
func FuzzyMatcher(prefix, name string) bool {
	return fuzzy.MatchFold(prefix, name)
}

// MatcherByName returns the matcher configured by name. The empty name selects the prefix
// matcher.
func MatcherByName(name string) (Matcher, error) {
	switch strings.ToLower(name) {
	case "", "prefix":
		return PrefixMatcher, nil
	case "fuzzy":
		return FuzzyMatcher, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatcher, name)
	}
}
