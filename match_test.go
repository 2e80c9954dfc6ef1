package beancomplete_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/beancomplete"
)

func TestPrefixMatcher(t *testing.T) {
	t.Parallel()

	assert.True(t, beancomplete.PrefixMatcher("get", "getFriend"))
	assert.True(t, beancomplete.PrefixMatcher("GET", "getFriend"))
	assert.True(t, beancomplete.PrefixMatcher("", "anything"))
	assert.False(t, beancomplete.PrefixMatcher("friend", "getFriend"))
}

func TestFuzzyMatcher(t *testing.T) {
	t.Parallel()

	assert.True(t, beancomplete.FuzzyMatcher("gf", "getFriend"))
	assert.True(t, beancomplete.FuzzyMatcher("GF", "getFriend"))
	assert.False(t, beancomplete.FuzzyMatcher("fg", "getFriend"))
}

func TestMatcherByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "prefix", "Fuzzy"} {
		m, err := beancomplete.MatcherByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, m)
	}

	_, err := beancomplete.MatcherByName("regex")
	assert.True(t, errors.Is(err, beancomplete.ErrUnknownMatcher))
}
