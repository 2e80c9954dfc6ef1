package filter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/filter"
)

func TestFilter_Keep(t *testing.T) {
	t.Parallel()

	entries := map[string]beancomplete.Entry{
		"plain":      {Name: "name", TypeName: "String", Owner: "Person", Kind: beancomplete.KindField},
		"deprecated": {Name: "age", TypeName: "int", Owner: "Person", Kind: beancomplete.KindMethod, Deprecated: true},
		"private":    {Name: "_id", TypeName: "long", Owner: "Person", Kind: beancomplete.KindField},
		"object":     {Name: "hashCode", TypeName: "int", Owner: "Object", Kind: beancomplete.KindMethod},
		"variadic": {
			Name: "format", Owner: "String", Kind: beancomplete.KindMethod,
			Params: []beancomplete.Param{{Name: "a"}, {Name: "b"}, {Name: "c"}},
		},
	}

	tests := []struct {
		name  string
		exprs []string
		kept  []string
	}{
		{name: "no expressions", exprs: nil, kept: []string{"plain", "deprecated", "private", "object", "variadic"}},
		{name: "deprecated", exprs: []string{"Deprecated"}, kept: []string{"plain", "private", "object", "variadic"}},
		{name: "prefix", exprs: []string{`Name startsWith "_"`}, kept: []string{"plain", "deprecated", "object", "variadic"}},
		{
			name:  "owner and kind",
			exprs: []string{`Owner == "Object" && Kind == "method"`},
			kept:  []string{"plain", "deprecated", "private", "variadic"},
		},
		{name: "params", exprs: []string{"Params > 2"}, kept: []string{"plain", "deprecated", "private", "object"}},
		{
			name:  "any hides",
			exprs: []string{"Deprecated", `Name startsWith "_"`, "  "},
			kept:  []string{"plain", "object", "variadic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := filter.Compile(tt.exprs, nil)
			require.NoError(t, err)

			var kept []string

			for _, key := range []string{"plain", "deprecated", "private", "object", "variadic"} {
				if f.Keep(entries[key]) {
					kept = append(kept, key)
				}
			}

			assert.Equal(t, tt.kept, kept)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{`Name ==`, `Name`, `Unknown == 1`} {
		_, err := filter.Compile([]string{src}, nil)
		require.Error(t, err, src)
		assert.True(t, errors.Is(err, filter.ErrCompile), src)
	}
}

func TestFilter_NilKeepsEverything(t *testing.T) {
	t.Parallel()

	var f *filter.Filter
	assert.True(t, f.Keep(beancomplete.Entry{Name: "x"}))
	assert.Nil(t, f.Option())

	empty, err := filter.Compile(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, empty.Option(), "nothing to hide")
}

func TestFilter_Option(t *testing.T) {
	t.Parallel()

	f, err := filter.Compile([]string{"Deprecated"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())

	reg := registry{
		"Legacy": {
			{Name: "old", TypeName: "int", Deprecated: true},
			{Name: "current", TypeName: "int"},
		},
	}

	a := beancomplete.New(reg, f.Option())

	buf := beancomplete.NewStringBuffer("Legacy.")
	stream, err := beancomplete.NewBackwardStream(buf, 0, 7)
	require.NoError(t, err)

	got, err := a.EntriesForIncompleteString(7, stream)
	require.NoError(t, err)
	assert.Equal(t, []string{"current"}, got.Names())
}

// registry treats every type as top-level.
type registry map[string][]beancomplete.Entry

func (r registry) IsTypeName(name string) bool {
	_, ok := r[name]

	return ok
}

func (r registry) IsTopLevelTypeName(name string) bool {
	return r.IsTypeName(name)
}

func (r registry) EntriesForType(name string) []beancomplete.Entry {
	return r[name]
}
