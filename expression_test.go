package beancomplete_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/beancomplete"
)

func segmentTexts(e *beancomplete.Expression) []string {
	segs := e.Segments()

	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Text()
	}

	return out
}

func TestParseExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "foo", want: []string{"foo"}},
		{name: "chain", input: "a.b.c", want: []string{"a", "b", "c"}},
		{name: "call arguments dropped", input: "foo.bar(1, x).baz", want: []string{"foo", "bar(, )", "baz"}},
		{name: "index dropped", input: "list[i].name", want: []string{"list[]", "name"}},
		{name: "trailing dot", input: "a.", want: []string{"a", ""}},
		{name: "stops at assignment", input: "x = foo.bar", want: []string{" foo", "bar"}},
		{name: "stops at keyword", input: "return foo.bar", want: []string{" foo", "bar"}},
		{name: "stops at comma", input: "f(a, b.c", want: []string{" b", "c"}},
		{name: "stops at open paren", input: "if (a.b", want: []string{"a", "b"}},
		{name: "dot inside call kept", input: "get(x.y).z", want: []string{"get(.)", "z"}},
		{name: "previous line", input: "foo\n.bar", want: []string{"foo\n", "bar"}},
		{name: "empty", input: "", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := segmentTexts(beancomplete.ParseExpression(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseExpression(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestExpression_RebuildAsVariable(t *testing.T) {
	t.Parallel()

	for _, chain := range []string{"a", "a.b", "foo.bar.baz", "$x.y_1"} {
		assert.Equal(t, chain, beancomplete.ParseExpression(chain).RebuildAsVariable())
	}

	assert.Equal(t, "foo.bar", beancomplete.ParseExpression("x =  foo.bar").RebuildAsVariable())
	assert.Equal(t, "foo.bar(, )", beancomplete.ParseExpression("foo.bar(a, b)").RebuildAsVariable())
}

func TestExpression_NeverEmpty(t *testing.T) {
	t.Parallel()

	e := beancomplete.NewExpression()
	assert.Equal(t, 1, e.Len())
	assert.True(t, e.Segment(0).IsEmpty())
}

func TestExpression_Slice(t *testing.T) {
	t.Parallel()

	e := beancomplete.ParseExpression("a.b.c")

	got, err := e.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "b.c", got.RebuildAsVariable())

	_, err = e.Slice(2, 4)
	assert.True(t, errors.Is(err, beancomplete.ErrInvalidArgument))

	_, err = e.Slice(2, 1)
	assert.True(t, errors.Is(err, beancomplete.ErrInvalidArgument))
}

func TestExpression_Substitute(t *testing.T) {
	t.Parallel()

	e := beancomplete.ParseExpression("a.b.c")
	sub := beancomplete.ParseExpression("x.y")

	tests := []struct {
		from, to int
		want     string
	}{
		{from: 0, to: 1, want: "x.y.b.c"},
		{from: 0, to: 2, want: "x.y.c"},
		{from: 2, to: 3, want: "a.b.x.y"},
		{from: 1, to: 1, want: "a.x.y.b.c"},
	}

	for _, tt := range tests {
		got, err := e.Substitute(tt.from, tt.to, sub)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.RebuildAsVariable())
	}

	assert.Equal(t, "a.b.c", e.RebuildAsVariable(), "receiver must not change")

	for _, bad := range [][2]int{{-1, 1}, {0, 4}, {2, 1}} {
		_, err := e.Substitute(bad[0], bad[1], sub)
		assert.True(t, errors.Is(err, beancomplete.ErrInvalidArgument), "Substitute(%d, %d)", bad[0], bad[1])
	}
}

func TestExpression_MakeSubstitutions(t *testing.T) {
	t.Parallel()

	known := map[string]*beancomplete.Expression{
		"a":     beancomplete.ParseExpression("Bar"),
		"a.b":   beancomplete.ParseExpression("Foo.make()"),
		"Foo.q": beancomplete.ParseExpression("Baz"),
	}

	t.Run("longest prefix wins", func(t *testing.T) {
		t.Parallel()

		got := beancomplete.ParseExpression("a.b.c").MakeSubstitutions(10, known)
		assert.Equal(t, "Foo.make().c", got.RebuildAsVariable())
	})

	t.Run("shorter prefix", func(t *testing.T) {
		t.Parallel()

		got := beancomplete.ParseExpression("a.x").MakeSubstitutions(10, known)
		assert.Equal(t, "Bar.x", got.RebuildAsVariable())
	})

	t.Run("no match is unchanged", func(t *testing.T) {
		t.Parallel()

		e := beancomplete.ParseExpression("z.b")
		got := e.MakeSubstitutions(10, known)
		assert.True(t, e.Equal(got))
	})

	t.Run("idempotent once settled", func(t *testing.T) {
		t.Parallel()

		once := beancomplete.ParseExpression("a.b.c").MakeSubstitutions(10, known)
		twice := once.MakeSubstitutions(10, known)
		assert.True(t, once.Equal(twice))
	})

	t.Run("bounded rounds", func(t *testing.T) {
		t.Parallel()

		growing := map[string]*beancomplete.Expression{
			"a": beancomplete.ParseExpression("a.next"),
		}

		got := beancomplete.ParseExpression("a.c").MakeSubstitutions(3, growing)
		assert.Equal(t, "a.next.next.next.c", got.RebuildAsVariable())
	})

	t.Run("cycle terminates", func(t *testing.T) {
		t.Parallel()

		cycle := map[string]*beancomplete.Expression{
			"a": beancomplete.ParseExpression("b"),
			"b": beancomplete.ParseExpression("a"),
		}

		got := beancomplete.ParseExpression("a").MakeSubstitutions(5, cycle)
		assert.Equal(t, "b", got.RebuildAsVariable())
	})
}
