package beancomplete_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rlch/beancomplete"
)

// fakeRegistry is an in-memory TypeRegistry for tests.
type fakeRegistry struct {
	members  map[string][]beancomplete.Entry
	topLevel map[string]bool
	globals  []beancomplete.Entry
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		members:  make(map[string][]beancomplete.Entry),
		topLevel: make(map[string]bool),
	}
}

// addType registers a type with its members. Member kinds default to fields.
func (r *fakeRegistry) addType(name string, topLevel bool, members ...beancomplete.Entry) *fakeRegistry {
	for i := range members {
		members[i].Owner = name
	}

	r.members[name] = beancomplete.SortEntries(members)
	r.topLevel[name] = topLevel

	return r
}

func (r *fakeRegistry) IsTypeName(name string) bool {
	_, ok := r.members[name]

	return ok
}

func (r *fakeRegistry) IsTopLevelTypeName(name string) bool {
	return r.topLevel[name]
}

func (r *fakeRegistry) EntriesForType(name string) []beancomplete.Entry {
	if name == beancomplete.TopLevel {
		out := append([]beancomplete.Entry(nil), r.globals...)
		for typ, top := range r.topLevel {
			if top {
				out = append(out, beancomplete.Entry{Name: typ, TypeName: typ, Kind: beancomplete.KindType})
			}
		}

		return beancomplete.SortEntries(out)
	}

	return r.members[name]
}

func field(name, typ string) beancomplete.Entry {
	return beancomplete.Entry{Name: name, TypeName: typ, Kind: beancomplete.KindField}
}

func method(name, ret string, params ...string) beancomplete.Entry {
	e := beancomplete.Entry{Name: name, TypeName: ret, Kind: beancomplete.KindMethod}
	for _, p := range params {
		e.Params = append(e.Params, beancomplete.Param{Name: p})
	}

	return e
}

// cursor removes the ^ marker from text and returns the buffer with the marker's position.
func cursor(t *testing.T, text string) (*beancomplete.StringBuffer, int, int) {
	t.Helper()

	idx := strings.Index(text, "^")
	if idx < 0 {
		t.Fatalf("no cursor marker in %q", text)
	}

	buf := beancomplete.NewStringBuffer(text[:idx] + text[idx+1:])
	line, col := buf.Position(utf8.RuneCountInString(text[:idx]))

	return buf, line, col
}

func streamAt(t *testing.T, buf beancomplete.Buffer, line, col int, opts ...beancomplete.StreamOption) *beancomplete.BackwardStream {
	t.Helper()

	s, err := beancomplete.NewBackwardStream(buf, line, col, opts...)
	if err != nil {
		t.Fatalf("NewBackwardStream(%d, %d) error: %v", line, col, err)
	}

	return s
}

// drain reads a stream to exhaustion.
func drain(s beancomplete.CharStream) string {
	var out []rune

	for {
		r, ok := s.Next()
		if !ok {
			return string(out)
		}

		out = append(out, r)
	}
}
