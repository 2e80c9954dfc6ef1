package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/beans"
)

const testBeans = `toplevel type People {
    method find(name: String): Person
}

type Named {
    field name: String
}

type Person extends Named {
    deprecated field age: int
}
`

func TestCursorPosition(t *testing.T) {
	t.Parallel()

	buf := beancomplete.NewStringBuffer("var p = x\np.na")

	tests := []struct {
		name      string
		line, col int
		wantLine  int
		wantCol   int
		wantErr   bool
	}{
		{name: "defaults to end of buffer", wantLine: 1, wantCol: 4},
		{name: "end of given line", line: 1, wantLine: 0, wantCol: 9},
		{name: "explicit", line: 2, col: 3, wantLine: 1, wantCol: 2},
		{name: "line out of range", line: 3, wantErr: true},
		{name: "column past end", line: 2, col: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, col, err := cursorPosition(buf, tt.line, tt.col)
			if tt.wantErr {
				require.ErrorIs(t, err, beancomplete.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := writeJSON(&buf, beancomplete.Result{Offset: 2, Entries: []beancomplete.Entry{
		{Name: "find", TypeName: "Person", Owner: "People", Kind: beancomplete.KindMethod,
			Params: []beancomplete.Param{{Name: "name", TypeName: "String"}}},
	}})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.InDelta(t, 2, got["offset"], 0)

	entries, ok := got["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)

	entry, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "find", entry["name"])
	assert.Equal(t, "method", entry["kind"])

	buf.Reset()
	require.NoError(t, writeJSON(&buf, beancomplete.Result{}))
	assert.JSONEq(t, `{"offset": 0, "entries": []}`, buf.String())
}

func TestPrintMembers(t *testing.T) {
	t.Parallel()

	b := beans.NewBuilder(zaptest.NewLogger(t))
	require.NoError(t, b.AddSource("people.beans", []byte(testBeans)))

	reg := b.Build()

	var buf bytes.Buffer
	require.NoError(t, printMembers(&buf, reg, "Person"))

	assert.Equal(t, "Person extends Named\n"+
		"  field     age : int  [deprecated]\n"+
		"  field     name : String  (from Named)\n", buf.String())

	require.ErrorIs(t, printMembers(&buf, reg, "Nope"), beancomplete.ErrInvalidArgument)

	buf.Reset()
	printTypes(&buf, reg)
	assert.Contains(t, buf.String(), "toplevel  People")
	assert.Contains(t, buf.String(), "people.beans:9:1")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.beans")
	bad := filepath.Join(dir, "bad.beans")

	require.NoError(t, os.WriteFile(good, []byte(testBeans), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("type {"), 0o600))

	var out bytes.Buffer

	assert.Equal(t, 0, check(&out, []string{good}, zaptest.NewLogger(t)))
	assert.Equal(t, "ok: 3 types in 1 files\n", out.String())

	out.Reset()
	assert.Equal(t, 1, check(&out, []string{good, bad}, zaptest.NewLogger(t)))
	assert.Contains(t, out.String(), bad+": ")
}
