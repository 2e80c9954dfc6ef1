package lsp

import (
	"go.lsp.dev/protocol"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/workspace"
)

// targetKind says what an identifier in a script refers to.
type targetKind int

const (
	targetNone targetKind = iota
	targetMember
	targetGlobal
	targetType
	targetVariable
)

// target is the resolution of the identifier under the cursor.
type target struct {
	kind targetKind
	name string
	rng  protocol.Range

	// entry is set for members and globals.
	entry beancomplete.Entry

	// typeName is the type for targetType and the inferred type for targetVariable.
	typeName string
}

// resolveTarget resolves the identifier at pos. The chain ending at the identifier decides
// between a member (a.b.name), and for a bare name a type, a variable or a global, in that
// order.
func resolveTarget(doc *Document, ws *workspace.Workspace, a *beancomplete.Autocompleter, pos protocol.Position) target {
	line, col := clampPosition(doc.Buffer, pos)

	start, end, ok := identifierAt(doc.Buffer, line, col)
	if !ok {
		return target{}
	}

	a.ScanLines(doc.Buffer, 0, line)

	name := string([]rune(doc.Buffer.Line(line))[start:end])
	t := target{name: name, rng: lineRange(doc.Buffer, line, start, end)}

	stream, err := beancomplete.NewBackwardStream(doc.Buffer, line, end)
	if err != nil {
		return t
	}

	expr := a.Expression(stream)
	if expr.Len() > 1 {
		owner, err := expr.Slice(0, expr.Len()-1)
		if err != nil {
			return t
		}

		entry, ok := a.Member(a.ResolveType(owner), name)
		if ok {
			t.kind = targetMember
			t.entry = entry
		}

		return t
	}

	if ws.Registry.IsTypeName(name) {
		t.kind = targetType
		t.typeName = name

		return t
	}

	if typ := a.TypeOf(name); typ != "" {
		t.kind = targetVariable
		t.typeName = typ

		return t
	}

	for _, e := range ws.Registry.EntriesForType(beancomplete.TopLevel) {
		if e.Name == name && e.Kind != beancomplete.KindType {
			t.kind = targetGlobal
			t.entry = e

			return t
		}
	}

	return t
}
