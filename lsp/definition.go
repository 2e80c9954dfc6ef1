package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/beans"
	"github.com/rlch/beancomplete/workspace"
)

// Definition handles textDocument/definition requests.
// Types jump to their declaration; members and globals to the type declaring them;
// variables to the declaration of their inferred type.
func (s *Server) Definition(_ context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	s.logger.Debug("Definition",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	var locations []protocol.Location

	s.withSession(params.TextDocument.URI, func(doc *Document, ws *workspace.Workspace, a *beancomplete.Autocompleter) {
		t := resolveTarget(doc, ws, a, params.Position)

		var typeName string

		switch t.kind {
		case targetMember, targetGlobal:
			typeName = t.entry.Owner
		case targetType:
			typeName = t.typeName
		case targetVariable:
			typeName = beancomplete.ElementType(t.typeName)
		}

		if typeName == "" {
			return
		}

		def, ok := ws.Registry.Describe(typeName)
		if !ok || def.File == "" {
			return
		}

		locations = append(locations, typeLocation(def))
	})

	return locations, nil
}

// typeLocation converts a declaration to an LSP location at the start of the declaration.
// Declarations without a line point at the start of their file. The bean file is not
// loaded here, so the column stays in runes; declarations start on ASCII indentation.
func typeLocation(def beans.TypeDef) protocol.Location {
	pos := protocol.Position{
		Line:      uint32(max(0, def.Line-1)),   //nolint:gosec // G115: small line numbers
		Character: uint32(max(0, def.Column-1)), //nolint:gosec // G115: small column numbers
	}

	return protocol.Location{
		URI:   PathToURI(def.File),
		Range: protocol.Range{Start: pos, End: pos},
	}
}

// TypeDefinition handles textDocument/typeDefinition. Every target already resolves to a
// type, so it answers like Definition.
func (s *Server) TypeDefinition(ctx context.Context, params *protocol.TypeDefinitionParams) ([]protocol.Location, error) {
	return s.Definition(ctx, &protocol.DefinitionParams{
		TextDocumentPositionParams: params.TextDocumentPositionParams,
	})
}
