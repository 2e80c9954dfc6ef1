package lsp

import (
	"context"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Symbols handles workspace/symbol requests by fuzzy-matching bean type names.
// Types described in YAML or JSON have no line and are left out.
func (s *Server) Symbols(_ context.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	s.logger.Debug("WorkspaceSymbol", zap.String("query", params.Query))

	ws := s.workspace.Load()
	if ws == nil {
		return nil, nil
	}

	var symbols []protocol.SymbolInformation

	for _, name := range ws.Registry.TypeNames() {
		if params.Query != "" && !fuzzy.MatchFold(params.Query, name) {
			continue
		}

		def, ok := ws.Registry.Describe(name)
		if !ok || def.Line == 0 {
			continue
		}

		kind := protocol.SymbolKindClass
		if def.Enum {
			kind = protocol.SymbolKindEnum
		}

		symbols = append(symbols, protocol.SymbolInformation{
			Name:     def.Name,
			Kind:     kind,
			Location: typeLocation(def),
		})
	}

	return symbols, nil
}
