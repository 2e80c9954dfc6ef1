package lsp

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/snippet"
	"github.com/rlch/beancomplete/workspace"
)

// Completion handles textDocument/completion requests.
//
// Assignments on the lines above the cursor are scanned first so that variables resolve,
// then the identifier being typed is completed: members after a dot, top-level entries
// otherwise.
func (s *Server) Completion(_ context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	s.logger.Debug("Completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	list := &protocol.CompletionList{Items: []protocol.CompletionItem{}}

	var completeErr error

	s.withSession(params.TextDocument.URI, func(doc *Document, ws *workspace.Workspace, a *beancomplete.Autocompleter) {
		line, col := clampPosition(doc.Buffer, params.Position)

		a.ScanLines(doc.Buffer, 0, line)

		stream, err := beancomplete.NewBackwardStream(doc.Buffer, line, col)
		if err != nil {
			completeErr = err

			return
		}

		result, err := a.EntriesForIncompleteString(col, stream)
		if err != nil {
			completeErr = err

			return
		}

		rng := lineRange(doc.Buffer, line, result.Offset, col)
		for i, e := range result.Entries {
			list.Items = append(list.Items, completionItem(e, i, rng, ws.Config.PlainInsert))
		}
	})

	if completeErr != nil {
		s.logger.Debug("Completion failed", zap.Error(completeErr))
	}

	return list, nil
}

// CompletionResolve handles completionItem/resolve. Items are sent complete, so there is
// nothing to add.
func (s *Server) CompletionResolve(_ context.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	return item, nil
}

// completionItem converts an entry to an LSP item. index keeps the entries' sorted order
// in clients that sort by sortText.
func completionItem(e beancomplete.Entry, index int, rng protocol.Range, plain bool) protocol.CompletionItem {
	item := protocol.CompletionItem{
		Label:      e.Name,
		Kind:       completionKind(e.Kind),
		Detail:     e.Label(),
		SortText:   fmt.Sprintf("%05d", index),
		FilterText: e.Name,
	}

	if e.Description != "" {
		item.Documentation = &protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: e.Description,
		}
	}

	if e.Deprecated {
		item.Deprecated = true
		item.Tags = []protocol.CompletionItemTag{protocol.CompletionItemTagDeprecated}
	}

	if plain {
		text, _ := snippet.Insert(e)
		item.InsertTextFormat = protocol.InsertTextFormatPlainText
		item.TextEdit = &protocol.TextEdit{Range: rng, NewText: text}
	} else {
		item.InsertTextFormat = protocol.InsertTextFormatSnippet
		item.TextEdit = &protocol.TextEdit{Range: rng, NewText: snippet.Snippet(e)}
	}

	return item
}

func completionKind(k beancomplete.EntryKind) protocol.CompletionItemKind {
	switch k {
	case beancomplete.KindMethod:
		return protocol.CompletionItemKindMethod
	case beancomplete.KindEnumConstant:
		return protocol.CompletionItemKindEnumMember
	case beancomplete.KindType:
		return protocol.CompletionItemKindClass
	case beancomplete.KindVariable:
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindField
	}
}
