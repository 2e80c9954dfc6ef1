package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/workspace"
)

// SignatureHelp handles textDocument/signatureHelp requests.
func (s *Server) SignatureHelp(_ context.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	s.logger.Debug("SignatureHelp",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	var help *protocol.SignatureHelp

	s.withSession(params.TextDocument.URI, func(doc *Document, ws *workspace.Workspace, a *beancomplete.Autocompleter) {
		line, col := clampPosition(doc.Buffer, params.Position)

		paren, active, ok := openCall([]rune(doc.Buffer.Line(line))[:col])
		if !ok {
			return
		}

		a.ScanLines(doc.Buffer, 0, line)

		method, ok := calledMethod(doc, ws, a, line, paren)
		if !ok {
			return
		}

		help = &protocol.SignatureHelp{
			Signatures:      []protocol.SignatureInformation{signatureInfo(method)},
			ActiveSignature: 0,
			ActiveParameter: uint32(min(active, max(0, method.ParamCount()-1))), //nolint:gosec // G115: small parameter index
		}
	})

	return help, nil
}

// openCall finds the innermost call left open in text, returning the column of its '('
// and the index of the argument being written. Quoted strings are skipped.
func openCall(text []rune) (paren, arg int, ok bool) {
	var (
		opens  []int
		commas []int
		quote  rune
	)

	for i, ch := range text {
		if quote != 0 {
			if ch == quote && (i == 0 || text[i-1] != '\\') {
				quote = 0
			}

			continue
		}

		switch ch {
		case '"', '\'':
			quote = ch
		case '(', '[', '{':
			opens = append(opens, i)
			commas = append(commas, 0)
		case ')', ']', '}':
			if len(opens) > 0 {
				opens = opens[:len(opens)-1]
				commas = commas[:len(commas)-1]
			}
		case ',':
			if len(commas) > 0 {
				commas[len(commas)-1]++
			}
		}
	}

	for i := len(opens) - 1; i >= 0; i-- {
		if text[opens[i]] == '(' {
			return opens[i], commas[i], true
		}
	}

	return 0, 0, false
}

// calledMethod resolves the method whose name ends just before column paren.
func calledMethod(doc *Document, ws *workspace.Workspace, a *beancomplete.Autocompleter, line, paren int) (beancomplete.Entry, bool) {
	stream, err := beancomplete.NewBackwardStream(doc.Buffer, line, paren)
	if err != nil {
		return beancomplete.Entry{}, false
	}

	expr := a.Expression(stream)
	name := expr.Segment(expr.Len() - 1).Value()

	if expr.Len() > 1 {
		owner, err := expr.Slice(0, expr.Len()-1)
		if err != nil {
			return beancomplete.Entry{}, false
		}

		entry, ok := a.Member(a.ResolveType(owner), name)

		return entry, ok && entry.Kind == beancomplete.KindMethod
	}

	for _, e := range ws.Registry.EntriesForType(beancomplete.TopLevel) {
		if e.Name == name && e.Kind == beancomplete.KindMethod {
			return e, true
		}
	}

	return beancomplete.Entry{}, false
}

func signatureInfo(method beancomplete.Entry) protocol.SignatureInformation {
	info := protocol.SignatureInformation{
		Label:      method.Label(),
		Parameters: make([]protocol.ParameterInformation, 0, len(method.Params)),
	}

	if method.Description != "" {
		info.Documentation = &protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: method.Description,
		}
	}

	for _, p := range method.Params {
		info.Parameters = append(info.Parameters, protocol.ParameterInformation{
			Label: p.String(),
		})
	}

	return info
}
