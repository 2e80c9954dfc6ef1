package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/beans"
	"github.com/rlch/beancomplete/workspace"
)

// Hover handles textDocument/hover requests.
func (s *Server) Hover(_ context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.logger.Debug("Hover",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	var hover *protocol.Hover

	s.withSession(params.TextDocument.URI, func(doc *Document, ws *workspace.Workspace, a *beancomplete.Autocompleter) {
		t := resolveTarget(doc, ws, a, params.Position)

		content := hoverContent(ws.Registry, t)
		if content == "" {
			return
		}

		hover = &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: content,
			},
			Range: rangePtr(t.rng),
		}
	})

	return hover, nil
}

// hoverContent generates hover markdown for a resolved identifier.
func hoverContent(reg *beans.Registry, t target) string {
	var b strings.Builder

	switch t.kind {
	case targetMember, targetGlobal:
		b.WriteString("```\n")

		if t.entry.Owner != "" {
			b.WriteString(t.entry.Owner + ".")
		}

		b.WriteString(t.entry.Label())
		b.WriteString("\n```")
		writeDescription(&b, t.entry.Description, t.entry.Deprecated)

	case targetType:
		def, ok := reg.Describe(t.typeName)
		if !ok {
			return ""
		}

		b.WriteString("```\n")

		switch {
		case def.Enum:
			b.WriteString("enum ")
		case def.TopLevel:
			b.WriteString("toplevel type ")
		default:
			b.WriteString("type ")
		}

		b.WriteString(def.Name)

		if len(def.Extends) > 0 {
			b.WriteString(" extends " + strings.Join(def.Extends, ", "))
		}

		b.WriteString("\n```")
		writeDescription(&b, def.Description, false)

	case targetVariable:
		b.WriteString("```\nvar " + t.name + " : " + t.typeName + "\n```")

	default:
		return ""
	}

	return b.String()
}

func writeDescription(b *strings.Builder, description string, deprecated bool) {
	if description != "" {
		b.WriteString("\n\n")
		b.WriteString(description)
	}

	if deprecated {
		b.WriteString("\n\n*Deprecated*")
	}
}
