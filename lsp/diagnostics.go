package lsp

import (
	"context"
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/beans"
)

// publishDiagnostics reports parse errors in .beans documents. Scripts never get
// diagnostics: malformed script text only means fewer completions.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	if !strings.HasSuffix(strings.ToLower(string(doc.URI)), ".beans") {
		return
	}

	diagnostics := []protocol.Diagnostic{}

	_, err := beans.Parse(URIToPath(doc.URI), []byte(doc.Content))
	if err != nil {
		d := convertParseError(doc.Buffer, err)
		s.logger.Debug("Publishing diagnostic",
			zap.Uint32("lsp.start.line", d.Range.Start.Line),
			zap.Uint32("lsp.start.char", d.Range.Start.Character),
			zap.String("message", d.Message))
		diagnostics = append(diagnostics, d)
	}

	err = s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("Failed to publish diagnostics", zap.Error(err))
	}
}

// convertParseError converts a .beans parse error to an LSP diagnostic. participle
// positions are 1-based rune positions, LSP positions 0-based UTF-16.
func convertParseError(buf *beancomplete.StringBuffer, err error) protocol.Diagnostic {
	d := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityError,
		Source:   "beancomplete",
		Message:  err.Error(),
	}

	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		line := min(max(0, pos.Line-1), buf.LineCount()-1)
		col := max(0, pos.Column-1)

		d.Message = perr.Message()
		d.Range = lineRange(buf, line, col, col+1)
	}

	return d
}
