package lsp_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
)

func TestHover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      uint32
		character uint32
		want      string
		start     uint32
		end       uint32
	}{
		{
			name:      "member",
			line:      1,
			character: 12,
			want:      "```\nPerson.address : Address\n```",
			start:     10,
			end:       17,
		},
		{
			name:      "method with description",
			line:      0,
			character: 16,
			want:      "```\nPeople.find(name: String) : Person\n```\n\nlooks a person up by name",
			start:     15,
			end:       19,
		},
		{
			name:      "type",
			line:      0,
			character: 10,
			want:      "```\ntoplevel type People\n```\n\ndirectory of everyone",
			start:     8,
			end:       14,
		},
		{
			name:      "variable",
			line:      5,
			character: 0,
			want:      "```\nvar p : Person\n```",
			start:     0,
			end:       1,
		},
		{
			name:      "global",
			line:      3,
			character: 20,
			want:      "```\nout : String\n```\n\nstandard output",
			start:     19,
			end:       22,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server, _ := newTestServer(t)
			openDocument(t, server, scriptURI, testScript)

			hover, err := server.Hover(context.Background(), &protocol.HoverParams{
				TextDocumentPositionParams: at(tt.line, tt.character),
			})
			if err != nil {
				t.Fatalf("Hover() error: %v", err)
			}

			if hover == nil {
				t.Fatal("Expected hover content")
			}

			if diff := cmp.Diff(tt.want, hover.Contents.Value); diff != "" {
				t.Errorf("Hover() mismatch (-want +got):\n%s", diff)
			}

			if hover.Range == nil || hover.Range.Start.Character != tt.start || hover.Range.End.Character != tt.end {
				t.Errorf("Hover() range = %+v, want [%d, %d]", hover.Range, tt.start, tt.end)
			}
		})
	}
}

func TestHover_Deprecated(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	openDocument(t, server, scriptURI, "People.find(x).age()")

	hover, err := server.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: at(0, 16),
	})
	if err != nil {
		t.Fatalf("Hover() error: %v", err)
	}

	if hover == nil {
		t.Fatal("Expected hover content")
	}

	if diff := cmp.Diff("```\nPerson.age() : int\n```\n\n*Deprecated*", hover.Contents.Value); diff != "" {
		t.Errorf("Hover() mismatch (-want +got):\n%s", diff)
	}
}

func TestHover_NoContent(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	openDocument(t, server, scriptURI, "var z = unknown.thing\n  ")

	for _, pos := range []protocol.Position{
		{Line: 0, Character: 12}, // unknown variable
		{Line: 0, Character: 18}, // member of an unknown chain
		{Line: 1, Character: 1},  // whitespace
	} {
		hover, err := server.Hover(context.Background(), &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: scriptURI},
				Position:     pos,
			},
		})
		if err != nil {
			t.Fatalf("Hover() error: %v", err)
		}

		if hover != nil {
			t.Errorf("Hover(%v) = %q, want nil", pos, hover.Contents.Value)
		}
	}
}
