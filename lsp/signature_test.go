package lsp_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
)

func signatureAt(t *testing.T, text string, line, character uint32) *protocol.SignatureHelp {
	t.Helper()

	server, _ := newTestServer(t)
	openDocument(t, server, scriptURI, text)

	help, err := server.SignatureHelp(context.Background(), &protocol.SignatureHelpParams{
		TextDocumentPositionParams: at(line, character),
	})
	if err != nil {
		t.Fatalf("SignatureHelp() error: %v", err)
	}

	return help
}

func TestSignatureHelp_Member(t *testing.T) {
	t.Parallel()

	help := signatureAt(t, testScript, 4, 11)
	if help == nil {
		t.Fatal("Expected signature help")
	}

	if len(help.Signatures) != 1 {
		t.Fatalf("Expected 1 signature, got %d", len(help.Signatures))
	}

	sig := help.Signatures[0]
	if sig.Label != "greet(other: Person, loud: boolean) : String" {
		t.Errorf("Unexpected label %q", sig.Label)
	}

	params := make([]string, len(sig.Parameters))
	for i, p := range sig.Parameters {
		params[i] = p.Label
	}

	if diff := cmp.Diff([]string{"other: Person", "loud: boolean"}, params); diff != "" {
		t.Errorf("Parameters mismatch (-want +got):\n%s", diff)
	}

	if help.ActiveParameter != 1 {
		t.Errorf("ActiveParameter = %d, want 1", help.ActiveParameter)
	}

	doc, ok := sig.Documentation.(*protocol.MarkupContent)
	if !ok || doc.Value != "says hello" {
		t.Errorf("Unexpected documentation %#v", sig.Documentation)
	}
}

func TestSignatureHelp_ActiveParameter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		label  string
		active uint32
	}{
		{name: "first argument", text: `People.find(`, label: "find(name: String) : Person", active: 0},
		{name: "global", text: `print(`, label: "print(value)", active: 0},
		{name: "nested call", text: `print(People.find("a, b"`, label: "find(name: String) : Person", active: 0},
		{name: "after nested call", text: `p.greet(People.find("x"), `, label: "greet(other: Person, loud: boolean) : String", active: 1},
		{name: "clamped to last parameter", text: `print(1, 2, `, label: "print(value)", active: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text := "var p = People.find(\"x\")\n" + tt.text
			help := signatureAt(t, text, 1, uint32(len([]rune(tt.text)))) //nolint:gosec // short test input

			if help == nil {
				t.Fatal("Expected signature help")
			}

			if got := help.Signatures[0].Label; got != tt.label {
				t.Errorf("Label = %q, want %q", got, tt.label)
			}

			if help.ActiveParameter != tt.active {
				t.Errorf("ActiveParameter = %d, want %d", help.ActiveParameter, tt.active)
			}
		})
	}
}

func TestSignatureHelp_None(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"People.find(x)",
		"unknown.call(",
		"People.find(x).name(",
		`"People.find(`,
	} {
		if help := signatureAt(t, text, 0, uint32(len(text))); help != nil { //nolint:gosec // short test input
			t.Errorf("SignatureHelp(%q) = %+v, want nil", text, help)
		}
	}
}
