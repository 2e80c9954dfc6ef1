// Package lsp implements a Language Server Protocol server that completes bean member chains
// in scripts.
package lsp

import (
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/workspace"
)

// Server implements the LSP Server interface for bean completion.
type Server struct {
	client protocol.Client
	logger *zap.Logger

	// Document state
	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*Document

	// workspace is replaced wholesale when bean files change, so requests in flight keep
	// the registry they started with.
	workspace atomic.Pointer[workspace.Workspace]

	watchMu sync.Mutex
	watcher *Watcher

	// Server state
	initialized   bool
	shutdown      bool
	workspaceRoot string
}

// Document is one version of an open document. A new Document replaces the old one on every
// change; the completion session carries over.
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Content string
	Buffer  *beancomplete.StringBuffer

	session *session
}

// session is the editing session of one document: an Autocompleter and the variable types
// it has inferred so far.
type session struct {
	mu        sync.Mutex
	ws        *workspace.Workspace
	completer *beancomplete.Autocompleter
}

// with runs fn with the session's Autocompleter, recreating it when the workspace changed.
func (s *session) with(ws *workspace.Workspace, fn func(*beancomplete.Autocompleter)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completer == nil || s.ws != ws {
		s.ws = ws
		s.completer = ws.NewSession()
	}

	fn(s.completer)
}

// NewServer creates a new LSP server. When ws is nil the workspace is loaded from the root
// the client sends in Initialize.
func NewServer(client protocol.Client, logger *zap.Logger, ws *workspace.Workspace) *Server {
	s := &Server{
		client:    client,
		logger:    logger,
		documents: make(map[protocol.DocumentURI]*Document),
	}

	if ws != nil {
		s.workspace.Store(ws)
	}

	return s
}

// Workspace returns the current workspace, or nil before one is loaded.
func (s *Server) Workspace() *workspace.Workspace {
	return s.workspace.Load()
}

// Initialize handles the initialize request.
func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("Initialize", zap.Any("params", params))

	// Extract workspace root from params
	if params.RootURI != "" {
		s.workspaceRoot = URIToPath(params.RootURI)
		s.logger.Info("Workspace root", zap.String("root", s.workspaceRoot))
	} else if params.RootPath != "" {
		s.workspaceRoot = params.RootPath
		s.logger.Info("Workspace root (from RootPath)", zap.String("root", s.workspaceRoot))
	}

	if s.workspace.Load() == nil {
		s.loadWorkspace(ctx)
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			// Full document sync - client sends entire content on change
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			HoverProvider:          true,
			DefinitionProvider:     true,
			TypeDefinitionProvider: true,
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"."},
				ResolveProvider:   false,
			},
			SignatureHelpProvider: &protocol.SignatureHelpOptions{
				TriggerCharacters:   []string{"(", ","},
				RetriggerCharacters: []string{","},
			},
			// Bean types by name
			WorkspaceSymbolProvider: true,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "beancomplete-lsp",
			Version: "0.1.0",
		},
	}, nil
}

// loadWorkspace opens the workspace at the root (or the working directory) and starts
// watching its bean files. Failures are reported to the client; completion then stays
// empty until the files are fixed.
func (s *Server) loadWorkspace(ctx context.Context) {
	root := s.workspaceRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			s.logger.Error("No workspace root", zap.Error(err))

			return
		}

		root = wd
	}

	ws, err := workspace.Open(root, s.logger)
	if err != nil {
		s.logger.Error("Failed to load workspace", zap.String("root", root), zap.Error(err))
		s.showError(ctx, "beancomplete: "+err.Error())

		return
	}

	s.workspace.Store(ws)
	s.watch(ws)
}

// Reload rebuilds the workspace from its config. On failure the previous workspace stays
// in place.
func (s *Server) Reload(ctx context.Context) error {
	current := s.workspace.Load()
	if current == nil {
		s.loadWorkspace(ctx)

		return nil
	}

	ws, err := current.Reload()
	if err != nil {
		s.logger.Warn("Reload failed, keeping previous bean types", zap.Error(err))
		s.showError(ctx, "beancomplete: "+err.Error())

		return err
	}

	s.workspace.Store(ws)
	s.watch(ws)

	s.logger.Info("Reloaded bean types", zap.Int("types", ws.Registry.Len()))

	return nil
}

func (s *Server) watch(ws *workspace.Workspace) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.shutdown {
		return
	}

	if s.watcher != nil {
		s.watcher.SetDirs(ws.WatchDirs())

		return
	}

	w, err := NewWatcher(s.logger, ws.WatchDirs(), func() {
		_ = s.Reload(context.Background())
	})
	if err != nil {
		s.logger.Warn("File watching disabled", zap.Error(err))

		return
	}

	s.watcher = w
}

func (s *Server) showError(ctx context.Context, msg string) {
	err := s.client.ShowMessage(ctx, &protocol.ShowMessageParams{
		Type:    protocol.MessageTypeError,
		Message: msg,
	})
	if err != nil {
		s.logger.Error("Failed to show message", zap.Error(err))
	}
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("Initialized")
	s.initialized = true

	return nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info("Shutdown")

	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	s.shutdown = true

	if s.watcher != nil {
		err := s.watcher.Close()
		if err != nil {
			s.logger.Warn("Failed to stop file watcher", zap.Error(err))
		}

		s.watcher = nil
	}

	return nil
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) error {
	s.logger.Info("Exit")
	// The main loop should handle exiting after this
	return nil
}

// DidOpen handles textDocument/didOpen notifications.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.logger.Info("DidOpen", zap.String("uri", string(params.TextDocument.URI)))

	doc := &Document{
		URI:     params.TextDocument.URI,
		Version: params.TextDocument.Version,
		Content: params.TextDocument.Text,
		Buffer:  beancomplete.NewStringBuffer(params.TextDocument.Text),
		session: &session{},
	}

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidChange handles textDocument/didChange notifications.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.logger.Info("DidChange",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int32("version", params.TextDocument.Version))

	// Full sync - take the last content change (should only be one with full sync)
	if len(params.ContentChanges) == 0 {
		return nil
	}

	s.mu.Lock()

	old, ok := s.documents[params.TextDocument.URI]
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("DidChange for unknown document", zap.String("uri", string(params.TextDocument.URI)))

		return nil
	}

	content := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := &Document{
		URI:     old.URI,
		Version: params.TextDocument.Version,
		Content: content,
		Buffer:  beancomplete.NewStringBuffer(content),
		session: old.session,
	}
	s.documents[params.TextDocument.URI] = doc

	s.mu.Unlock()

	s.publishDiagnostics(ctx, doc)

	return nil
}

// DidClose handles textDocument/didClose notifications. The document's inferred variable
// types are dropped with it.
func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.logger.Info("DidClose", zap.String("uri", string(params.TextDocument.URI)))

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	if !isBeanFile(params.TextDocument.URI) {
		return nil
	}

	// Clear diagnostics for closed document
	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	if err != nil {
		s.logger.Error("Failed to clear diagnostics", zap.Error(err))
	}

	return nil
}

// DidSave handles textDocument/didSave notifications. Saving a bean description reloads
// the registry even when the client's file events are not being watched.
func (s *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.logger.Info("DidSave", zap.String("uri", string(params.TextDocument.URI)))

	if isBeanFile(params.TextDocument.URI) {
		_ = s.Reload(ctx)
	}

	return nil
}

// DidChangeWatchedFiles handles workspace/didChangeWatchedFiles.
func (s *Server) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	for _, change := range params.Changes {
		if isBeanFile(change.URI) || isConfigFile(change.URI) {
			_ = s.Reload(ctx)

			return nil
		}
	}

	return nil
}

// getDocument returns a document by URI (read-locked).
func (s *Server) getDocument(uri protocol.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]

	return doc, ok
}

// withSession looks up the document and runs fn with its session. It reports false when
// the document is unknown or no workspace is loaded.
func (s *Server) withSession(uri protocol.DocumentURI, fn func(*Document, *workspace.Workspace, *beancomplete.Autocompleter)) bool {
	doc, ok := s.getDocument(uri)
	if !ok {
		return false
	}

	ws := s.workspace.Load()
	if ws == nil {
		return false
	}

	doc.session.with(ws, func(a *beancomplete.Autocompleter) {
		fn(doc, ws, a)
	})

	return true
}

func isBeanFile(uri protocol.DocumentURI) bool {
	path := strings.ToLower(URIToPath(uri))

	return strings.HasSuffix(path, ".beans") ||
		strings.HasSuffix(path, ".yaml") ||
		strings.HasSuffix(path, ".yml") ||
		strings.HasSuffix(path, ".json")
}

func isConfigFile(uri protocol.DocumentURI) bool {
	path := URIToPath(uri)
	for _, name := range beancomplete.DefaultConfigNames {
		if strings.HasSuffix(path, "/"+name) {
			return true
		}
	}

	return false
}
