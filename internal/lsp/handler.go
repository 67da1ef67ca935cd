package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"bali/internal/ast"
	"bali/internal/parser"
)

// BaliHandler implements the LSP server handlers for Bali Document Notation.
// Documents are tracked by their filesystem path; every open or change
// reparses the whole document and republishes diagnostics.
type BaliHandler struct {
	mu      sync.RWMutex
	content map[string]string
	trees   map[string]ast.Node
}

func NewBaliHandler() *BaliHandler {
	return &BaliHandler{
		content: make(map[string]string),
		trees:   make(map[string]ast.Node),
	}
}

// Initialize responds to the LSP client's initialize request and advertises
// the server's capabilities.
func (h *BaliHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			DocumentFormattingProvider: ptrBool(true),
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *BaliHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("Bali LSP Initialized")
	return nil
}

func (h *BaliHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("Bali LSP Shutdown")
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *BaliHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.UpdateDocument(params.TextDocument.URI, params.TextDocument.Text)
	if err != nil {
		return err
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidChange handles file change notifications. The server is
// configured for full-document sync, so the last change carries the whole
// new text.
func (h *BaliHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	text, ok := wholeText(params.ContentChanges)
	if !ok {
		return fmt.Errorf("no full-document change for %s", params.TextDocument.URI)
	}
	diagnostics, err := h.UpdateDocument(params.TextDocument.URI, text)
	if err != nil {
		return err
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidClose drops all state held for the closed document.
func (h *BaliHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.trees, path)
	return nil
}

// TextDocumentCompletion offers the statement and operator keywords plus the
// named constants.
func (h *BaliHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	keywords := make([]string, 0, len(parser.KEYWORDS))
	for keyword := range parser.KEYWORDS {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	kind := protocol.CompletionItemKindKeyword
	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, keyword := range keywords {
		items = append(items, protocol.CompletionItem{
			Label: keyword,
			Kind:  &kind,
		})
	}
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentFormatting reformats a parseable document into its canonical
// form. Documents that do not parse are left untouched.
func (h *BaliHandler) TextDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path, source, err := h.documentContent(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	node, err := parser.ParseDocument(path, source)
	if err != nil {
		return nil, nil
	}
	formatted := ast.Format(node)
	if formatted == source {
		return nil, nil
	}

	lines := strings.Count(source, "\n") + 1
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: uint32(lines), Character: 0},
		},
		NewText: formatted,
	}}, nil
}

// TextDocumentSemanticTokensFull lexes the whole document and reports every
// token, encoded in the LSP delta wire format.
func (h *BaliHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	_, source, err := h.documentContent(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(source)

	var data []uint32
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// UpdateDocument replaces the tracked text of a document, reparses it, and
// returns the diagnostics to publish. A failed parse clears the cached tree
// but keeps the text.
func (h *BaliHandler) UpdateDocument(rawURI protocol.DocumentUri, text string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	node, parseErr := parser.ParseDocument(path, text)

	h.mu.Lock()
	h.content[path] = text
	if parseErr != nil {
		delete(h.trees, path)
	} else {
		h.trees[path] = node
	}
	h.mu.Unlock()

	if parseErr != nil {
		return ConvertError(parseErr), nil
	}
	return nil, nil
}

// Tree returns the last successfully parsed tree for a document, if any.
func (h *BaliHandler) Tree(rawURI protocol.DocumentUri) (ast.Node, bool) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	node, ok := h.trees[path]
	return node, ok
}

// documentContent returns the tracked text of a document, falling back to
// the file on disk for documents the editor never opened.
func (h *BaliHandler) documentContent(rawURI protocol.DocumentUri) (string, string, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	h.mu.RLock()
	source, ok := h.content[path]
	h.mu.RUnlock()
	if ok {
		return path, source, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return path, string(content), nil
}

// wholeText extracts the full text of a full-sync content change list.
func wholeText(changes []any) (string, bool) {
	for i := len(changes) - 1; i >= 0; i-- {
		switch change := changes[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				return change.Text, true
			}
		}
	}
	return "", false
}

// uriToPath converts a file URI to a platform-local path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove the leading slash of /C:/... paths.
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
