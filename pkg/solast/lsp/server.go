// Package lsp provides a Language Server Protocol server for editing raw
// Solidity compiler --standard-json AST dumps: hover and completion over
// node.Kind strings, and live sanity diagnostics on open/change/save.
package lsp

import (
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/solast-dev/solast/pkg/solast"
	"github.com/solast-dev/solast/pkg/solast/pkg/node"
	"github.com/solast-dev/solast/pkg/solast/pkg/reader"
	"github.com/solast-dev/solast/pkg/solast/pkg/sanity"
)

// DocumentStore is a thread-safe store for document contents keyed by URI.
type DocumentStore struct {
	documents map[string]string // URI -> content.
	mu        sync.RWMutex
}

// NewDocumentStore creates a new empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]string),
	}
}

// Set stores document content for the given URI.
func (ds *DocumentStore) Set(uri, content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents[uri] = content
}

// Get retrieves document content by URI.
func (ds *DocumentStore) Get(uri string) (string, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	content, ok := ds.documents[uri]

	return content, ok
}

// Delete removes document content by URI.
func (ds *DocumentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

// Server implements the solast AST-dump LSP server.
type Server struct {
	store   *DocumentStore
	handler protocol.Handler
}

// NewServer creates a new solast LSP server with default handlers.
func NewServer() *Server {
	srv := &Server{store: NewDocumentStore()}

	srv.handler = protocol.Handler{
		Initialize:             srv.initialize,
		Initialized:            srv.initialized,
		Shutdown:               srv.shutdown,
		SetTrace:               srv.setTrace,
		TextDocumentDidOpen:    srv.didOpen,
		TextDocumentDidChange:  srv.didChange,
		TextDocumentDidSave:    srv.didSave,
		TextDocumentDidClose:   srv.didClose,
		TextDocumentCompletion: srv.completion,
		TextDocumentHover:      srv.hover,
	}

	return srv
}

// Run starts the LSP server on stdio.
func (srv *Server) Run() {
	lspServer := server.NewServer(&srv.handler, "solast AST", false)

	err := lspServer.RunStdio()
	if err != nil {
		log.Printf("LSP server error: %v", err)
	}
}

func (srv *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := srv.handler.CreateServerCapabilities()
	version := "1.0.0"

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "solast AST",
			Version: &version,
		},
	}, nil
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := params.TextDocument.Text

	srv.store.Set(uri, text)
	srv.publishDiagnostics(ctx, uri)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	if len(params.ContentChanges) > 0 {
		if change, changeOK := params.ContentChanges[0].(map[string]any); changeOK {
			if text, textOK := change["text"].(string); textOK {
				srv.store.Set(uri, text)
				srv.publishDiagnostics(ctx, uri)
			}
		}
	}

	return nil
}

func (srv *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	if _, ok := srv.store.Get(uri); ok {
		srv.publishDiagnostics(ctx, uri)
	}

	return nil
}

func (srv *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	srv.store.Delete(uri)

	return nil
}

// kindCompletions lists every node.Kind as a completion item offered inside
// a "nodeType" string value.
var kindCompletions = buildKindCompletions()

func buildKindCompletions() []protocol.CompletionItem {
	kinds := []node.Kind{
		node.KindSourceUnit, node.KindPragmaDirective, node.KindImportDirective,
		node.KindInheritanceSpecifier, node.KindModifierInvocation, node.KindOverrideSpecifier,
		node.KindParameterList, node.KindUsingForDirective, node.KindStructuredDocumentation,
		node.KindIdentifierPath, node.KindContractDefinition, node.KindFunctionDefinition,
		node.KindModifierDefinition, node.KindEventDefinition, node.KindErrorDefinition,
		node.KindStructDefinition, node.KindEnumDefinition, node.KindEnumValue,
		node.KindUserDefinedValueTypeDefinition, node.KindVariableDeclaration,
		node.KindElementaryTypeName, node.KindUserDefinedTypeName, node.KindArrayTypeName,
		node.KindMapping, node.KindFunctionTypeName, node.KindBlock, node.KindUncheckedBlock,
		node.KindIfStatement, node.KindForStatement, node.KindWhileStatement,
		node.KindDoWhileStatement, node.KindReturn, node.KindBreak, node.KindContinue,
		node.KindThrow, node.KindEmitStatement, node.KindRevertStatement,
		node.KindExpressionStatement, node.KindVariableDeclarationStatement, node.KindTryStatement,
		node.KindTryCatchClause, node.KindInlineAssembly, node.KindPlaceholderStatement,
		node.KindLiteral, node.KindIdentifier, node.KindMemberAccess, node.KindIndexAccess,
		node.KindIndexRangeAccess, node.KindUnaryOperation, node.KindBinaryOperation,
		node.KindAssignment, node.KindConditional, node.KindFunctionCall,
		node.KindFunctionCallOptions, node.KindNewExpression, node.KindTupleExpression,
		node.KindElementaryTypeNameExpression,
	}

	items := make([]protocol.CompletionItem, 0, len(kinds))
	for _, k := range kinds {
		items = append(items, completionItem(string(k), protocol.CompletionItemKindEnumMember, "Solidity AST node kind"))
	}

	return items
}

func completionItem(label string, kind protocol.CompletionItemKind, detail string) protocol.CompletionItem {
	return protocol.CompletionItem{
		Label:  label,
		Kind:   &kind,
		Detail: &detail,
	}
}

func (srv *Server) completion(_ *glsp.Context, _ *protocol.CompletionParams) (any, error) {
	return protocol.CompletionList{IsIncomplete: false, Items: kindCompletions}, nil
}

// hoverDocs gives a one-line description of the document's structural keys,
// offered when hovering over them.
var hoverDocs = map[string]string{
	"nodeType":        "The node's kind. One of the closed set of Solidity AST node kinds.",
	"src":             "Source location as `offset:length:fileIndex`.",
	"id":              "Node id, unique within the compiler's source map.",
	"nodes":           "Child nodes in declaration order.",
	"absolutePath":    "The source unit's file path, used as its cache and lookup key.",
	"exportedSymbols": "Map of identifier name to the node ids it resolves to within this unit.",
	"scope":           "Id of the enclosing declaration this node resolves names against.",
	"referencedDeclaration": "Id of the declaration this identifier or type name refers to, " +
		"or a negative/absent value for built-ins.",
}

func (srv *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	pos := params.Position

	text, ok := srv.store.Get(uri)
	if !ok {
		return nil, nil //nolint:nilnil // LSP protocol expects nil hover when no document found.
	}

	word := extractWordAtPosition(text, int(pos.Line), int(pos.Character))

	if doc, found := hoverDocs[word]; found {
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: doc,
			},
		}, nil
	}

	if isKnownKind(word) {
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: "Solidity AST node kind `" + word + "`.",
			},
		}, nil
	}

	return nil, nil //nolint:nilnil // LSP protocol expects nil hover when no docs available.
}

func isKnownKind(word string) bool {
	for _, item := range kindCompletions {
		if item.Label == word {
			return true
		}
	}

	return false
}

func extractWordAtPosition(text string, line, character int) string {
	lines := splitLines(text)
	if line >= len(lines) {
		return ""
	}

	lineText := lines[line]
	if character > len(lineText) {
		character = len(lineText)
	}

	start := character

	for start > 0 && isWordChar(lineText[start-1]) {
		start--
	}

	end := character

	for end < len(lineText) && isWordChar(lineText[end]) {
		end++
	}

	return lineText[start:end]
}

func isWordChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_'
}

func splitLines(input string) []string {
	return strings.Split(input, "\n")
}

// publishDiagnostics parses the document as compiler JSON and reports any
// read failure or sanity violation found. Violations are reported against
// node ids rather than text ranges, since a violation's position in the
// tree does not correspond to a byte range in the JSON document that
// described it; every diagnostic is anchored at the document's first line.
func (srv *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	text, ok := srv.store.Get(uri)
	if !ok {
		return
	}

	diagnostics := diagnosticsFor(text)

	ctx.Notify("textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func diagnosticsFor(text string) []protocol.Diagnostic {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	result, err := solast.Read([]byte(text), solast.ReadOptions{
		Options:         reader.Options{Lenient: true},
		SkipSanityCheck: true,
	})
	if err != nil {
		return []protocol.Diagnostic{readErrorDiagnostic(err)}
	}

	var diagnostics []protocol.Diagnostic

	for _, unit := range result.Units {
		summary := sanity.Report(result.Ctx, unit)
		for _, v := range summary.Violations {
			diagnostics = append(diagnostics, violationDiagnostic(unit.AbsolutePath, v))
		}
	}

	return diagnostics
}

func zeroRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 0},
	}
}

func readErrorDiagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError

	return protocol.Diagnostic{
		Range:    zeroRange(),
		Severity: &severity,
		Source:   stringPtr("solast"),
		Message:  err.Error(),
	}
}

func violationDiagnostic(unitPath string, v sanity.Violation) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning

	return protocol.Diagnostic{
		Range:    zeroRange(),
		Severity: &severity,
		Source:   stringPtr("solast"),
		Message:  unitPath + ": [" + v.Kind + "] node " + strconv.Itoa(v.NodeId) + ": " + v.Message,
	}
}

func stringPtr(s string) *string { return &s }
