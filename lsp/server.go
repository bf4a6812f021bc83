// Package lsp serves lambda expression documents over the Language Server
// Protocol. Every non-empty line of a document is one expression.
package lsp

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/dhamidi/lamcyk/lambda"
	"github.com/dhamidi/lamcyk/lex"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "lamcyk"

var log = commonlog.GetLogger("lamcyk.lsp")

type Server struct {
	analyzer *lambda.Analyzer
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu    sync.Mutex
	files map[protocol.DocumentUri]string
}

func NewServer(analyzer *lambda.Analyzer, version string) *Server {
	ls := &Server{
		analyzer: analyzer,
		version:  version,
		files:    map[protocol.DocumentUri]string{},
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.files, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	ls.mu.Lock()
	text, ok := ls.files[params.TextDocument.URI]
	ls.mu.Unlock()
	if !ok {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	line := int(params.Position.Line)
	if line >= len(lines) {
		return nil, nil
	}
	value, ok := ls.hover(lines[line])
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
	}, nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.files[uri] = text
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: ls.diagnose(text),
	})
}

// diagnose reports every non-empty line that the grammar rejects. The range
// covers the offending token, or the end of the line when the expression is
// incomplete.
func (ls *Server) diagnose(text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for i, line := range strings.Split(text, "\n") {
		tokens := lex.Scan(line)
		if len(tokens) == 0 {
			continue
		}
		res, err := ls.analyzer.Analyze(line)
		if err == nil && res.Accepted {
			continue
		}

		first, last := tokens[0], tokens[len(tokens)-1]
		start, end := first.Position.Offset, last.End().Offset
		message := "expression rejected by grammar"
		switch {
		case err != nil:
			message = err.Error()
		case res.Syntax != nil && res.Syntax.EOF:
			start = end
			message = res.Syntax.Error()
		case res.Syntax != nil:
			tok := tokens[res.Syntax.Index]
			start, end = tok.Position.Offset, tok.End().Offset
			message = res.Syntax.Error()
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(i), Character: character(line, start)},
				End:   protocol.Position{Line: protocol.UInteger(i), Character: character(line, end)},
			},
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(lsName),
			Message:  message,
		})
	}
	return diagnostics
}

// hover describes the free variables of an accepted line.
func (ls *Server) hover(line string) (string, bool) {
	res, err := ls.analyzer.Analyze(line)
	if err != nil || !res.Accepted {
		return "", false
	}
	if len(res.Free) == 0 {
		return "no free variables", true
	}
	return fmt.Sprintf("free variables: `%s`", strings.Join(res.Free, "`, `")), true
}

// character converts a byte offset within line to UTF-16 code units.
func character(line string, offset int) protocol.UInteger {
	n := 0
	for _, r := range line[:offset] {
		n += utf16.RuneLen(r)
	}
	return protocol.UInteger(n)
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
