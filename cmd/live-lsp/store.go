package main

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/peamaeq/makepad/build"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/lsp"
	"github.com/peamaeq/makepad/token"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu    sync.RWMutex
	docs  map[string]*document
	files map[string]id.FileID
	names *id.Registry
}

// document is the latest state of an open file. live is the last version
// that loaded; it survives edits that do not.
type document struct {
	uri     string
	content string
	version int32
	src     *token.Source
	live    *live.Document
	err     error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	file, ok := ds.files[uri]
	if !ok {
		file = id.FileIndex(len(ds.files))
		ds.files[uri] = file
	}
	d := []byte(content)
	next := &document{
		uri:     uri,
		content: content,
		version: version,
		src:     token.NewSource(file, uri, d),
	}
	opts := []build.Option{build.WithRegistry(ds.names), build.WithFile(file), build.WithName(uri)}
	prev := ds.docs[uri]
	if prev != nil && prev.live != nil {
		next.live, next.err = build.Reload(prev.live, d, opts...)
	} else {
		next.live, next.err = build.Load(d, opts...)
	}
	if next.err != nil && prev != nil {
		next.live = prev.live
	}
	ds.docs[uri] = next
	return next
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	diagnostics := []protocol.Diagnostic{}
	if doc.err != nil {
		diagnostics = append(diagnostics, lsp.Diagnostic(doc.err, doc.src))
	}
	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(doc.uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := applyChanges(ctx, doc.content, params.ContentChanges)
	doc = s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

type fullChangesKey struct{}

// markFullChanges notes which content changes of a didChange notification
// carry no range. A missing range decodes as 0:0-0:0, the same as an insert
// at the start of the file.
func markFullChanges(next jsonrpc2.Handler) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if req.Method() != protocol.MethodTextDocumentDidChange {
			return next(ctx, reply, req)
		}
		var raw struct {
			ContentChanges []map[string]json.RawMessage `json:"contentChanges"`
		}
		if err := json.Unmarshal(req.Params(), &raw); err == nil {
			full := make([]bool, len(raw.ContentChanges))
			for i, c := range raw.ContentChanges {
				_, ranged := c["range"]
				full[i] = !ranged
			}
			ctx = context.WithValue(ctx, fullChangesKey{}, full)
		}
		return next(ctx, reply, req)
	}
}

func applyChanges(ctx context.Context, content string, changes []protocol.TextDocumentContentChangeEvent) string {
	full, _ := ctx.Value(fullChangesKey{}).([]bool)
	for i, change := range changes {
		if i < len(full) && full[i] {
			content = change.Text
			continue
		}
		content = applyChange(content, change)
	}
	return content
}

func applyChange(content string, change protocol.TextDocumentContentChangeEvent) string {
	r := change.Range
	runes := []rune(content)
	start := lineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
	end := lineColToOffset(content, int(r.End.Line), int(r.End.Character))
	if start > end || end > len(runes) {
		return content
	}
	return string(runes[:start]) + change.Text + string(runes[end:])
}

// lineColToOffset returns a rune offset.
func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	i := 0
	for _, r := range content {
		if currentLine == line && currentCol == col {
			return i
		}
		if r == '\n' {
			if currentLine == line {
				return i
			}
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
		i++
	}
	return i
}
