package main

import (
	"context"
	"strings"

	"github.com/goccy/go-yaml/parser"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.err != nil {
		return nil, nil
	}
	formatted, ok := formatSource(doc.content)
	if !ok || formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	lines := strings.Count(doc.content, "\n")
	if !strings.HasSuffix(doc.content, "\n") {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(lines), Character: 0},
			},
			NewText: formatted,
		},
	}, nil
}

// formatSource reprints content through the YAML printer, keeping comments
// and tags.
func formatSource(content string) (string, bool) {
	f, err := parser.ParseBytes([]byte(content), parser.ParseComments)
	if err != nil || len(f.Docs) != 1 {
		return "", false
	}
	return f.String(), true
}
