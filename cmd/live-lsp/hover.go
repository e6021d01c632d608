package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/eval"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.live == nil {
		return nil, nil
	}
	pos := params.Position
	off := doc.src.Offset(int(pos.Line)+1, int(pos.Character)+1)
	ptr, ok := findNodeAt(doc.live, off)
	if !ok {
		return nil, nil
	}
	hoverText := buildHoverText(doc.live, ptr)
	if hoverText == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

// findNodeAt returns the node with the narrowest token span containing off,
// preferring deeper levels on ties.
func findNodeAt(doc *live.Document, off int) (id.Ptr, bool) {
	var (
		best    id.Ptr
		bestLen = -1
	)
	for level := 0; level < doc.Levels(); level++ {
		for i, n := range doc.Nodes[level] {
			sp := doc.TokenSpan(n.TokenID)
			if sp.File() != doc.File || off < sp.Start() || off > sp.End() {
				continue
			}
			if bestLen == -1 || sp.Len() <= bestLen {
				best = id.Ptr{Level: level, Index: i}
				bestLen = sp.Len()
			}
		}
	}
	return best, bestLen != -1
}

func buildHoverText(doc *live.Document, ptr id.Ptr) string {
	n, ok := doc.Node(ptr)
	if !ok {
		return ""
	}
	var parts []string
	if path, ok := eval.PathTo(doc, ptr); ok {
		parts = append(parts, fmt.Sprintf("**Path:** `%s`", doc.Names.JoinPath(path, id.DotSep)))
	}
	parts = append(parts, fmt.Sprintf("**Type:** %s", n.Value.Type))
	switch {
	case n.Value.IsSimple() || n.Value.Type == live.FnType:
		val := encode.Scalar(doc, n.Value)
		if len(val) > 50 {
			val = val[:50] + "..."
		}
		parts = append(parts, fmt.Sprintf("**Value:** `%s`", val))
	case n.Value.Type == live.ClassType || n.Value.Type == live.CallType:
		parts = append(parts, fmt.Sprintf("**Class:** `%s`", doc.ColonString(n.Value.ID)))
		fallthrough
	default:
		if _, count := n.Value.Children(); count != 0 {
			parts = append(parts, fmt.Sprintf("%d children", count))
		}
	}
	return strings.Join(parts, "\n\n")
}
