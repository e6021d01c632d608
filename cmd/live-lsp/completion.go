package main

import (
	"context"
	"sort"

	"github.com/peamaeq/makepad/live"
	"go.lsp.dev/protocol"
)

// Completion offers every key and class name of the open document.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.live == nil {
		return nil, nil
	}
	return &protocol.CompletionList{Items: completionItems(doc.live)}, nil
}

func completionItems(doc *live.Document) []protocol.CompletionItem {
	kinds := map[string]protocol.CompletionItemKind{}
	for level := 0; level < doc.Levels(); level++ {
		for _, n := range doc.Nodes[level] {
			if n.Value.Type == live.ClassType {
				kinds[doc.ColonString(n.Value.ID)] = protocol.CompletionItemKindClass
			}
			if !n.ID.IsSingle() {
				continue
			}
			text, ok := doc.Names.Text(n.ID)
			if !ok {
				continue
			}
			if _, dup := kinds[text]; !dup {
				kinds[text] = protocol.CompletionItemKindProperty
			}
		}
	}
	items := make([]protocol.CompletionItem, 0, len(kinds))
	for label, kind := range kinds {
		items = append(items, protocol.CompletionItem{Label: label, Kind: kind})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}
