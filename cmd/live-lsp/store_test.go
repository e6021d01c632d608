package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peamaeq/makepad/id"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

const frameSrc = `Frame:
  walk: 10
  button: !Button
    label: Go
`

func newStore() *documentStore {
	return &documentStore{
		docs:  map[string]*document{},
		files: map[string]id.FileID{},
		names: id.NewRegistry(),
	}
}

func TestApplyChange(t *testing.T) {
	content := "ab\ncd\nef"
	tests := []struct {
		name   string
		change protocol.TextDocumentContentChangeEvent
		want   string
	}{
		{
			name:   "insert at start",
			change: protocol.TextDocumentContentChangeEvent{Text: "# c\n"},
			want:   "# c\nab\ncd\nef",
		},
		{
			name: "insert",
			change: protocol.TextDocumentContentChangeEvent{
				Range: protocol.Range{
					Start: protocol.Position{Line: 1, Character: 1},
					End:   protocol.Position{Line: 1, Character: 1},
				},
				Text: "Z",
			},
			want: "ab\ncZd\nef",
		},
		{
			name: "replace across lines",
			change: protocol.TextDocumentContentChangeEvent{
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 1},
					End:   protocol.Position{Line: 2, Character: 1},
				},
				Text: "-",
			},
			want: "a-f",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyChange(content, tt.change); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestDidChangeFullAndRanged(t *testing.T) {
	server := &Server{docs: newStore()}
	handler := markFullChanges(protocol.ServerHandler(server, nil))
	uri := "file:///frame.yaml"
	ctx := context.Background()
	err := server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.DocumentURI(uri), Version: 1, Text: frameSrc},
	})
	if err != nil {
		t.Fatal(err)
	}
	reply := func(context.Context, any, error) error { return nil }
	tests := []struct {
		name    string
		changes string
		want    string
	}{
		{
			name:    "insert at start",
			changes: `[{"range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}},"text":"# c\n"}]`,
			want:    "# c\n" + frameSrc,
		},
		{
			name:    "full text",
			changes: `[{"text":"Theme:\n  dark: true\n"}]`,
			want:    "Theme:\n  dark: true\n",
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := fmt.Sprintf(`{"textDocument":{"uri":%q,"version":%d},"contentChanges":%s}`, uri, i+2, tt.changes)
			req, err := jsonrpc2.NewNotification(protocol.MethodTextDocumentDidChange, json.RawMessage(params))
			if err != nil {
				t.Fatal(err)
			}
			if err := handler(ctx, reply, req); err != nil {
				t.Fatal(err)
			}
			if got := server.docs.get(uri).content; got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestStoreKeepsLastGoodDocument(t *testing.T) {
	ds := newStore()
	uri := "file:///frame.yaml"
	doc := ds.put(uri, frameSrc, 1)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	good := doc.live
	doc = ds.put(uri, "Frame: [\n", 2)
	if doc.err == nil {
		t.Fatal("expected a syntax error")
	}
	if doc.live != good {
		t.Errorf("broken edit replaced the last good document")
	}
	doc = ds.put(uri, strings.Replace(frameSrc, "10", "20", 1), 3)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	if doc.live == good {
		t.Errorf("expected a new generation")
	}
	if ds.files[uri] != 0 {
		t.Errorf("file id changed: %d", ds.files[uri])
	}
}

func TestHoverText(t *testing.T) {
	ds := newStore()
	doc := ds.put("file:///frame.yaml", frameSrc, 1)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	off := strings.Index(frameSrc, "label")
	ptr, ok := findNodeAt(doc.live, off+1)
	if !ok {
		t.Fatal("no node at label")
	}
	got := buildHoverText(doc.live, ptr)
	want := "**Path:** `Frame.button.label`\n\n**Type:** String\n\n**Value:** `\"Go\"`"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hover (-want +got):\n%s", diff)
	}
}

func TestCompletionItems(t *testing.T) {
	ds := newStore()
	doc := ds.put("file:///frame.yaml", frameSrc, 1)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	var got []string
	for _, it := range completionItems(doc.live) {
		got = append(got, it.Label)
	}
	want := []string{"Button", "Frame", "button", "label", "walk"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
}

func TestSemanticTokensSorted(t *testing.T) {
	ds := newStore()
	doc := ds.put("file:///frame.yaml", frameSrc, 1)
	if doc.err != nil {
		t.Fatal(doc.err)
	}
	data := encodeSemanticTokens(doc, 0, len(frameSrc))
	if len(data) == 0 || len(data)%5 != 0 {
		t.Fatalf("bad token data %v", data)
	}
	// Frame at 0:0
	if data[0] != 0 || data[1] != 0 || data[2] != 5 {
		t.Errorf("first token %v", data[:5])
	}
}
