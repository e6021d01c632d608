package main

import (
	"context"
	"sort"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/token"
	"go.lsp.dev/protocol"
)

// legend order, see Initialize
var semanticTypes = map[protocol.SemanticTokenTypes]uint32{
	protocol.SemanticTokenComment:  0,
	protocol.SemanticTokenKeyword:  1,
	protocol.SemanticTokenString:   2,
	protocol.SemanticTokenNumber:   3,
	protocol.SemanticTokenOperator: 4,
	protocol.SemanticTokenProperty: 5,
	protocol.SemanticTokenClass:    6,
	protocol.SemanticTokenVariable: 7,
}

func mapColorToSemanticTokenType(t live.Type, attr encode.ColorAttr) protocol.SemanticTokenTypes {
	switch attr {
	case encode.TagColor:
		return protocol.SemanticTokenClass
	case encode.FieldColor:
		return protocol.SemanticTokenProperty
	case encode.SepColor:
		return protocol.SemanticTokenOperator
	}
	switch t {
	case live.IntType, live.FloatType, live.Vec2Type, live.Vec3Type, live.ColorType:
		return protocol.SemanticTokenNumber
	case live.BoolType, live.UseType:
		return protocol.SemanticTokenKeyword
	case live.IdType:
		return protocol.SemanticTokenVariable
	default:
		return protocol.SemanticTokenString
	}
}

func fnTokenType(t token.TokenType) protocol.SemanticTokenTypes {
	switch t {
	case token.TIdent:
		return protocol.SemanticTokenVariable
	case token.TNumber:
		return protocol.SemanticTokenNumber
	case token.TString:
		return protocol.SemanticTokenString
	case token.TComment:
		return protocol.SemanticTokenComment
	default:
		return protocol.SemanticTokenOperator
	}
}

type tokenInfo struct {
	span      token.Span
	tokenType protocol.SemanticTokenTypes
	modifiers uint32
}

// collectSemanticTokens colors node keys by what they hold and the words
// of function bodies by their token type.
func collectSemanticTokens(doc *live.Document) []tokenInfo {
	var res []tokenInfo
	seen := map[token.TokenID]bool{}
	for level := 0; level < doc.Levels(); level++ {
		for _, n := range doc.Nodes[level] {
			if seen[n.TokenID] {
				continue
			}
			seen[n.TokenID] = true
			attr := encode.FieldColor
			if n.Value.Type == live.ClassType {
				attr = encode.TagColor
			}
			if n.ID.IsEmpty() {
				attr = encode.ValueColor
			}
			res = append(res, tokenInfo{
				span:      doc.TokenSpan(n.TokenID),
				tokenType: mapColorToSemanticTokenType(n.Value.Type, attr),
				modifiers: 1,
			})
			if n.Value.Type != live.FnType {
				continue
			}
			start := int(n.Value.Start)
			for i := start; i < start+int(n.Value.Count) && i < len(doc.Tokens); i++ {
				t := &doc.Tokens[i]
				res = append(res, tokenInfo{span: t.Span, tokenType: fnTokenType(t.Type)})
			}
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].span.Start() < res[j].span.Start() })
	return res
}

// encodeSemanticTokens produces the relative line/column encoding of the
// protocol, keeping tokens of file within [from, to).
func encodeSemanticTokens(doc *document, from, to int) []uint32 {
	var (
		data             []uint32
		lastLine, lastCh int
	)
	for _, ti := range collectSemanticTokens(doc.live) {
		sp := ti.span
		if sp.File() != doc.live.File || sp.Len() == 0 || sp.Start() < from || sp.Start() >= to {
			continue
		}
		line, ch := doc.src.LineCol(sp.Start())
		if len(data) != 0 && line == lastLine && ch == lastCh {
			continue
		}
		deltaCh := ch
		if line == lastLine {
			deltaCh = ch - lastCh
		}
		data = append(data,
			uint32(line-lastLine),
			uint32(deltaCh),
			uint32(sp.Len()),
			semanticTypes[ti.tokenType],
			ti.modifiers)
		lastLine, lastCh = line, ch
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.live == nil {
		return nil, nil
	}
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(doc, 0, len(doc.content))}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.live == nil {
		return nil, nil
	}
	r := params.Range
	from := doc.src.Offset(int(r.Start.Line)+1, int(r.Start.Character)+1)
	to := doc.src.Offset(int(r.End.Line)+1, int(r.End.Character)+1)
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(doc, from, to)}, nil
}
