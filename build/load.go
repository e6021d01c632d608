package build

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	yamltoken "github.com/goccy/go-yaml/token"
	"github.com/peamaeq/makepad/debug"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/token"
)

// entry is a key, value pair waiting to become a node.
type entry struct {
	key  id.Id
	tok  token.Token
	node ast.Node
}

type loader struct {
	cfg *config
	doc *live.Document
	src *token.Source
	fns []id.Ptr
}

func newLoader(doc *live.Document, cfg *config) *loader {
	return &loader{cfg: cfg, doc: doc}
}

// Load builds a document from a YAML mapping.
func Load(data []byte, opts ...Option) (*live.Document, error) {
	cfg := newConfig(opts)
	if cfg.names == nil {
		cfg.names = id.NewRegistry()
	}
	doc := live.New(cfg.file, cfg.names)
	if err := newLoader(doc, cfg).load(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// Reload builds the next generation of prev from data. The new document
// takes over the pools of prev, so ids created against prev stay valid;
// prev itself is left untouched.
func Reload(prev *live.Document, data []byte, opts ...Option) (*live.Document, error) {
	cfg := newConfig(opts)
	if !cfg.fileSet {
		cfg.file = prev.File
	}
	next := live.New(cfg.file, cfg.names)
	next.RestartFrom(prev)
	if next.Names == nil {
		next.Names = id.NewRegistry()
	}
	cfg.names = next.Names
	if err := newLoader(next, cfg).load(data); err != nil {
		return nil, err
	}
	return next, nil
}

func (l *loader) load(data []byte) error {
	body, err := l.parse(data)
	if err != nil {
		return err
	}
	var entries []entry
	if body != nil {
		entries, err = l.mapEntries(body, false)
		if err != nil {
			return err
		}
	}
	if _, _, err := l.pushRun(0, entries); err != nil {
		return err
	}
	l.bindScopes()
	l.doc.Recompile = true
	if debug.Build() {
		debug.Logf("built %s:\n%s", l.name(), debug.Doc{Document: l.doc})
	}
	return nil
}

func (l *loader) name() string {
	if l.cfg.name != "" {
		return l.cfg.name
	}
	return fmt.Sprintf("file %d", l.cfg.file)
}

// parse returns the body of the single document in data, nil when empty.
func (l *loader) parse(data []byte) (ast.Node, error) {
	l.src = token.NewSource(l.cfg.file, l.cfg.name, data)
	f, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSyntax, l.name(), err)
	}
	switch len(f.Docs) {
	case 0:
		return nil, nil
	case 1:
		if _, ok := f.Docs[0].Body.(*ast.CommentGroupNode); ok {
			return nil, nil
		}
		return f.Docs[0].Body, nil
	default:
		return nil, fmt.Errorf("%w: %s: %d documents, want 1", ErrSyntax, l.name(), len(f.Docs))
	}
}

// pushRun pushes entries as one run at level, then their descendants level
// by level so that every child run is contiguous.
func (l *loader) pushRun(level int, entries []entry) (int, int, error) {
	type pending struct {
		ptr  id.Ptr
		kids []entry
	}
	var queue []pending
	push := func(level int, es []entry) error {
		for _, e := range es {
			v, kids, err := l.value(e)
			if err != nil {
				return err
			}
			tid := l.doc.AddToken(e.tok)
			ptr := id.Ptr{Level: level, Index: l.doc.PushNode(level, live.Node{ID: e.key, TokenID: tid, Value: v})}
			if v.Type == live.FnType {
				l.fns = append(l.fns, ptr)
			}
			if v.Type.HasChildren() {
				queue = append(queue, pending{ptr: ptr, kids: kids})
			}
		}
		return nil
	}
	start := l.doc.LevelLen(level)
	if err := push(level, entries); err != nil {
		return 0, 0, err
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		at := l.doc.LevelLen(p.ptr.Level + 1)
		if err := push(p.ptr.Level+1, p.kids); err != nil {
			return 0, 0, err
		}
		n, _ := l.doc.Node(p.ptr)
		n.Value.Start, n.Value.Count = uint32(at), uint32(len(p.kids))
	}
	return start, len(entries), nil
}

// mapEntries returns the entries of a mapping node. Keys must be plain
// names unless dotted is set, in which case they are returned as they are
// for the caller to split.
func (l *loader) mapEntries(node ast.Node, dotted bool) ([]entry, error) {
	values, ok := mappingValues(node)
	if !ok {
		return nil, l.errAt(ErrUnsupported, node, "", "want a mapping, got %s", node.Type())
	}
	res := make([]entry, 0, len(values))
	for _, mv := range values {
		text := keyText(mv)
		tok := l.token(token.TIdent, text, mv.Key)
		var key id.Id
		if dotted {
			key = id.EmptyID()
		} else {
			segs, err := l.doc.Names.ParsePath(text)
			if err != nil {
				return nil, l.errAt(ErrSyntax, mv.Key, text, "bad key %q: %v", text, err)
			}
			if len(segs) != 1 {
				return nil, l.errAt(ErrUnsupported, mv.Key, text, "dotted key %q outside of a patch", text)
			}
			key = segs[0]
		}
		res = append(res, entry{key: key, tok: tok, node: mv.Value})
	}
	return res, nil
}

func mappingValues(node ast.Node) ([]*ast.MappingValueNode, bool) {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values, true
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}, true
	default:
		return nil, false
	}
}

func keyText(mv *ast.MappingValueNode) string {
	if s, ok := mv.Key.(*ast.StringNode); ok {
		return s.Value
	}
	return mv.Key.GetToken().Value
}

// offset returns the source offset where node starts.
func (l *loader) offset(node ast.Node) int {
	if node == nil {
		return 0
	}
	tk := node.GetToken()
	if tk == nil || tk.Position == nil {
		return 0
	}
	if prev := tk.Prev; prev != nil && prev.Type == yamltoken.TagType && prev.Position != nil && prev.Position.Line == tk.Position.Line {
		return l.afterTag(prev)
	}
	return l.src.Offset(tk.Position.Line, tk.Position.Column)
}

// afterTag returns the offset of the first non blank byte after tag. The
// parser reports the column of a tagged value 0 based, so it is found from
// the tag instead.
func (l *loader) afterTag(tag *yamltoken.Token) int {
	d := l.src.Bytes()
	off := l.src.Offset(tag.Position.Line, tag.Position.Column)
	if i := bytes.Index(d[off:], []byte(tag.Value)); i >= 0 {
		off += i + len(tag.Value)
	}
	for off < len(d) && (d[off] == ' ' || d[off] == '\t') {
		off++
	}
	return off
}

func (l *loader) token(typ token.TokenType, text string, node ast.Node) token.Token {
	off := l.offset(node)
	return token.Token{Type: typ, Text: text, Span: token.NewSpan(l.cfg.file, off, off+len(text))}
}

func (l *loader) errAt(sentinel error, node ast.Node, path, format string, args ...any) *live.Error {
	off := l.offset(node)
	return &live.Error{
		Err:  sentinel,
		Span: token.NewSpan(l.cfg.file, off, off),
		Path: path,
		Msg:  fmt.Sprintf(format, args...),
	}
}
