package build

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml/ast"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/token"
)

const (
	objTag   = "obj"
	vec2Tag  = "vec2"
	vec3Tag  = "vec3"
	colorTag = "color"
	idTag    = "id"
	useTag   = "use"
	fnTag    = "fn"
)

func untag(n ast.Node) (ast.Node, string) {
	if t, ok := n.(*ast.TagNode); ok {
		return t.Value, strings.TrimPrefix(t.Start.Value, "!")
	}
	return n, ""
}

// value converts the YAML value of e. Composite values are returned with an
// empty child run together with the entries of their children.
func (l *loader) value(e entry) (live.Value, []entry, error) {
	node, tag := untag(e.node)
	path := l.doc.Names.Format(e.key)
	if node == nil {
		return live.Value{}, nil, l.errAt(ErrUnsupported, e.node, path, "missing value for %s", path)
	}
	if _, ok := mappingValues(node); ok {
		kids, err := l.mapEntries(node, false)
		if err != nil {
			return live.Value{}, nil, err
		}
		switch {
		case tag == objTag, tag == "" && e.key.IsEmpty():
			return live.Object(0, 0), kids, nil
		case tag == "":
			return live.Class(e.key, 0, 0), kids, nil
		}
		class, err := l.pathID(node, tag)
		if err != nil {
			return live.Value{}, nil, err
		}
		return live.Class(class, 0, 0), kids, nil
	}
	if seq, ok := node.(*ast.SequenceNode); ok {
		switch tag {
		case vec2Tag, vec3Tag:
			return l.vector(seq, tag, path)
		}
		kids := make([]entry, 0, len(seq.Values))
		for _, el := range seq.Values {
			kids = append(kids, entry{
				key:  id.EmptyID(),
				tok:  l.token(token.TUnknown, el.GetToken().Value, el),
				node: el,
			})
		}
		if tag == "" {
			return live.Array(0, 0), kids, nil
		}
		target, err := l.pathID(node, tag)
		if err != nil {
			return live.Value{}, nil, err
		}
		return live.Call(target, 0, 0), kids, nil
	}
	switch tag {
	case "":
		v, err := l.scalar(node, path)
		return v, nil, err
	case colorTag:
		c, err := parseColor(stringOf(node))
		if err != nil {
			return live.Value{}, nil, l.errAt(ErrUnsupported, node, path, "%s: %v", path, err)
		}
		return live.Color(c), nil, nil
	case idTag:
		i, err := l.pathID(node, stringOf(node))
		return live.IdValue(i), nil, err
	case useTag:
		segs, err := l.doc.Names.ParsePath(stringOf(node))
		if err != nil || len(segs) != 2 {
			return live.Value{}, nil, l.errAt(ErrUnsupported, node, path, "use wants crate::module, got %q", stringOf(node))
		}
		return live.Use(l.doc.CreateMultiID(segs)), nil, nil
	case fnTag:
		return l.fn(node), nil, nil
	default:
		return live.Value{}, nil, l.errAt(ErrUnsupported, node, path, "tag !%s on %s", tag, node.Type())
	}
}

// pathID interns a name or a :: path. Paths become Multi ids.
func (l *loader) pathID(node ast.Node, text string) (id.Id, error) {
	segs, err := l.doc.Names.ParsePath(text)
	if err != nil {
		return 0, l.errAt(ErrSyntax, node, text, "bad name %q: %v", text, err)
	}
	if len(segs) == 1 {
		return segs[0], nil
	}
	return l.doc.CreateMultiID(segs), nil
}

func (l *loader) scalar(node ast.Node, path string) (live.Value, error) {
	switch n := node.(type) {
	case *ast.BoolNode:
		return live.Bool(n.Value), nil
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return live.Int(v), nil
		case uint64:
			if v <= math.MaxInt64 {
				return live.Int(int64(v)), nil
			}
		}
		return live.Value{}, l.errAt(ErrUnsupported, node, path, "integer %s out of range", n.GetToken().Value)
	case *ast.FloatNode:
		return live.Float(n.Value), nil
	case *ast.StringNode:
		return l.doc.AddString(n.Value), nil
	case *ast.LiteralNode:
		return l.doc.AddString(n.Value.Value), nil
	default:
		return live.Value{}, l.errAt(ErrUnsupported, node, path, "%s value for %s", node.Type(), path)
	}
}

func floatOf(node ast.Node) (float64, bool) {
	node, _ = untag(node)
	switch n := node.(type) {
	case *ast.FloatNode:
		return n.Value, true
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return float64(v), true
		case uint64:
			return float64(v), true
		}
	}
	return 0, false
}

func stringOf(node ast.Node) string {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value
	case *ast.LiteralNode:
		return n.Value.Value
	default:
		return node.GetToken().Value
	}
}

func (l *loader) vector(seq *ast.SequenceNode, tag, path string) (live.Value, []entry, error) {
	want := 2
	if tag == vec3Tag {
		want = 3
	}
	if len(seq.Values) != want {
		return live.Value{}, nil, l.errAt(ErrUnsupported, seq, path, "%s wants %d numbers, got %d", tag, want, len(seq.Values))
	}
	var xs [3]float32
	for i, el := range seq.Values {
		f, ok := floatOf(el)
		if !ok {
			return live.Value{}, nil, l.errAt(ErrUnsupported, el, path, "%s component %d is not a number", tag, i)
		}
		xs[i] = float32(f)
	}
	if want == 2 {
		return live.Vec2(xs[0], xs[1]), nil, nil
	}
	return live.Vec3(xs[0], xs[1], xs[2]), nil, nil
}

// parseColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa and returns
// 0xRRGGBBAA.
func parseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, c := range hex {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		hex = b.String()
	}
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// fn stores the words of a function body as tokens spanning their source
// text. Scopes are bound once the whole document is known.
func (l *loader) fn(node ast.Node) live.Value {
	d := l.src.Bytes()
	at := min(l.offset(node), len(d))
	start := len(l.doc.Tokens)
	for _, word := range strings.Fields(stringOf(node)) {
		from := at
		if i := bytes.Index(d[at:], []byte(word)); i >= 0 {
			from = at + i
			at = from + len(word)
		}
		l.doc.AddToken(token.Token{
			Type: wordType(word),
			Text: word,
			Span: token.NewSpan(l.cfg.file, from, at),
		})
	}
	return live.Fn(uint32(start), uint32(len(l.doc.Tokens)-start), 0, 0)
}

func wordType(w string) token.TokenType {
	r := []rune(w)[0]
	switch {
	case unicode.IsLetter(r) || r == '_':
		return token.TIdent
	case unicode.IsDigit(r):
		return token.TNumber
	default:
		return token.TPunct
	}
}

// bindScopes resolves the identifiers of every function loaded in this
// pass against the roots of the document.
func (l *loader) bindScopes() {
	outer := id.Crate
	if l.cfg.crate != "" {
		outer = l.doc.Names.MustIntern(l.cfg.crate)
	}
	for _, ptr := range l.fns {
		n, ok := l.doc.Node(ptr)
		if !ok || n.Value.Type != live.FnType {
			continue
		}
		var items []live.ScopeItem
		seen := map[id.Id]bool{}
		for _, tok := range l.doc.Tokens[n.Value.Start : n.Value.Start+n.Value.Count] {
			if tok.Type != token.TIdent {
				continue
			}
			name := id.FromText(tok.Text)
			if seen[name] {
				continue
			}
			seen[name] = true
			for i, root := range l.doc.Roots() {
				if root.ID != name {
					continue
				}
				at := id.Ptr{Level: 0, Index: i}
				target := live.LocalTarget(at)
				if root.Value.Type == live.UseType {
					target = live.UseTarget(l.doc.FetchCrateModule(root.Value.ID, outer), at)
				}
				items = append(items, live.ScopeItem{ID: name, Target: target})
				break
			}
		}
		start, count := l.doc.AddScopes(items...)
		n.Value.ScopeStart, n.Value.ScopeCount = start, count
	}
	l.fns = l.fns[:0]
}
