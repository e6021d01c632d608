package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/peamaeq/makepad/format"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	format        format.Format

	Color func(live.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 4}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes every root of doc.
func Encode(doc *live.Document, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if !es.format.IsLive() {
		return encodeTree(Tree(doc), w, es)
	}
	e := &encoder{doc: doc, es: es}
	for i := range doc.Roots() {
		e.node(id.Ptr{Level: 0, Index: i})
		e.b.WriteString("\n")
	}
	return writeString(w, e.b.String())
}

// EncodeNode writes the subtree at ptr.
func EncodeNode(doc *live.Document, ptr id.Ptr, w io.Writer, opts ...EncodeOption) error {
	if _, ok := doc.Node(ptr); !ok {
		return fmt.Errorf("%w: no node at %s", ErrEncoding, ptr)
	}
	es := newState(opts)
	if !es.format.IsLive() {
		return encodeTree([]*TreeNode{treeNode(doc, ptr)}, w, es)
	}
	e := &encoder{doc: doc, es: es}
	e.node(ptr)
	e.b.WriteString("\n")
	return writeString(w, e.b.String())
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

type encoder struct {
	doc *live.Document
	es  *EncState
	b   strings.Builder
}

func (e *encoder) write(t live.Type, a ColorAttr, s string) {
	if e.es.Color != nil {
		s = e.es.Color(t, a, s)
	}
	e.b.WriteString(s)
}

func (e *encoder) nl() {
	e.b.WriteString("\n")
	e.b.WriteString(strings.Repeat(" ", e.es.indent*e.es.depth))
}

func (e *encoder) node(ptr id.Ptr) {
	n, _ := e.doc.Node(ptr)
	v := n.Value
	if v.Type == live.ClassType && v.ID == n.ID {
		e.write(v.Type, TagColor, e.doc.PathString(v.ID))
		e.b.WriteString(" ")
		e.children(ptr, v.Type, "{", "}")
		return
	}
	if !n.ID.IsEmpty() {
		e.write(v.Type, FieldColor, e.doc.PathString(n.ID))
		e.write(v.Type, SepColor, ":")
	}
	switch v.Type {
	case live.ClassType:
		e.write(v.Type, TagColor, e.doc.PathString(v.ID))
		e.b.WriteString(" ")
		e.children(ptr, v.Type, "{", "}")
	case live.ObjectType:
		e.children(ptr, v.Type, "{", "}")
	case live.ArrayType:
		e.children(ptr, v.Type, "[", "]")
	case live.CallType:
		e.write(v.Type, TagColor, e.doc.ColonString(v.ID))
		e.children(ptr, v.Type, "(", ")")
	default:
		e.write(v.Type, ValueColor, Scalar(e.doc, v))
	}
}

func (e *encoder) children(ptr id.Ptr, t live.Type, open, close string) {
	n, _ := e.doc.Node(ptr)
	start, _ := n.Value.Children()
	kids := e.doc.Children(ptr)
	e.write(t, SepColor, open)
	simple := true
	for _, k := range kids {
		simple = simple && k.Value.IsSimple()
	}
	if simple {
		for i := range kids {
			if i > 0 {
				e.write(t, SepColor, ", ")
			}
			e.node(id.Ptr{Level: ptr.Level + 1, Index: start + i})
		}
		e.write(t, SepColor, close)
		return
	}
	e.es.depth++
	for i := range kids {
		e.nl()
		e.node(id.Ptr{Level: ptr.Level + 1, Index: start + i})
	}
	e.es.depth--
	e.nl()
	e.write(t, SepColor, close)
}

// Scalar renders a value that is printed without children.
func Scalar(doc *live.Document, v live.Value) string {
	switch v.Type {
	case live.BoolType:
		return strconv.FormatBool(v.Bool)
	case live.IntType:
		return strconv.FormatInt(v.Int, 10)
	case live.FloatType:
		return formatFloat(v.Float, 64)
	case live.ColorType:
		return fmt.Sprintf("#%08x", v.Color)
	case live.Vec2Type:
		return "vec2(" + formatFloat(float64(v.Vec[0]), 32) + ", " + formatFloat(float64(v.Vec[1]), 32) + ")"
	case live.Vec3Type:
		return "vec3(" + formatFloat(float64(v.Vec[0]), 32) + ", " + formatFloat(float64(v.Vec[1]), 32) +
			", " + formatFloat(float64(v.Vec[2]), 32) + ")"
	case live.IdType:
		return doc.ColonString(v.ID)
	case live.StringType:
		return strconv.Quote(doc.StringOf(v))
	case live.UseType:
		return "use " + doc.ColonString(v.ID)
	case live.FnType:
		return formatFn(doc, v)
	default:
		return "<" + v.Type.String() + ">"
	}
}

func formatFn(doc *live.Document, v live.Value) string {
	var b strings.Builder
	b.WriteString("fn{")
	start, end := int(v.Start), int(v.Start+v.Count)
	if end <= len(doc.Tokens) {
		for i, tok := range doc.Tokens[start:end] {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(tok.Text)
		}
	}
	b.WriteString("}")
	start, end = int(v.ScopeStart), int(v.ScopeStart+v.ScopeCount)
	if v.ScopeCount == 0 || end > len(doc.Scopes) {
		return b.String()
	}
	b.WriteString("[")
	for i, item := range doc.Scopes[start:end] {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(doc.Names.Format(item.ID))
		b.WriteString(":")
		b.WriteString(item.Target.Format(doc.Names))
	}
	b.WriteString("]")
	return b.String()
}

// formatFloat is the shortest representation that reads back as the same
// float, with a trailing .0 for integral values.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
