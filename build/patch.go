package build

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml/ast"
	"github.com/peamaeq/makepad/debug"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/token"
)

// Report summarizes one patch pass.
type Report struct {
	Statements int
	Replaced   int
	Added      int
	// Diagnostics holds the statements that were skipped, each a
	// *live.Error.
	Diagnostics []error
	Source      *token.Source
}

// Err joins the diagnostics, nil when there are none.
func (r *Report) Err() error {
	return errors.Join(r.Diagnostics...)
}

func (r *Report) String() string {
	return fmt.Sprintf("%d statements: %d replaced, %d added, %d skipped",
		r.Statements, r.Replaced, r.Added, len(r.Diagnostics))
}

func patchLoader(doc *live.Document, opts []Option) *loader {
	cfg := newConfig(opts)
	if doc.Names == nil {
		doc.Names = cfg.names
		if doc.Names == nil {
			doc.Names = id.NewRegistry()
		}
	}
	cfg.names = doc.Names
	if !cfg.fileSet {
		cfg.file = doc.File
	}
	return newLoader(doc, cfg)
}

// Patch applies a YAML overlay to doc. Untagged mappings are walked, so
//
//	Frame:
//	  button.label: Stop
//
// writes the single statement Frame.button.label. A tagged mapping replaces
// or adds the whole class it names. Statements that fail to resolve are
// skipped and reported; an error is returned only when the document can no
// longer be trusted or the input does not parse.
func Patch(doc *live.Document, data []byte, opts ...Option) (*Report, error) {
	l := patchLoader(doc, opts)
	body, err := l.parse(data)
	if err != nil {
		return nil, err
	}
	rep := &Report{Source: l.src}
	if body == nil {
		return rep, nil
	}
	if err := l.statements(nil, body, rep); err != nil {
		return rep, err
	}
	l.bindScopes()
	doc.Recompile = true
	if debug.Patch() {
		debug.Logf("patched %s: %s\n%s", l.name(), rep, debug.Doc{Document: doc})
	}
	return rep, nil
}

func (l *loader) statements(prefix []id.Id, node ast.Node, rep *Report) error {
	entries, err := l.mapEntries(node, true)
	if err != nil {
		rep.Diagnostics = append(rep.Diagnostics, err)
		return nil
	}
	values, _ := mappingValues(node)
	for i, e := range entries {
		text := e.tok.Text
		segs, err := l.doc.Names.ParsePath(text)
		if err != nil {
			rep.Diagnostics = append(rep.Diagnostics, l.errAt(ErrSyntax, values[i].Key, text, "bad key %q: %v", text, err))
			continue
		}
		path := append(slices.Clone(prefix), segs...)
		if _, ok := e.node.(*ast.MappingNode); ok {
			if err := l.statements(path, e.node, rep); err != nil {
				return err
			}
			continue
		}
		if _, ok := e.node.(*ast.MappingValueNode); ok {
			if err := l.statements(path, e.node, rep); err != nil {
				return err
			}
			continue
		}
		if err := l.statement(path, e.tok, e.node, rep); err != nil {
			return err
		}
	}
	return nil
}

// statement writes one value at path. It returns only fatal errors.
func (l *loader) statement(path []id.Id, tok token.Token, node ast.Node, rep *Report) error {
	rep.Statements++
	text := l.doc.Names.JoinPath(path, id.DotSep)
	fail := func(err error) error {
		if live.IsFatal(err) {
			return err
		}
		rep.Diagnostics = append(rep.Diagnostics, err)
		return nil
	}
	if len(path) > 1 {
		// validate the parent before anything is pushed
		if _, err := l.doc.Resolve(path[:len(path)-1]); err != nil {
			return fail(err)
		}
		if parent, _ := l.doc.Scan(path[:len(path)-1]); !l.isClass(parent) {
			return fail(&live.Error{
				Err:  live.ErrPathNotObject,
				Span: tok.Span,
				Path: text,
				Msg:  fmt.Sprintf("cannot write %s: parent is not a class", text),
			})
		}
	}
	e := entry{key: path[len(path)-1], tok: tok, node: node}
	mark, fns := l.doc.Mark(), len(l.fns)
	rewind := func(err error) error {
		l.doc.Rewind(mark)
		l.fns = l.fns[:fns]
		return fail(err)
	}
	v, kids, err := l.value(e)
	if err != nil {
		return rewind(err)
	}
	if v.Type.HasChildren() {
		start, count, err := l.pushRun(len(path), kids)
		if err != nil {
			return rewind(err)
		}
		v.Start, v.Count = uint32(start), uint32(count)
	}
	nid := path[0]
	if len(path) > 1 {
		nid = l.doc.CreateMultiID(path)
	}
	_, existed := l.doc.Scan(path)
	tid := l.doc.AddToken(tok)
	if _, _, err := l.doc.WriteOrAddNode(0, 0, l.doc.LevelLen(0), l.doc, live.Node{ID: nid, TokenID: tid, Value: v}); err != nil {
		return fail(err)
	}
	if existed {
		rep.Replaced++
	} else {
		rep.Added++
	}
	if v.Type == live.FnType {
		if ptr, ok := l.doc.Scan(path); ok {
			l.fns = append(l.fns, ptr)
		}
	}
	if debug.Patch() {
		debug.Logf("patch %s existed=%t\n", text, existed)
	}
	return nil
}

func (l *loader) isClass(ptr id.Ptr) bool {
	n, ok := l.doc.Node(ptr)
	return ok && n.Value.Type == live.ClassType
}
