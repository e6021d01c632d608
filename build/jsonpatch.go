package build

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml/parser"
	"github.com/peamaeq/makepad/debug"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/token"

	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyJSONPatch applies the add and replace operations of an RFC 6902
// patch to doc. Paths are JSON pointers into the class tree; values are
// converted as in Load. Other operations are reported as ErrUnsupportedOp:
// nodes are never removed from a live document.
func ApplyJSONPatch(doc *live.Document, data []byte, opts ...Option) (*Report, error) {
	l := patchLoader(doc, opts)
	ops, err := jsonpatch.DecodePatch(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	l.src = token.NewSource(l.cfg.file, l.cfg.name, data)
	rep := &Report{Source: l.src}
	for i, op := range ops {
		if err := l.jsonOp(i, op, rep); err != nil {
			return rep, err
		}
	}
	l.bindScopes()
	doc.Recompile = true
	if debug.Patch() {
		debug.Logf("json patched %s: %s\n", l.name(), rep)
	}
	return rep, nil
}

func (l *loader) jsonOp(i int, op jsonpatch.Operation, rep *Report) error {
	kind := op.Kind()
	p, err := op.Path()
	opErr := func(sentinel error, format string, args ...any) {
		rep.Diagnostics = append(rep.Diagnostics, &live.Error{
			Err:  sentinel,
			Span: token.NewSpan(l.cfg.file, 0, 0),
			Path: p,
			Msg:  fmt.Sprintf("operation %d: ", i) + fmt.Sprintf(format, args...),
		})
	}
	if err != nil {
		opErr(ErrSyntax, "%v", err)
		return nil
	}
	switch kind {
	case "add", "replace":
	default:
		opErr(ErrUnsupportedOp, "%s %s", kind, p)
		return nil
	}
	path, err := l.pointer(p)
	if err != nil {
		opErr(ErrSyntax, "%v", err)
		return nil
	}
	if _, ok := l.doc.Scan(path); !ok && kind == "replace" {
		opErr(live.ErrPathNotFound, "replace of missing %s", p)
		return nil
	}
	raw := op["value"]
	if raw == nil {
		opErr(ErrSyntax, "%s %s without a value", kind, p)
		return nil
	}
	f, err := parser.ParseBytes(*raw, 0)
	if err != nil || len(f.Docs) != 1 || f.Docs[0].Body == nil {
		opErr(ErrSyntax, "bad value for %s", p)
		return nil
	}
	tok := token.Token{Type: token.TIdent, Text: l.doc.Names.Format(path[len(path)-1]), Span: token.NewSpan(l.cfg.file, 0, 0)}
	return l.statement(path, tok, f.Docs[0].Body, rep)
}

// pointer interns the reference tokens of a JSON pointer.
func (l *loader) pointer(p string) ([]id.Id, error) {
	rest, ok := strings.CutPrefix(p, "/")
	if !ok || rest == "" {
		return nil, fmt.Errorf("bad pointer %q", p)
	}
	parts := strings.Split(rest, "/")
	res := make([]id.Id, 0, len(parts))
	for _, part := range parts {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if part == "" {
			return nil, fmt.Errorf("empty segment in pointer %q", p)
		}
		seg, err := l.doc.Names.Intern(part)
		if err != nil {
			return nil, err
		}
		res = append(res, seg)
	}
	return res, nil
}
