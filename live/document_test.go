package live

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/token"
)

type docBuilder struct {
	t     *testing.T
	names *id.Registry
	doc   *Document
}

func newBuilder(t *testing.T) *docBuilder {
	t.Helper()
	names := id.NewRegistry()
	return &docBuilder{t: t, names: names, doc: New(1, names)}
}

func (b *docBuilder) id(s string) id.Id {
	b.t.Helper()
	i, err := b.names.Intern(s)
	if err != nil {
		b.t.Fatal(err)
	}
	return i
}

func (b *docBuilder) path(s string) []id.Id {
	b.t.Helper()
	p, err := b.names.ParsePath(s)
	if err != nil {
		b.t.Fatal(err)
	}
	return p
}

func (b *docBuilder) node(key string, v Value) Node {
	tid := b.doc.AddToken(token.Token{Type: token.TIdent, Text: key, Span: token.NewSpan(1, 0, len(key))})
	return Node{ID: b.id(key), TokenID: tid, Value: v}
}

// frame builds Frame { walk: 10, button: Button { label: "Go" } }.
func frame(t *testing.T) *docBuilder {
	b := newBuilder(t)
	d := b.doc
	d.PushNode(0, b.node("Frame", Class(b.id("Frame"), 0, 2)))
	d.PushNode(1, b.node("walk", Int(10)))
	d.PushNode(1, b.node("button", Class(b.id("Button"), 0, 1)))
	d.PushNode(2, b.node("label", d.AddString("Go")))
	return b
}

func TestEndToEndScan(t *testing.T) {
	b := frame(t)
	ptr, ok := b.doc.Scan(b.path("Frame.button.label"))
	if !ok {
		t.Fatal("Frame.button.label not found")
	}
	if diff := cmp.Diff(id.Ptr{Level: 2, Index: 0}, ptr); diff != "" {
		t.Errorf("ptr (-want +got):\n%s", diff)
	}
	n, _ := b.doc.Node(ptr)
	if n.Value.Type != StringType || b.doc.StringOf(n.Value) != "Go" {
		t.Errorf("got %v %q", n.Value.Type, b.doc.StringOf(n.Value))
	}
}

func TestScanFailures(t *testing.T) {
	b := frame(t)
	tests := []struct {
		path string
		err  error
	}{
		{"Frame.walk.x", ErrPathNotObject},
		{"Frame.nope", ErrPathNotFound},
		{"Nope", ErrPathNotFound},
		{"Frame.button.label.deeper", ErrPathNotObject},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			p := b.path(tc.path)
			if _, ok := b.doc.Scan(p); ok {
				t.Fatal("expected scan to fail")
			}
			_, err := b.doc.Resolve(p)
			if !errors.Is(err, tc.err) {
				t.Fatalf("got %v want %v", err, tc.err)
			}
			var lerr *Error
			if !errors.As(err, &lerr) || lerr.Path != tc.path {
				t.Errorf("path in error: %+v", lerr)
			}
			if IsFatal(err) {
				t.Errorf("%v is not fatal", err)
			}
		})
	}
	if _, ok := b.doc.Scan(nil); ok {
		t.Error("empty path resolved")
	}
}

func TestScanForExpand(t *testing.T) {
	b := frame(t)
	d := b.doc
	multi := d.CreateMultiID(b.path("Frame.button.label"))
	ptr, err := d.ScanForExpand(1, 0, 2, d, multi)
	if err != nil {
		t.Fatal(err)
	}
	if ptr != (id.Ptr{Level: 2, Index: 0}) {
		t.Errorf("got %s", ptr)
	}
	if _, err := d.ScanForExpand(1, 0, 2, d, b.id("Frame")); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("single segment: %v", err)
	}
	bad := d.CreateMultiID(b.path("Frame.walk.x"))
	if _, err := d.ScanForExpand(1, 0, 2, d, bad); !errors.Is(err, ErrPathNotObject) {
		t.Errorf("through scalar: %v", err)
	}
}

func TestFetchCrateModule(t *testing.T) {
	b := newBuilder(t)
	d := b.doc
	outer := b.id("makepad_widgets")
	cm := d.FetchCrateModule(d.CreateMultiID([]id.Id{id.Crate, b.id("button")}), outer)
	if diff := cmp.Diff(CrateModule{Crate: outer, Module: b.id("button")}, cm); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	cm = d.FetchCrateModule(d.CreateMultiID([]id.Id{b.id("other"), b.id("view")}), outer)
	if cm.Format(b.names) != "other::view" {
		t.Errorf("got %s", cm.Format(b.names))
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a three segment path")
		}
	}()
	d.FetchCrateModule(d.CreateMultiID(b.path("a.b.c")), outer)
}

func TestRestartFrom(t *testing.T) {
	b := frame(t)
	multi := b.doc.CreateMultiID(b.path("Frame.walk"))
	b.doc.AddScopes(ScopeItem{ID: b.id("x"), Target: LocalTarget(id.Ptr{})})

	next := New(1, nil)
	next.PushNode(0, Node{ID: b.id("stale")})
	next.RestartFrom(b.doc)
	if next.LevelLen(0) != 0 || len(next.Scopes) != 0 {
		t.Errorf("nodes or scopes survived restart")
	}
	if next.PathString(multi) != "Frame.walk" {
		t.Errorf("multi id lost: %s", next.PathString(multi))
	}
	if !next.Recompile || next.Names != b.names {
		t.Errorf("restart did not take over state")
	}
	b.doc.Strings[0] = 'X'
	if next.Strings[0] == 'X' {
		t.Errorf("string pool shared after restart")
	}
}

func TestMarkRewind(t *testing.T) {
	b := frame(t)
	type pools struct {
		Nodes    [][]Node
		MultiIDs []id.Id
		Strings  []rune
		Tokens   []token.Token
		Scopes   []ScopeItem
	}
	snapshot := func() pools {
		p := pools{
			MultiIDs: slices.Clone(b.doc.MultiIDs),
			Strings:  slices.Clone(b.doc.Strings),
			Tokens:   slices.Clone(b.doc.Tokens),
			Scopes:   slices.Clone(b.doc.Scopes),
		}
		for _, nodes := range b.doc.Nodes {
			if len(nodes) > 0 {
				p.Nodes = append(p.Nodes, slices.Clone(nodes))
			}
		}
		return p
	}
	want := snapshot()
	m := b.doc.Mark()
	b.doc.PushNode(0, Node{ID: b.id("extra"), Value: b.doc.AddString("x")})
	b.doc.PushNode(b.doc.Levels()+1, Node{ID: b.id("deep")})
	b.doc.CreateMultiID(b.path("Frame.walk"))
	b.doc.AddToken(token.Token{Text: "extra"})
	b.doc.AddScopes(ScopeItem{ID: b.id("x")})
	b.doc.Rewind(m)
	if diff := cmp.Diff(want, snapshot(), cmpopts.EquateEmpty(), cmp.Comparer(func(a, b token.Span) bool { return a == b })); diff != "" {
		t.Errorf("rewind (-want +got):\n%s", diff)
	}
	if n := b.doc.Vacant(); n != 0 {
		t.Errorf("%d vacant nodes after rewind", n)
	}
}

func TestPathString(t *testing.T) {
	b := newBuilder(t)
	m := b.doc.CreateMultiID(b.path("crate::module::name"))
	if got := b.doc.PathString(m); got != "crate.module.name" {
		t.Errorf("dot: %s", got)
	}
	if got := b.doc.ColonString(m); got != "crate::module::name" {
		t.Errorf("colon: %s", got)
	}
}
