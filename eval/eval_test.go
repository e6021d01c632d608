package eval

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

func frame() *live.Document {
	names := id.NewRegistry()
	doc := live.New(0, names)
	n := names.MustIntern
	doc.PushNode(0, live.Node{ID: n("Frame"), Value: live.Class(n("Frame"), 0, 3)})
	doc.PushNode(1, live.Node{ID: n("walk"), Value: live.Int(10)})
	doc.PushNode(1, live.Node{ID: n("button"), Value: live.Class(n("Button"), 0, 1)})
	doc.PushNode(1, live.Node{ID: n("size"), Value: live.Vec2(100, 20)})
	doc.PushNode(2, live.Node{ID: n("label"), Value: doc.AddString("Go")})
	return doc
}

func TestEval(t *testing.T) {
	doc := frame()
	tests := []struct {
		expr string
		want any
	}{
		{`get("Frame.walk") * 2`, 20},
		{`get("Frame.button.label")`, "Go"},
		{`has("Frame.button") && !has("Frame.nope")`, true},
		{`class("Frame.button")`, "Button"},
		{`class("Frame.walk")`, ""},
		{`count("Frame")`, 3},
		{`doc.Frame.button.label + "!"`, "Go!"},
		{`get("Frame.size")[0]`, 100.0},
		{`scale * get("Frame.walk")`, 30},
		{`whereami()`, "Frame.button.label"},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			got, err := Eval(doc, tc.expr, Env{"scale": 3}, At(id.Ptr{Level: 2, Index: 0}))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	doc := frame()
	_, err := Eval(doc, `get("Frame.walk.x")`, nil)
	if err == nil || !strings.Contains(err.Error(), "not an object path") {
		t.Errorf("got %v", err)
	}
	if _, err := Eval(doc, `get(`, nil); err == nil {
		t.Error("expected compile error")
	}
}

func TestToAny(t *testing.T) {
	doc := frame()
	want := map[string]any{
		"Frame": map[string]any{
			"walk":   10,
			"button": map[string]any{"label": "Go"},
			"size":   []any{100.0, 20.0},
		},
	}
	if diff := cmp.Diff(want, DocToAny(doc)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	d, err := MarshalJSON(doc, id.Ptr{Level: 1, Index: 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != `{"label":"Go"}` {
		t.Errorf("got %s", d)
	}
}

func TestSymbols(t *testing.T) {
	if err := Register(Get()); !errors.Is(err, ErrSymbolExists) {
		t.Errorf("got %v", err)
	}
	if Lookup("whereami") == nil {
		t.Error("whereami not registered")
	}
	var names []string
	for _, s := range Symbols() {
		names = append(names, s.String())
	}
	want := []string{"class", "count", "get", "getenv", "has", "whereami"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
