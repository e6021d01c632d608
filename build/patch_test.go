package build

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/live"
)

func TestPatch(t *testing.T) {
	tests := []struct {
		name     string
		patch    string
		replaced int
		added    int
		want     string
	}{
		{
			name:     "flattened keys",
			patch:    "Frame:\n  button.label: Stop\n  walk: 20\n",
			replaced: 2,
			want:     "Frame {\n    walk:20\n    button:Button {label:\"Stop\"}\n}",
		},
		{
			name:     "dotted statement",
			patch:    "Frame.button.label: Stop\n",
			replaced: 1,
			want:     "Frame {\n    walk:10\n    button:Button {label:\"Stop\"}\n}",
		},
		{
			name:  "new property",
			patch: "Frame:\n  height: 5\n",
			added: 1,
			want:  "Frame {\n    walk:10\n    button:Button {label:\"Go\"}\n    height:5\n}",
		},
		{
			name:  "new class",
			patch: "Frame:\n  panel: !Panel\n    x: 1\n",
			added: 1,
			want: strings.Join([]string{
				"Frame {",
				"    walk:10",
				"    button:Button {label:\"Go\"}",
				"    panel:Panel {x:1}",
				"}",
			}, "\n"),
		},
		{
			name:     "replace class",
			patch:    "Frame:\n  button: !Link\n    href: x\n",
			replaced: 1,
			want:     "Frame {\n    walk:10\n    button:Link {href:\"x\"}\n}",
		},
		{
			name:  "new root",
			patch: "Theme: !Theme\n  dark: true\n",
			added: 1,
			want:  frameLive + "\nTheme {dark:true}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustLoad(t, frameSrc)
			doc.Recompile = false
			rep, err := Patch(doc, []byte(tt.patch))
			if err != nil {
				t.Fatal(err)
			}
			if err := rep.Err(); err != nil {
				t.Fatalf("diagnostics: %v", err)
			}
			if rep.Replaced != tt.replaced || rep.Added != tt.added {
				t.Errorf("report %s", rep)
			}
			if diff := cmp.Diff(tt.want, encode.MustString(doc)); diff != "" {
				t.Errorf("render (-want +got):\n%s", diff)
			}
			if !doc.Recompile {
				t.Error("Recompile not set")
			}
		})
	}
}

func TestPatchDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		want  error
	}{
		{"missing class", "Nope.x: 1\n", live.ErrPathNotFound},
		{"leaf parent", "Frame.walk.x: 1\n", live.ErrPathNotObject},
		{"bad value", "Frame.walk: !wat 1\n", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustLoad(t, frameSrc)
			rep, err := Patch(doc, []byte(tt.patch))
			if err != nil {
				t.Fatal(err)
			}
			if len(rep.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics", len(rep.Diagnostics))
			}
			if !errors.Is(rep.Diagnostics[0], tt.want) {
				t.Errorf("got %v, want %v", rep.Diagnostics[0], tt.want)
			}
			if got := encode.MustString(doc); got != frameLive {
				t.Errorf("document changed:\n%s", got)
			}
		})
	}
}

func TestPatchNestedFailureLeavesNoNodes(t *testing.T) {
	doc := mustLoad(t, frameSrc)
	sizes := func() []int {
		res := []int{len(doc.Strings), len(doc.Tokens), len(doc.MultiIDs)}
		for _, nodes := range doc.Nodes {
			if len(nodes) > 0 {
				res = append(res, len(nodes))
			}
		}
		return res
	}
	before := sizes()
	patch := "Frame:\n  panel: !Panel\n    a: hi\n    inner: !Inner\n      ok: 2\n      c: !color nope\n"
	rep, err := Patch(doc, []byte(patch))
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Diagnostics) != 1 || !errors.Is(rep.Diagnostics[0], ErrUnsupported) {
		t.Fatalf("diagnostics %v", rep.Diagnostics)
	}
	if diff := cmp.Diff(before, sizes()); diff != "" {
		t.Errorf("sizes (-before +after):\n%s", diff)
	}
	if n := doc.Vacant(); n != 0 {
		t.Errorf("%d vacant nodes", n)
	}
	if got := encode.MustString(doc); got != frameLive {
		t.Errorf("document changed:\n%s", got)
	}
}

func TestPatchKeepsGoing(t *testing.T) {
	doc := mustLoad(t, frameSrc)
	rep, err := Patch(doc, []byte("Nope.x: 1\nFrame.walk: 30\n"))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Statements != 2 || rep.Replaced != 1 || len(rep.Diagnostics) != 1 {
		t.Errorf("report %s", rep)
	}
	if rep.Err() == nil {
		t.Error("expected joined error")
	}
}

func TestPatchSyntax(t *testing.T) {
	doc := mustLoad(t, frameSrc)
	if _, err := Patch(doc, []byte("Frame: [\n")); !errors.Is(err, ErrSyntax) {
		t.Errorf("got %v", err)
	}
}

func TestApplyJSONPatch(t *testing.T) {
	doc := mustLoad(t, frameSrc)
	patch := `[
  {"op": "replace", "path": "/Frame/walk", "value": 20},
  {"op": "add", "path": "/Frame/button/label", "value": "Stop"},
  {"op": "add", "path": "/Frame/height", "value": 5},
  {"op": "remove", "path": "/Frame/walk"},
  {"op": "replace", "path": "/Frame/missing", "value": 1}
]`
	rep, err := ApplyJSONPatch(doc, []byte(patch))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Replaced != 2 || rep.Added != 1 {
		t.Errorf("report %s", rep)
	}
	if len(rep.Diagnostics) != 2 {
		t.Fatalf("diagnostics %v", rep.Diagnostics)
	}
	if !errors.Is(rep.Diagnostics[0], ErrUnsupportedOp) {
		t.Errorf("got %v", rep.Diagnostics[0])
	}
	if !errors.Is(rep.Diagnostics[1], live.ErrPathNotFound) {
		t.Errorf("got %v", rep.Diagnostics[1])
	}
	want := "Frame {\n    walk:20\n    button:Button {label:\"Stop\"}\n    height:5\n}"
	if diff := cmp.Diff(want, encode.MustString(doc)); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
}

func TestApplyJSONPatchSyntax(t *testing.T) {
	doc := mustLoad(t, frameSrc)
	if _, err := ApplyJSONPatch(doc, []byte("{")); !errors.Is(err, ErrSyntax) {
		t.Errorf("got %v", err)
	}
}
