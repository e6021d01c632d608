package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

func frame(walk int64, label string, extra bool) *live.Document {
	names := id.NewRegistry()
	n := names.MustIntern
	doc := live.New(0, names)
	count := uint32(2)
	if extra {
		count = 3
	}
	doc.PushNode(0, live.Node{ID: n("Frame"), Value: live.Class(n("Frame"), 0, count)})
	doc.PushNode(1, live.Node{ID: n("walk"), Value: live.Int(walk)})
	doc.PushNode(1, live.Node{ID: n("button"), Value: live.Class(n("Button"), 0, 1)})
	if extra {
		doc.PushNode(1, live.Node{ID: n("items"), Value: live.Array(1, 2)})
	}
	doc.PushNode(2, live.Node{ID: n("label"), Value: doc.AddString(label)})
	if extra {
		doc.PushNode(2, live.Node{ID: id.EmptyID(), Value: live.Int(1)})
		doc.PushNode(2, live.Node{ID: id.EmptyID(), Value: live.Int(2)})
	}
	return doc
}

func TestDiff(t *testing.T) {
	lines := Diff(frame(10, "Go", false), frame(20, "Go", false))
	want := []Line{
		{Equal, "Frame {"},
		{Delete, "    walk:10"},
		{Insert, "    walk:20"},
		{Equal, "    button:Button {label:\"Go\"}"},
		{Equal, "}"},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !Changed(lines) {
		t.Error("expected a change")
	}
	if Changed(Diff(frame(10, "Go", false), frame(10, "Go", false))) {
		t.Error("identical documents differ")
	}
	back := Reverse(lines)
	if back[1].Op != Insert || back[2].Op != Delete {
		t.Errorf("reverse: %v", back)
	}
	text := Text(lines[:3])
	if text != "  Frame {\n-     walk:10\n+     walk:20\n" {
		t.Errorf("text %q", text)
	}
}

func TestPaths(t *testing.T) {
	got := Paths(frame(10, "Go", true), frame(10, "Stop", false))
	want := []Change{
		{Path: "Frame.button.label", Kind: Replaced, From: `"Go"`, To: `"Stop"`},
		{Path: "Frame.items", Kind: Removed, From: "items:[1, 2]"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	back := ReverseChanges(got)
	if back[1].Kind != Added || back[1].To != "items:[1, 2]" || back[0].From != `"Stop"` {
		t.Errorf("reverse: %+v", back)
	}
}
