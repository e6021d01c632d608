package debug

import (
	"bytes"
	"os"
	"testing"

	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

func TestLogf(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	out = buf
	defer func() { out = os.Stderr }()

	names := id.NewRegistry()
	doc := live.New(0, names)
	doc.PushNode(0, live.Node{ID: names.MustIntern("speed"), Value: live.Int(3)})
	Logf("doc %s\nargs %s\n", Doc{doc}, map[string]any{"a": 1})

	want := "doc speed:3\n\nargs {\n   |  \"a\": 1\n   |}\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("LIVE_DEBUG_TEST", "true")
	if !boolEnv("LIVE_DEBUG_TEST") {
		t.Error("true not read")
	}
	t.Setenv("LIVE_DEBUG_TEST", "nope")
	if boolEnv("LIVE_DEBUG_TEST") {
		t.Error("bad value read as true")
	}

	saved := *d
	defer func() { *d = saved }()
	d.Scan = true
	if !Scan() {
		t.Error("scan flag not reported")
	}
}
