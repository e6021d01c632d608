package dirbuild

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peamaeq/makepad/encode"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

var testFiles = map[string]string{
	"build.yaml": `build:
  crate: makepad_widgets
  destDir: out
  sources:
  - path: frame.yaml
  - path: theme.yaml
    name: dark
  patches:
  - path: hot.yaml
    source: frame
  - path: fix.json
    source: dark
  - path: big.yaml
    source: frame
    if: env.scale > 1
  env:
    scale: 1
`,
	"frame.yaml": "Frame:\n  walk: 10\n  button: !Button\n    label: Go\n",
	"theme.yaml": "Theme:\n  bg: !color \"#000\"\n",
	"hot.yaml":   "Frame.button.label: Stop\n",
	"fix.json":   `[{"op": "add", "path": "/Theme/fg", "value": 1}]`,
	"big.yaml":   "Frame.walk: 99\n",
}

func TestOpenDir(t *testing.T) {
	root := writeFiles(t, testFiles)
	dir, err := OpenDir(root, map[string]any{"extra": true})
	if err != nil {
		t.Fatal(err)
	}
	if dir.Crate != "makepad_widgets" || dir.DestDir != "out" {
		t.Errorf("got %+v", dir)
	}
	names := []string{dir.Sources[0].Name, dir.Sources[1].Name}
	if diff := cmp.Diff([]string{"frame", "dark"}, names); diff != "" {
		t.Errorf("source names (-want +got):\n%s", diff)
	}
	if len(dir.Patches) != 3 || dir.Patches[2].If != "env.scale > 1" {
		t.Errorf("patches %+v", dir.Patches)
	}
	if dir.Env["extra"] != true || dir.Env["scale"] == nil {
		t.Errorf("env %v", dir.Env)
	}
}

func TestOpenDirMissing(t *testing.T) {
	if _, err := OpenDir(t.TempDir(), nil); err == nil {
		t.Error("expected error")
	}
}

func TestBuild(t *testing.T) {
	root := writeFiles(t, testFiles)
	for _, scale := range []int{1, 2} {
		dir, err := OpenDir(root, map[string]any{"scale": scale})
		if err != nil {
			t.Fatal(err)
		}
		units, err := dir.Build(nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(units) != 2 {
			t.Fatalf("got %d units", len(units))
		}
		walk := "10"
		if scale > 1 {
			walk = "99"
		}
		want := "Frame {\n    walk:" + walk + "\n    button:Button {label:\"Stop\"}\n}"
		if got := encode.MustString(units[0].Doc); got != want {
			t.Errorf("scale %d: got\n%s", scale, got)
		}
		if got := encode.MustString(units[1].Doc); got != "Theme {bg:#000000ff, fg:1}" {
			t.Errorf("scale %d: got %s", scale, got)
		}
		if units[0].Doc.Names != units[1].Doc.Names {
			t.Error("units do not share names")
		}
		if units[0].Doc.File == units[1].Doc.File {
			t.Error("units share a file id")
		}
	}
}

func TestRun(t *testing.T) {
	root := writeFiles(t, testFiles)
	dir, err := OpenDir(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if _, err := dir.Run(buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "---\n"); got != 1 {
		t.Errorf("got %d separators in\n%s", got, buf)
	}
	if _, err := dir.Run(nil); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(filepath.Join(root, "out", "dark.live"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(d); got != "Theme {bg:#000000ff, fg:1}\n" {
		t.Errorf("got %q", got)
	}
}

func TestBuildUnknownSource(t *testing.T) {
	files := map[string]string{
		"build.yaml": "build:\n  sources:\n  - path: a.yaml\n  patches:\n  - path: p.yaml\n    source: b\n",
		"a.yaml":     "A: !A\n  x: 1\n",
		"p.yaml":     "A.x: 2\n",
	}
	dir, err := OpenDir(writeFiles(t, files), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dir.Build(nil); err == nil {
		t.Error("expected error")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvEnv, "{scale: 3, debug: true}")
	env, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env["debug"] != true || env["scale"] == nil {
		t.Errorf("got %v", env)
	}
	t.Setenv(EnvEnv, "")
	env, err = LoadEnv()
	if err != nil || env != nil {
		t.Errorf("got %v, %v", env, err)
	}
}
