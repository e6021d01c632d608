// Package dirbuild builds the live documents of a build directory.
//
// A build directory holds a build.yaml (or build.json) naming the sources
// to load and the patches to apply to them, in order:
//
//	build:
//	  crate: makepad_widgets
//	  destDir: out
//	  sources:
//	  - path: frame.yaml
//	  patches:
//	  - path: hot.yaml
//	  - path: fix.json
//	    source: frame
//	  - path: big.yaml
//	    if: env.scale > 1
//	  env:
//	    scale: 2
package dirbuild

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/peamaeq/makepad/build"
	"github.com/peamaeq/makepad/debug"
	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/eval"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"

	"github.com/goccy/go-yaml"
)

// EnvVar names the build env in patch conditions.
const EnvVar = "env"

type Dir struct {
	Root    string         `json:"-"`
	Crate   string         `json:"crate,omitempty"`
	DestDir string         `json:"destDir,omitempty"`
	Sources []DirSource    `json:"sources"`
	Patches []DirPatch     `json:"patches,omitempty"`
	Env     map[string]any `json:"env,omitempty"`
}

type DirSource struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

// DirPatch is applied to the source named Source, or to every source when
// Source is empty. Files ending in .json are RFC 6902 patches. If, when set,
// is an expression evaluated against each target with the build env bound
// to env; the patch is skipped where it is false.
type DirPatch struct {
	Path   string `json:"path"`
	Source string `json:"source,omitempty"`
	If     string `json:"if,omitempty"`
}

func (p *DirPatch) String() string {
	if p.Source == "" {
		return p.Path
	}
	return p.Path + " -> " + p.Source
}

// Unit is one built source.
type Unit struct {
	Name    string
	Doc     *live.Document
	Reports []*build.Report
}

func OpenDir(path string, env map[string]any) (*Dir, error) {
	if debug.Build() {
		debug.Logf("OpenDir input env:\n%s\n", env)
	}
	var d []byte
	var found string
	for _, ext := range []string{".yaml", ".json"} {
		candidatePath := filepath.Join(path, "build"+ext)
		var err error
		d, err = os.ReadFile(candidatePath)
		if err == nil {
			found = candidatePath
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %q: %w", candidatePath, err)
		}
	}
	if found == "" {
		return nil, fmt.Errorf("could not find build.{yaml,json} in %q", path)
	}
	var top struct {
		Build Dir `json:"build"`
	}
	if err := yaml.Unmarshal(d, &top); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", found, err)
	}
	dir := &top.Build
	dir.Root = path
	if dir.Env == nil {
		dir.Env = map[string]any{}
	}
	maps.Copy(dir.Env, env)
	if len(dir.Sources) == 0 {
		return nil, fmt.Errorf("%s: no sources", found)
	}
	for i := range dir.Sources {
		if dir.Sources[i].Name == "" {
			base := filepath.Base(dir.Sources[i].Path)
			dir.Sources[i].Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
	if debug.Patch() {
		for i := range dir.Patches {
			debug.Logf("loaded patch %s\n", &dir.Patches[i])
		}
	}
	return dir, nil
}

// Build loads every source, each as its own file id, and applies the
// patches. Names are interned in names, which may be nil.
func (dir *Dir) Build(names *id.Registry) ([]*Unit, error) {
	if names == nil {
		names = id.NewRegistry()
	}
	units := make([]*Unit, len(dir.Sources))
	byName := make(map[string]*Unit, len(dir.Sources))
	for i, src := range dir.Sources {
		d, err := os.ReadFile(filepath.Join(dir.Root, src.Path))
		if err != nil {
			return nil, err
		}
		doc, err := build.Load(d,
			build.WithRegistry(names),
			build.WithFile(id.FileIndex(i)),
			build.WithName(src.Path),
			build.WithCrate(dir.Crate))
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", src.Path, err)
		}
		units[i] = &Unit{Name: src.Name, Doc: doc}
		if _, dup := byName[src.Name]; dup {
			return nil, fmt.Errorf("duplicate source name %q", src.Name)
		}
		byName[src.Name] = units[i]
	}
	for i := range dir.Patches {
		p := &dir.Patches[i]
		targets := units
		if p.Source != "" {
			u := byName[p.Source]
			if u == nil {
				return nil, fmt.Errorf("patch %s: no source named %q", p.Path, p.Source)
			}
			targets = []*Unit{u}
		}
		d, err := os.ReadFile(filepath.Join(dir.Root, p.Path))
		if err != nil {
			return nil, err
		}
		for _, u := range targets {
			ok, err := dir.cond(p, u)
			if err != nil {
				return nil, err
			}
			if !ok {
				if debug.Patch() {
					debug.Logf("skipping %s on %s\n", p, u.Name)
				}
				continue
			}
			apply := build.Patch
			if filepath.Ext(p.Path) == ".json" {
				apply = build.ApplyJSONPatch
			}
			rep, err := apply(u.Doc, d, build.WithName(p.Path), build.WithCrate(dir.Crate))
			if err != nil {
				return nil, fmt.Errorf("error applying %s to %s: %w", p.Path, u.Name, err)
			}
			u.Reports = append(u.Reports, rep)
		}
	}
	return units, nil
}

func (dir *Dir) cond(p *DirPatch, u *Unit) (bool, error) {
	if p.If == "" {
		return true, nil
	}
	res, err := eval.Eval(u.Doc, p.If, eval.Env{EnvVar: dir.Env})
	if err != nil {
		return false, fmt.Errorf("patch %s: %w", p.Path, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("patch %s: condition %q gave %T, not bool", p.Path, p.If, res)
	}
	return b, nil
}

// Run builds the directory and writes the units to w separated by ---, or,
// when w is nil, each to its own file in DestDir.
func (dir *Dir) Run(w io.Writer, opts ...encode.EncodeOption) ([]*Unit, error) {
	units, err := dir.Build(nil)
	if err != nil {
		return nil, err
	}
	if w == nil && dir.DestDir == "" {
		return nil, fmt.Errorf("no output and no destDir")
	}
	suffix := encode.FormatFromOpts(opts...).Suffix()
	for i, u := range units {
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(u.Doc, buf, opts...); err != nil {
			return nil, fmt.Errorf("error encoding %s: %w", u.Name, err)
		}
		if w == nil {
			dest := filepath.Join(dir.Root, dir.DestDir, u.Name+suffix)
			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(dest, buf.Bytes(), 0644); err != nil {
				return nil, err
			}
			continue
		}
		if i > 0 {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return nil, err
			}
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return nil, err
		}
	}
	return units, nil
}
