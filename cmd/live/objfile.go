package main

import (
	"fmt"
	"io"
	"os"

	"github.com/peamaeq/makepad/build"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"

	"github.com/scott-cotton/cli"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getDocFile loads path as file i. Documents loaded by one command share
// names so their ids compare.
func getDocFile(cfg *MainConfig, cc *cli.Context, names *id.Registry, i int, path string) (*live.Document, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	doc, err := build.Load(d,
		build.WithRegistry(names),
		build.WithFile(id.FileIndex(i)),
		build.WithName(path),
		build.WithCrate(cfg.Crate))
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return doc, nil
}

// eachDoc runs f on every file in args, or on stdin when there are none,
// writing a separator between outputs.
func eachDoc(cfg *MainConfig, cc *cli.Context, args []string, f func(doc *live.Document, w io.Writer) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	names := id.NewRegistry()
	for i, file := range args {
		doc, err := getDocFile(cfg, cc, names, i, file)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := f(doc, cc.Out); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}
