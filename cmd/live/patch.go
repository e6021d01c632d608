package main

import (
	"fmt"
	"io"

	"github.com/peamaeq/makepad/build"
	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/libdiff"
	"github.com/peamaeq/makepad/live"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	var (
		data []byte
		name = args[0]
	)
	if cfg.String {
		data = []byte(args[0])
		name = "<arg>"
	} else {
		data, err = readFile(cc, args[0])
		if err != nil {
			return err
		}
	}
	apply := build.Patch
	if cfg.JSON {
		apply = build.ApplyJSONPatch
	}
	skipped := 0
	err = eachDoc(cfg.MainConfig, cc, args[1:], func(doc *live.Document, w io.Writer) error {
		var before string
		if cfg.Diff {
			before = encode.MustString(doc)
		}
		rep, err := apply(doc, data, build.WithName(name), build.WithCrate(cfg.Crate))
		if err != nil {
			return err
		}
		theLog.Info("patched", "patch", name, "statements", rep.Statements,
			"replaced", rep.Replaced, "added", rep.Added)
		for _, d := range rep.Diagnostics {
			theLog.Warn("skipped", "error", d)
		}
		skipped += len(rep.Diagnostics)
		if cfg.Diff {
			_, err := io.WriteString(w, libdiff.Text(libdiff.DiffText(before, encode.MustString(doc))))
			return err
		}
		return encode.Encode(doc, w, cfg.encOpts(w)...)
	})
	if err != nil {
		return err
	}
	if skipped != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
