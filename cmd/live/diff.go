package main

import (
	"fmt"
	"io"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/libdiff"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	names := id.NewRegistry()
	a, err := getDocFile(cfg.MainConfig, cc, names, 0, args[0])
	if err != nil {
		return err
	}
	b, err := getDocFile(cfg.MainConfig, cc, names, 1, args[1])
	if err != nil {
		return err
	}
	if cfg.Paths {
		changes := libdiff.Paths(a, b)
		if cfg.Reverse {
			changes = libdiff.ReverseChanges(changes)
		}
		if len(changes) == 0 {
			return nil
		}
		if err := writeChanges(cc.Out, changes); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	lines := libdiff.Diff(a, b, encode.EncodeFormat(cfg.outFormat()))
	if !libdiff.Changed(lines) {
		return nil
	}
	if cfg.Reverse {
		lines = libdiff.Reverse(lines)
	}
	if _, err := io.WriteString(cc.Out, libdiff.Text(lines)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

func writeChanges(w io.Writer, changes []libdiff.Change) error {
	type change struct {
		Path string `yaml:"path"`
		Kind string `yaml:"kind"`
		From string `yaml:"from,omitempty"`
		To   string `yaml:"to,omitempty"`
	}
	out := make([]change, len(changes))
	for i, c := range changes {
		out[i] = change{Path: c.Path, Kind: c.Kind.String(), From: c.From, To: c.To}
	}
	d, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
