package main

import (
	"encoding/json"
	"fmt"

	"github.com/peamaeq/makepad/build"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/lsp"
	"github.com/peamaeq/makepad/token"

	"github.com/scott-cotton/cli"
	"go.lsp.dev/protocol"
)

// check prints one line of json per diagnostic, prefixed by the file.
func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	names := id.NewRegistry()
	failed := 0
	for i, file := range args {
		d, err := readFile(cc, file)
		if err != nil {
			return err
		}
		_, err = build.Load(d,
			build.WithRegistry(names),
			build.WithFile(id.FileIndex(i)),
			build.WithName(file),
			build.WithCrate(cfg.Crate))
		if err == nil {
			continue
		}
		failed++
		diag := lsp.Diagnostic(err, token.NewSource(id.FileIndex(i), file, d))
		if err := writeDiagnostic(cc, file, diag); err != nil {
			return err
		}
	}
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func writeDiagnostic(cc *cli.Context, file string, diag protocol.Diagnostic) error {
	d, err := json.Marshal(diag)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cc.Out, "%s: %s\n", file, d)
	return err
}
