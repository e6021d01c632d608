package main

import (
	"io"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/live"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachDoc(cfg.MainConfig, cc, args, func(doc *live.Document, w io.Writer) error {
		if cfg.Compact {
			doc.Compact()
		}
		return encode.Encode(doc, w, cfg.encOpts(w)...)
	})
}
