package main

import (
	"fmt"
	"io"

	"github.com/peamaeq/makepad/debug"
	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/live"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	text := args[0]
	if text == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	return eachDoc(cfg.MainConfig, cc, args[1:], func(doc *live.Document, w io.Writer) error {
		path, err := doc.Names.ParsePath(text)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		ptr, err := doc.Resolve(path)
		if debug.Scan() {
			debug.Logf("get %s = %s err=%v\n", text, ptr, err)
		}
		if err != nil {
			return err
		}
		return encode.EncodeNode(doc, ptr, w, cfg.encOpts(w)...)
	})
}
