package main

import (
	"fmt"
	"io"
	"os"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool   `cli:"name=color desc='encode with color'"`
	Crate string `cli:"name=crate desc='crate named by a leading crate:: in use paths'"`

	L bool `cli:"name=l aliases=live desc='output live text'"`
	J bool `cli:"name=j aliases=json desc='output a json node tree'"`
	Y bool `cli:"name=y aliases=yaml desc='output a yaml node tree'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() format.Format {
	var f format.Format
	switch {
	case cfg.L:
		f = format.LiveFormat
	case cfg.Y:
		f = format.YAMLFormat
	case cfg.J:
		f = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig
	Compact bool `cli:"name=c aliases=compact desc='repack node levels before encoding'"`

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type PatchConfig struct {
	*MainConfig
	JSON   bool `cli:"name=json desc='patch is an RFC 6902 json patch'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	Diff   bool `cli:"name=d desc='show a diff instead of the patched document'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Paths   bool `cli:"name=paths desc='list changed paths instead of lines'"`

	Diff *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env  map[string]any
	At   string `cli:"name=at desc='path whereami() reports'"`
	Syms bool   `cli:"name=syms desc='show available functions'"`

	Eval *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type StatsConfig struct {
	*MainConfig
	Compact bool `cli:"name=compact desc='compact before counting'"`

	Stats *cli.Command
}

type BuildConfig struct {
	*MainConfig
	Env     map[string]any
	ShowEnv bool `cli:"name=s aliases=show,sh desc='show environment'"`

	Build *cli.Command
}
