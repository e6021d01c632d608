package main

import (
	"fmt"
	"io"
	"maps"

	"github.com/peamaeq/makepad/dirbuild"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func dirBuild(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	args, err = parseEnvExtras(cfg, cc, args)
	if err != nil {
		return err
	}
	dirPath := "."
	if len(args) != 0 {
		dirPath = args[0]
	}
	env, err := dirbuild.LoadEnv()
	if err != nil {
		return err
	}
	if env == nil {
		env = map[string]any{}
	}
	maps.Copy(env, cfg.Env)
	dir, err := dirbuild.OpenDir(dirPath, env)
	if err != nil {
		return err
	}
	if cfg.ShowEnv {
		d, err := yaml.Marshal(map[string]any{"env": dir.Env})
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(append([]byte("# build environment:\n"), d...))
		return err
	}
	var w io.Writer = cc.Out
	if dir.DestDir != "" && cfg.Out == "" {
		w = nil
	}
	units, err := dir.Run(w, cfg.MainConfig.encOpts(w)...)
	if err != nil {
		return err
	}
	skipped := 0
	for _, u := range units {
		for _, rep := range u.Reports {
			for _, d := range rep.Diagnostics {
				theLog.Warn("skipped", "source", u.Name, "error", d)
			}
			skipped += len(rep.Diagnostics)
		}
	}
	if skipped != 0 {
		return fmt.Errorf("%d patch statements skipped", skipped)
	}
	return nil
}

func parseEnvExtras(cfg *BuildConfig, cc *cli.Context, args []string) ([]string, error) {
	delim := -1
	for i, arg := range args {
		if arg == "--" {
			delim = i
			break
		}
	}
	if delim == -1 {
		return args, nil
	}
	f := envOptTypeFunc(cfg.Env)
	ret := args[:delim]
	delim++
	for delim < len(args) {
		arg := args[delim]
		delim++
		_, err := f(cc, arg)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}
