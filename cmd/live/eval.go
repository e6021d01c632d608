package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peamaeq/makepad/eval"
	"github.com/peamaeq/makepad/live"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func liveEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Syms {
		fmt.Fprintf(cc.Out, "available functions:\n")
		for _, s := range eval.Symbols() {
			fmt.Fprintf(cc.Out, "\t- %s\n", s)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	expression := args[0]
	return eachDoc(cfg.MainConfig, cc, args[1:], func(doc *live.Document, w io.Writer) error {
		var opts []eval.Option
		if cfg.At != "" {
			path, err := doc.Names.ParsePath(cfg.At)
			if err != nil {
				return fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
			ptr, err := doc.Resolve(path)
			if err != nil {
				return err
			}
			opts = append(opts, eval.At(ptr))
		}
		res, err := eval.Eval(doc, expression, eval.Env(cfg.Env), opts...)
		if err != nil {
			return err
		}
		d, err := yaml.Marshal(res)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	})
}

func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	err := yaml.Unmarshal([]byte(val), &v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = v
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}
