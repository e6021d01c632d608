package eval

import (
	"fmt"
	"maps"

	"github.com/expr-lang/expr"
	"github.com/peamaeq/makepad/debug"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

type Env map[string]any

// DocVar is the env variable holding the roots of the document, unless the
// caller sets it.
const DocVar = "doc"

type Option func(*evalState)

type evalState struct {
	here id.Ptr
}

// At sets the node whereami() reports.
func At(ptr id.Ptr) Option {
	return func(s *evalState) { s.here = ptr }
}

// Eval compiles and runs an expression against doc.
//
//	get("Frame.walk") * 2
//	has("Frame.button") && class("Frame.button") == "Button"
//	doc.Frame.button.label
func Eval(doc *live.Document, expression string, env Env, opts ...Option) (any, error) {
	st := &evalState{}
	for _, opt := range opts {
		opt(st)
	}
	runEnv := make(Env, len(env)+1)
	maps.Copy(runEnv, env)
	if _, ok := runEnv[DocVar]; !ok {
		runEnv[DocVar] = DocToAny(doc)
	}
	prg, err := expr.Compile(expression, exprOpts(doc, st.here)...)
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, map[string]any(runEnv))
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", expression, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q = %v\n", expression, res)
	}
	return res, nil
}
