package eval

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/peamaeq/makepad/debug"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

const (
	getName      name = "get"
	hasName      name = "has"
	className    name = "class"
	countName    name = "count"
	whereamiName name = "whereami"
)

type getSymbol struct{ name }
type hasSymbol struct{ name }
type classSymbol struct{ name }
type countSymbol struct{ name }
type whereamiSymbol struct{ name }

// Get returns get(path): the value at a dotted path.
func Get() Symbol { return getSymbol{getName} }

// Has returns has(path): whether a dotted path resolves.
func Has() Symbol { return hasSymbol{hasName} }

// Class returns class(path): the class name of a class or call node.
func Class() Symbol { return classSymbol{className} }

// Count returns count(path): the number of children of a node.
func Count() Symbol { return countSymbol{countName} }

// WhereAmI returns whereami(): the path of the node being evaluated.
func WhereAmI() Symbol { return whereamiSymbol{whereamiName} }

func (s getSymbol) Instance(doc *live.Document, _ id.Ptr) expr.Option {
	return expr.Function(s.String(), func(params ...any) (any, error) {
		ptr, err := resolve(doc, params[0].(string))
		if err != nil {
			return nil, err
		}
		return ToAny(doc, ptr), nil
	},
		new(func(string) any))
}

func (s hasSymbol) Instance(doc *live.Document, _ id.Ptr) expr.Option {
	return expr.Function(s.String(), func(params ...any) (any, error) {
		path, err := parsePath(params[0].(string))
		if err != nil {
			return nil, err
		}
		_, ok := doc.Scan(path)
		return ok, nil
	},
		new(func(string) bool))
}

func (s classSymbol) Instance(doc *live.Document, _ id.Ptr) expr.Option {
	return expr.Function(s.String(), func(params ...any) (any, error) {
		ptr, err := resolve(doc, params[0].(string))
		if err != nil {
			return nil, err
		}
		n, _ := doc.Node(ptr)
		switch n.Value.Type {
		case live.ClassType, live.CallType:
			return doc.ColonString(n.Value.ID), nil
		default:
			return "", nil
		}
	},
		new(func(string) string))
}

func (s countSymbol) Instance(doc *live.Document, _ id.Ptr) expr.Option {
	return expr.Function(s.String(), func(params ...any) (any, error) {
		ptr, err := resolve(doc, params[0].(string))
		if err != nil {
			return nil, err
		}
		return len(doc.Children(ptr)), nil
	},
		new(func(string) int))
}

func (s whereamiSymbol) Instance(doc *live.Document, here id.Ptr) expr.Option {
	return expr.Function(s.String(), func(params ...any) (any, error) {
		path, ok := PathTo(doc, here)
		if !ok {
			return "", fmt.Errorf("no node at %s", here)
		}
		return doc.Names.JoinPath(path, id.DotSep), nil
	},
		new(func() string))
}

func exprOpts(doc *live.Document, here id.Ptr) []expr.Option {
	syms := Symbols()
	res := make([]expr.Option, 0, len(syms))
	for _, s := range syms {
		res = append(res, s.Instance(doc, here))
	}
	return res
}

// parsePath hashes the segments of a dotted or :: path without interning
// them.
func parsePath(text string) ([]id.Id, error) {
	parts := strings.Split(strings.ReplaceAll(text, id.ColonSep, id.DotSep), id.DotSep)
	res := make([]id.Id, len(parts))
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("bad path %q", text)
		}
		res[i] = id.FromText(part)
	}
	return res, nil
}

func resolve(doc *live.Document, text string) (id.Ptr, error) {
	path, err := parsePath(text)
	if err != nil {
		return id.Ptr{}, err
	}
	ptr, err := doc.Resolve(path)
	if debug.Scan() {
		debug.Logf("resolve %q = %s err=%v\n", text, ptr, err)
	}
	return ptr, err
}

// PathTo finds the class path leading to ptr.
func PathTo(doc *live.Document, ptr id.Ptr) ([]id.Id, bool) {
	var walk func(level, start, count int, prefix []id.Id) ([]id.Id, bool)
	walk = func(level, start, count int, prefix []id.Id) ([]id.Id, bool) {
		for i := start; i < start+count; i++ {
			at := id.Ptr{Level: level, Index: i}
			n, ok := doc.Node(at)
			if !ok {
				return nil, false
			}
			path := append(prefix[:len(prefix):len(prefix)], n.ID)
			if at == ptr {
				return path, true
			}
			if n.Value.Type != live.ClassType || level >= ptr.Level {
				continue
			}
			s, c := n.Value.Children()
			if res, ok := walk(level+1, s, c, path); ok {
				return res, true
			}
		}
		return nil, false
	}
	return walk(0, 0, len(doc.Roots()), nil)
}
