package eval

import (
	"github.com/expr-lang/expr"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

// Symbol is a function made available to expressions. Instance binds it to
// the document being evaluated and the node the expression is attached to.
type Symbol interface {
	String() string
	Instance(doc *live.Document, here id.Ptr) expr.Option
}

type name string

func (s name) String() string {
	return string(s)
}
