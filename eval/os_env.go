package eval

import (
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

var getenvSym = &getenvSymbol{name: getenvName}

func GetEnv() Symbol {
	return getenvSym
}

const (
	getenvName name = "getenv"
)

type getenvSymbol struct {
	name
}

func (s getenvSymbol) Instance(*live.Document, id.Ptr) expr.Option {
	return expr.Function(s.String(), func(params ...any) (any, error) {
		return os.Getenv(strings.TrimSpace(params[0].(string))), nil
	},
		new(func(string) string))
}
