package build

import "errors"

var (
	ErrSyntax        = errors.New("syntax error")
	ErrUnsupported   = errors.New("unsupported value")
	ErrUnsupportedOp = errors.New("unsupported patch operation")
)
