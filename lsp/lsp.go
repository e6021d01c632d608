// Package lsp converts document errors to language server diagnostics.
package lsp

import (
	"errors"

	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/token"
	"go.lsp.dev/protocol"
)

const Source = "live"

// Range maps sp to a protocol range using the lines of src.
func Range(sp token.Span, src *token.Source) protocol.Range {
	sl, sc := src.LineCol(sp.Start())
	el, ec := src.LineCol(sp.End())
	return protocol.Range{
		Start: protocol.Position{Line: uint32(sl), Character: uint32(sc)},
		End:   protocol.Position{Line: uint32(el), Character: uint32(ec)},
	}
}

// Diagnostic converts err. Errors carrying a span are placed at it, others
// at the start of the file. Fatal errors are reported as errors, everything
// else as warnings since the offending statement was only skipped.
func Diagnostic(err error, src *token.Source) protocol.Diagnostic {
	d := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityWarning,
		Message:  err.Error(),
		Source:   Source,
	}
	var lerr *live.Error
	if errors.As(err, &lerr) {
		d.Message = lerr.Msg
		if d.Message == "" {
			d.Message = lerr.Error()
		}
		if src != nil {
			d.Range = Range(lerr.Span, src)
		}
		if sentinel := lerr.Unwrap(); sentinel != nil {
			d.Code = sentinel.Error()
		}
	}
	if live.IsFatal(err) || lerr == nil {
		d.Severity = protocol.DiagnosticSeverityError
	}
	return d
}

func Diagnostics(errs []error, src *token.Source) []protocol.Diagnostic {
	res := make([]protocol.Diagnostic, 0, len(errs))
	for _, err := range errs {
		res = append(res, Diagnostic(err, src))
	}
	return res
}
