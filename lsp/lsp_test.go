package lsp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/peamaeq/makepad/live"
	"github.com/peamaeq/makepad/token"
	"go.lsp.dev/protocol"
)

func TestDiagnostic(t *testing.T) {
	src := token.NewSource(0, "hot.yaml", []byte("Frame:\n  walk.x: 3\n"))
	err := &live.Error{
		Err:  live.ErrPathNotObject,
		Span: token.NewSpan(0, 9, 15),
		Path: "Frame.walk.x",
		Msg:  "walk is not an object path",
	}
	want := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 1, Character: 2},
			End:   protocol.Position{Line: 1, Character: 8},
		},
		Severity: protocol.DiagnosticSeverityWarning,
		Code:     "not an object path",
		Source:   Source,
		Message:  "walk is not an object path",
	}
	if diff := cmp.Diff(want, Diagnostic(err, src)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	fatal := Diagnostic(&live.Error{Err: live.ErrInternal, Msg: "lost"}, src)
	plain := Diagnostic(errors.New("boom"), src)
	for _, d := range []protocol.Diagnostic{fatal, plain} {
		if d.Severity != protocol.DiagnosticSeverityError {
			t.Errorf("%s: severity %v", d.Message, d.Severity)
		}
	}
	if got := Diagnostics([]error{err, err}, src); len(got) != 2 {
		t.Errorf("got %d diagnostics", len(got))
	}
}
