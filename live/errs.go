package live

import (
	"errors"
	"fmt"

	"github.com/peamaeq/makepad/token"
)

var (
	ErrPathNotObject = errors.New("not an object path")
	ErrPathNotFound  = errors.New("path not found")
	ErrInvalidIdTag  = errors.New("unexpected id type")
	ErrInternal      = errors.New("internal inconsistency")
)

// Error is a span attributed failure of a document operation. It unwraps to
// one of the sentinel errors of this package.
type Error struct {
	Err  error
	Span token.Span
	Path string
	Msg  string
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Err.Error() + " " + e.Path
	}
	return fmt.Sprintf("%s at %s", msg, e.Span)
}

// IsFatal reports whether err signals a broken document invariant. The pass
// that produced it must be abandoned.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func newErr(sentinel error, sp token.Span, path, format string, args ...any) *Error {
	return &Error{
		Err:  sentinel,
		Span: sp,
		Path: path,
		Msg:  fmt.Sprintf(format, args...),
	}
}
