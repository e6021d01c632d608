package token

import (
	"errors"
	"fmt"
)

var (
	ErrSpanRange = errors.New("span out of range")
	ErrBadToken  = errors.New("bad token")
)

type SpanErr struct {
	Err   error
	Parts SpanParts
}

func (e *SpanErr) Unwrap() error {
	return e.Err
}

func (e *SpanErr) Error() string {
	return fmt.Sprintf("%s: file=%d start=%d end=%d", e.Err.Error(), e.Parts.File, e.Parts.Start, e.Parts.End)
}
