package token

import (
	"fmt"

	"github.com/peamaeq/makepad/id"
)

const (
	MaxOffset = 1<<24 - 1
	MaxFile   = 1<<16 - 1

	offMask = 0xff_ffff
)

// Span is a packed (file, start, end) source location. Offsets are 24 bits
// wide and the file index 16; NewSpan silently masks larger values.
type Span struct {
	store uint64
}

type SpanParts struct {
	File  id.FileID
	Start int
	End   int
}

func NewSpan(file id.FileID, start, end int) Span {
	return Span{
		store: (uint64(file)&0xffff)<<48 |
			(uint64(start)&offMask)<<24 |
			uint64(end)&offMask,
	}
}

// NewSpanStrict is NewSpan but reports offsets that do not fit instead of
// truncating them.
func NewSpanStrict(file id.FileID, start, end int) (Span, error) {
	p := SpanParts{File: file, Start: start, End: end}
	if start < 0 || end < 0 || start > MaxOffset || end > MaxOffset || end < start {
		return Span{}, &SpanErr{Err: ErrSpanRange, Parts: p}
	}
	return Pack(p), nil
}

func Pack(p SpanParts) Span {
	return NewSpan(p.File, p.Start, p.End)
}

func SpanFromWord(w uint64) Span {
	return Span{store: w}
}

func (s Span) Word() uint64 { return s.store }

func (s Span) Start() int {
	return int((s.store >> 24) & offMask)
}

func (s Span) End() int {
	return int(s.store & offMask)
}

func (s Span) Len() int {
	return s.End() - s.Start()
}

func (s Span) File() id.FileID {
	return id.FileID((s.store >> 48) & 0xffff)
}

func (s Span) Parts() SpanParts {
	return SpanParts{File: s.File(), Start: s.Start(), End: s.End()}
}

func (s Span) String() string {
	return fmt.Sprintf("Span(start:%d, end:%d, file:%d)", s.Start(), s.End(), s.File())
}
