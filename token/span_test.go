package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/peamaeq/makepad/id"
)

func TestSpanRoundTrip(t *testing.T) {
	tests := []SpanParts{
		{File: 0, Start: 0, End: 0},
		{File: 1, Start: 3, End: 10},
		{File: MaxFile, Start: MaxOffset - 1, End: MaxOffset},
		{File: 42, Start: 1000, End: 1000},
	}
	for _, tt := range tests {
		sp := NewSpan(tt.File, tt.Start, tt.End)
		if sp.File() != tt.File || sp.Start() != tt.Start || sp.End() != tt.End {
			t.Errorf("%+v round tripped to %s", tt, sp)
		}
		if sp.Len() != tt.End-tt.Start {
			t.Errorf("%+v len %d", tt, sp.Len())
		}
		if sp.Parts() != tt {
			t.Errorf("parts %+v != %+v", sp.Parts(), tt)
		}
		if SpanFromWord(sp.Word()) != sp {
			t.Errorf("word round trip %s", sp)
		}
	}
}

func TestSpanTruncates(t *testing.T) {
	sp := NewSpan(id.FileID(3), MaxOffset+1, MaxOffset+5)
	if sp.Start() != 0 || sp.End() != 4 || sp.File() != 3 {
		t.Errorf("truncated span %s", sp)
	}
}

func TestSpanStrict(t *testing.T) {
	if _, err := NewSpanStrict(1, 0, MaxOffset+1); !errors.Is(err, ErrSpanRange) {
		t.Errorf("expected range error, got %v", err)
	}
	if _, err := NewSpanStrict(1, 5, 4); !errors.Is(err, ErrSpanRange) {
		t.Errorf("expected range error for inverted span, got %v", err)
	}
	sp, err := NewSpanStrict(2, 4, 9)
	if err != nil {
		t.Fatal(err)
	}
	if sp.String() != "Span(start:4, end:9, file:2)" {
		t.Errorf("span string %q", sp.String())
	}
}

func TestSourceLineCol(t *testing.T) {
	src := NewSource(0, "a.live", []byte("ab\ncd\n\nef"))
	tests := []struct {
		off, line, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{3, 1, 0},
		{4, 1, 1},
		{6, 2, 0},
		{7, 3, 0},
		{8, 3, 1},
	}
	for _, tt := range tests {
		line, col := src.LineCol(tt.off)
		if line != tt.line || col != tt.col {
			t.Errorf("LineCol(%d) = %d,%d want %d,%d", tt.off, line, col, tt.line, tt.col)
		}
		if off := src.Offset(tt.line+1, tt.col+1); off != tt.off {
			t.Errorf("Offset(%d, %d) = %d want %d", tt.line+1, tt.col+1, off, tt.off)
		}
	}
	if got := src.Text(NewSpan(0, 3, 5)); got != "cd" {
		t.Errorf("text %q", got)
	}
	if got := src.Text(NewSpan(0, 8, 100)); got != "f" {
		t.Errorf("clipped text %q", got)
	}
}

func TestSourceOffsetRunes(t *testing.T) {
	d := "title: \"héllo\" # ü\nnext: 1\n"
	src := NewSource(0, "a.live", []byte(d))
	tests := []struct {
		line, col int
		want      string
	}{
		{1, 1, "title"},
		{1, 16, "#"},
		{1, 18, "ü"},
		{2, 7, "1"},
	}
	for _, tt := range tests {
		off := src.Offset(tt.line, tt.col)
		if !strings.HasPrefix(d[off:], tt.want) {
			t.Errorf("Offset(%d, %d) = %d at %q, want %q", tt.line, tt.col, off, d[off:], tt.want)
		}
	}
	if off := src.Offset(1, 40); d[off] != '\n' {
		t.Errorf("past end of line: %d", off)
	}
}
