package token

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/peamaeq/makepad/id"
)

// Source indexes the newlines of one source file so that span offsets can
// be reported as lines and columns.
type Source struct {
	File id.FileID
	Name string

	d []byte
	n []int
}

func NewSource(file id.FileID, name string, d []byte) *Source {
	s := &Source{File: file, Name: name, d: d}
	for i, c := range d {
		if c == '\n' {
			s.n = append(s.n, i)
		}
	}
	return s
}

func (s *Source) Bytes() []byte { return s.d }

// LineCol returns the 0 based line and column of off.
func (s *Source) LineCol(off int) (int, int) {
	N := len(s.n)
	di := sort.Search(N, func(i int) bool {
		return s.n[i] >= off
	})
	switch di {
	case 0:
		return 0, off
	default:
		return di, off - s.n[di-1] - 1
	}
}

// Text returns the source text covered by sp, clipped to the file.
func (s *Source) Text(sp Span) string {
	start := min(sp.Start(), len(s.d))
	end := max(start, min(sp.End(), len(s.d)))
	return string(s.d[start:end])
}

func (s *Source) Pos(sp Span) string {
	off := min(sp.Start(), len(s.d))
	line, col := s.LineCol(off)
	sample := string(s.d[max(0, off-5):min(off+5, len(s.d))])
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("file %d", s.File)
	}
	return fmt.Sprintf("%s: `...%s...` at offset %d (line=%d, col=%d)", name, sample, off, line, col)
}

// Offset returns the byte offset of the 1 based line and column, clipped
// to the line. Columns count runes.
func (s *Source) Offset(line, col int) int {
	if line < 1 || col < 1 {
		return 0
	}
	off := 0
	if line > 1 {
		if line-2 >= len(s.n) {
			return len(s.d)
		}
		off = s.n[line-2] + 1
	}
	for ; col > 1 && off < len(s.d) && s.d[off] != '\n'; col-- {
		_, w := utf8.DecodeRune(s.d[off:])
		off += w
	}
	return off
}
