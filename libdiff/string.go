package libdiff

import (
	"strings"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/live"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Line is one line of a rendered document diff.
type Line struct {
	Op   Op
	Text string
}

// Diff compares the rendered forms of two documents line by line.
func Diff(from, to *live.Document, opts ...encode.EncodeOption) []Line {
	return DiffText(encode.MustString(from, opts...), encode.MustString(to, opts...))
}

func DiffText(from, to string) []Line {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from+"\n", to+"\n")
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(a, b, false), lines)
	var res []Line
	for i := range diffs {
		diff := &diffs[i]
		op := Equal
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range strings.SplitAfter(diff.Text, "\n") {
			if ln == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(ln, "\n")})
		}
	}
	return res
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

// Text renders lines with a +, - or space marker.
func Text(lines []Line) string {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.Op.Prefix())
		b.WriteString(" ")
		b.WriteString(ln.Text)
		b.WriteString("\n")
	}
	return b.String()
}
