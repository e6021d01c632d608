package libdiff

import (
	"sort"
	"strings"

	"github.com/peamaeq/makepad/encode"
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/live"
)

// Change is a difference at one class path. From and To are rendered
// values; From is empty for Added and To is empty for Removed.
type Change struct {
	Path string
	Kind ChangeKind
	From string
	To   string
}

// Paths compares two documents by class path. Classes are descended into;
// every other node is compared by its rendered value, so a change inside an
// array shows up as a change of the whole array.
func Paths(from, to *live.Document) []Change {
	a, b := leaves(from), leaves(to)
	var res []Change
	for p, tv := range b {
		fv, ok := a[p]
		switch {
		case !ok:
			res = append(res, Change{Path: p, Kind: Added, To: tv})
		case fv != tv:
			res = append(res, Change{Path: p, Kind: Replaced, From: fv, To: tv})
		}
	}
	for p, fv := range a {
		if _, ok := b[p]; !ok {
			res = append(res, Change{Path: p, Kind: Removed, From: fv})
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Path < res[j].Path })
	return res
}

// leaves maps the path of every non-class node to its rendering. A class
// also records its class name so that a changed class shows up.
func leaves(doc *live.Document) map[string]string {
	res := map[string]string{}
	var walk func(level, start, count int, prefix string)
	walk = func(level, start, count int, prefix string) {
		for i := start; i < start+count; i++ {
			ptr := id.Ptr{Level: level, Index: i}
			n, ok := doc.Node(ptr)
			if !ok {
				return
			}
			p := doc.PathString(n.ID)
			if prefix != "" {
				p = prefix + id.DotSep + p
			}
			if n.Value.Type != live.ClassType {
				res[p] = nodeString(doc, ptr)
				continue
			}
			res[p] = "<" + doc.ColonString(n.Value.ID) + ">"
			s, c := n.Value.Children()
			walk(level+1, s, c, p)
		}
	}
	walk(0, 0, len(doc.Roots()), "")
	return res
}

func nodeString(doc *live.Document, ptr id.Ptr) string {
	n, _ := doc.Node(ptr)
	if n.Value.Type.HasChildren() {
		var b strings.Builder
		if err := encode.EncodeNode(doc, ptr, &b); err == nil {
			return strings.TrimSpace(b.String())
		}
	}
	return encode.Scalar(doc, n.Value)
}
