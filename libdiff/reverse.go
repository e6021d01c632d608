package libdiff

// Reverse returns the diff that undoes lines.
func Reverse(lines []Line) []Line {
	res := make([]Line, len(lines))
	for i, ln := range lines {
		switch ln.Op {
		case Insert:
			ln.Op = Delete
		case Delete:
			ln.Op = Insert
		}
		res[i] = ln
	}
	return res
}

// ReverseChanges returns the changes that undo cs.
func ReverseChanges(cs []Change) []Change {
	res := make([]Change, len(cs))
	for i, c := range cs {
		switch c.Kind {
		case Added:
			c.Kind = Removed
		case Removed:
			c.Kind = Added
		}
		c.From, c.To = c.To, c.From
		res[i] = c
	}
	return res
}
