package live

import (
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/token"
)

// walkResult is where a path walk stopped.
type walkResult struct {
	ptr  id.Ptr // match for the last segment when err is nil
	at   int    // index of the segment the walk stopped at
	last id.Ptr // deepest node matched so far, Level -1 if none
	err  error
}

// walk resolves path segment by segment starting from the run
// [start, start+count) of level. Intermediate matches must be classes.
func (d *Document) walk(level, start, count int, path []id.Id) walkResult {
	res := walkResult{last: id.Ptr{Level: -1}}
	if len(path) == 0 {
		res.err = ErrPathNotFound
		return res
	}
	for i, seg := range path {
		res.at = i
		nodes := d.level(level)
		if start < 0 || count < 0 || start+count > len(nodes) {
			res.err = ErrInternal
			return res
		}
		found := -1
		for j := start; j < start+count; j++ {
			if nodes[j].ID == seg {
				found = j
				break
			}
		}
		if found < 0 {
			res.err = ErrPathNotFound
			return res
		}
		res.last = id.Ptr{Level: level, Index: found}
		if i == len(path)-1 {
			res.ptr = res.last
			return res
		}
		v := nodes[found].Value
		if v.Type != ClassType {
			res.err = ErrPathNotObject
			return res
		}
		level++
		start, count = v.Children()
	}
	return res
}

// Scan resolves path from the root range. Every segment but the last must
// name a class.
func (d *Document) Scan(path []id.Id) (id.Ptr, bool) {
	res := d.walk(0, 0, len(d.level(0)), path)
	return res.ptr, res.err == nil
}

// Resolve is Scan with an error describing where the walk stopped.
func (d *Document) Resolve(path []id.Id) (id.Ptr, error) {
	return d.ScanFrom(0, 0, len(d.level(0)), path)
}

// ScanFrom resolves path starting at the run [start, start+count) of level.
func (d *Document) ScanFrom(level, start, count int, path []id.Id) (id.Ptr, error) {
	res := d.walk(level, start, count, path)
	if res.err != nil {
		return id.Ptr{}, d.walkErr(res, path, d.lastSpan(res))
	}
	return res.ptr, nil
}

// ScanForExpand resolves segments 1..k-1 of the Multi id multi, read from
// src, within the run [start, start+count) of level. Segment 0 names the
// expansion root and is skipped.
func (d *Document) ScanForExpand(level, start, count int, src *Document, multi id.Id) (id.Ptr, error) {
	segs := src.Segments(multi)
	if len(segs) < 2 {
		return id.Ptr{}, newErr(ErrPathNotFound, token.Span{}, src.PathString(multi),
			"cannot find class %s", src.PathString(multi))
	}
	res := d.walk(level, start, count, segs[1:])
	if res.err != nil {
		res.at++
		return id.Ptr{}, d.walkErr(res, segs, d.lastSpan(res))
	}
	return res.ptr, nil
}

func (d *Document) lastSpan(res walkResult) token.Span {
	if n, ok := d.Node(res.last); ok {
		return d.TokenSpan(n.TokenID)
	}
	return token.Span{}
}

func (d *Document) walkErr(res walkResult, path []id.Id, sp token.Span) *Error {
	full := d.Names.JoinPath(path, id.DotSep)
	var seg id.Id
	if res.at < len(path) {
		seg = path[res.at]
	}
	switch res.err {
	case ErrPathNotObject:
		return newErr(ErrPathNotObject, sp, full,
			"cannot find property %s: %s is not an object path", full, d.Names.Format(seg))
	case ErrPathNotFound:
		if len(path) == 0 {
			return newErr(ErrPathNotFound, sp, full, "empty path")
		}
		return newErr(ErrPathNotFound, sp, full,
			"cannot find class %s: no %s", full, d.Names.Format(seg))
	default:
		return newErr(ErrInternal, sp, full, "child range out of bounds resolving %s", full)
	}
}
