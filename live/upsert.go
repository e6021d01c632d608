package live

import (
	"github.com/peamaeq/makepad/id"
)

// WriteOrAddNode stores n in the run [start, start+count) of level.
//
// A Single or Empty id is looked up in the run and overwritten in place when
// present. Otherwise n is appended to the end of level and its index is
// returned with fresh set; the caller owns attaching it to a parent.
//
// A Multi id is a path whose segments are read from src. All but the last
// segment must name existing classes. The last segment is overwritten when
// present or else appended to the child run of its parent class, moving the
// run to the end of the level first when it is not already last.
func (d *Document) WriteOrAddNode(level, start, count int, src *Document, n Node) (int, bool, error) {
	switch n.ID.Kind() {
	case id.SingleKind, id.EmptyKind:
		return d.upsertSingle(level, start, count, src, n)
	case id.MultiKind:
		return 0, false, d.upsertPath(level, start, count, src, n)
	default:
		return 0, false, newErr(ErrInvalidIdTag, src.TokenSpan(n.TokenID), d.Names.Format(n.ID),
			"unexpected id type %s", n.ID.Kind())
	}
}

func (d *Document) upsertSingle(level, start, count int, src *Document, n Node) (int, bool, error) {
	d.LevelLen(level)
	nodes := d.Nodes[level]
	if start < 0 || count < 0 || start+count > len(nodes) {
		return 0, false, newErr(ErrInternal, src.TokenSpan(n.TokenID), d.Names.Format(n.ID),
			"run %d+%d out of bounds at level %d", start, count, level)
	}
	for i := start; i < start+count; i++ {
		if nodes[i].ID == n.ID {
			nodes[i].TokenID = n.TokenID
			nodes[i].Value = n.Value
			return 0, false, nil
		}
	}
	return d.PushNode(level, n), true, nil
}

func (d *Document) upsertPath(level, start, count int, src *Document, n Node) error {
	segs := src.Segments(n.ID)
	sp := src.TokenSpan(n.TokenID)
	path := src.PathString(n.ID)
	if len(segs) == 0 {
		return newErr(ErrInternal, sp, path, "multi id %s outside of the path pool", n.ID.Classify())
	}
	parent := id.Ptr{Level: -1}
	for i, seg := range segs {
		last := i == len(segs)-1
		d.LevelLen(level)
		nodes := d.Nodes[level]
		if start < 0 || count < 0 || start+count > len(nodes) {
			return newErr(ErrInternal, sp, path, "run %d+%d out of bounds at level %d", start, count, level)
		}
		found := -1
		for j := start; j < start+count; j++ {
			if nodes[j].ID == seg {
				found = j
				break
			}
		}
		if found >= 0 {
			if last {
				nodes[found].TokenID = n.TokenID
				nodes[found].Value = n.Value
				return nil
			}
			v := nodes[found].Value
			if v.Type != ClassType {
				return newErr(ErrPathNotObject, sp, path,
					"cannot find property %s: %s is not an object path", path, d.Names.Format(seg))
			}
			parent = id.Ptr{Level: level, Index: found}
			level++
			start, count = v.Children()
			continue
		}
		if !last || parent.Level < 0 {
			return newErr(ErrPathNotFound, sp, path, "cannot find class %s: no %s", path, d.Names.Format(seg))
		}
		return d.appendChild(parent, start, count, Node{ID: seg, TokenID: n.TokenID, Value: n.Value}, path)
	}
	return newErr(ErrInternal, sp, path, "unexpected problem in upsert of %s", path)
}

// appendChild adds n to the child run [start, start+count) of the class at
// parent, relocating the run to the end of the child level when another run
// follows it.
func (d *Document) appendChild(parent id.Ptr, start, count int, n Node, path string) error {
	level := parent.Level + 1
	end := d.LevelLen(level)
	p, ok := d.Node(parent)
	if !ok || p.Value.Type != ClassType {
		return newErr(ErrInternal, d.TokenSpan(n.TokenID), path, "parent class of %s lost", path)
	}
	if end != start+count {
		d.Nodes[level] = append(d.Nodes[level], d.Nodes[level][start:start+count]...)
		p.Value.Start = uint32(end)
	}
	p.Value.Count++
	d.Nodes[level] = append(d.Nodes[level], n)
	return nil
}
