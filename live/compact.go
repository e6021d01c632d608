package live

import "github.com/peamaeq/makepad/id"

// Compact drops nodes that are no longer reachable from level 0, such as
// runs left behind by relocation, and packs every level in breadth first
// order. It returns where each surviving node moved. NodePtr ids of this
// document held in Id values and local scope targets are rewritten; any
// other pointer held by the caller must be mapped through the result.
func (d *Document) Compact() map[id.Ptr]id.Ptr {
	remap := make(map[id.Ptr]id.Ptr)
	packed := make([][]Node, len(d.Nodes))
	if len(d.Nodes) == 0 {
		return remap
	}
	packed[0] = append(packed[0], d.Nodes[0]...)
	for i := range packed[0] {
		remap[id.Ptr{Level: 0, Index: i}] = id.Ptr{Level: 0, Index: i}
	}
	for level := 0; level+1 < len(d.Nodes); level++ {
		old := d.Nodes[level+1]
		for i := range packed[level] {
			v := &packed[level][i].Value
			start, count := v.Children()
			if !v.Type.HasChildren() || start+count > len(old) {
				continue
			}
			at := len(packed[level+1])
			for j := range count {
				remap[id.Ptr{Level: level + 1, Index: start + j}] = id.Ptr{Level: level + 1, Index: at + j}
			}
			packed[level+1] = append(packed[level+1], old[start:start+count]...)
			v.Start = uint32(at)
		}
	}
	for len(packed) > 1 && len(packed[len(packed)-1]) == 0 {
		packed = packed[:len(packed)-1]
	}
	d.Nodes = packed

	moved := func(ptr id.Ptr) id.Ptr {
		if to, ok := remap[ptr]; ok {
			return to
		}
		return ptr
	}
	for level := range d.Nodes {
		for i := range d.Nodes[level] {
			v := &d.Nodes[level][i].Value
			if v.Type != IdType || !v.ID.IsNodePtr() {
				continue
			}
			if file, ptr := v.ID.GetNodePtr(); file == d.File {
				v.ID = id.NodePtrID(file, moved(ptr))
			}
		}
	}
	for i := range d.Scopes {
		if t := &d.Scopes[i].Target; t.Kind == LocalScope {
			t.Ptr = moved(t.Ptr)
		}
	}
	return remap
}

// Vacant returns the number of stored nodes that Compact would drop.
func (d *Document) Vacant() int {
	total := 0
	for _, nodes := range d.Nodes {
		total += len(nodes)
	}
	if len(d.Nodes) == 0 {
		return 0
	}
	reached := len(d.Nodes[0])
	runs := [][2]int{{0, len(d.Nodes[0])}}
	for level := 0; level+1 < len(d.Nodes) && len(runs) > 0; level++ {
		var next [][2]int
		for _, r := range runs {
			for _, n := range d.Nodes[level][r[0] : r[0]+r[1]] {
				start, count := n.Value.Children()
				if count == 0 || start+count > len(d.Nodes[level+1]) {
					continue
				}
				next = append(next, [2]int{start, count})
				reached += count
			}
		}
		runs = next
	}
	return total - reached
}
