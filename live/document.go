package live

import (
	"fmt"
	"slices"

	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/token"
)

// Document is one compiled unit. It is not safe for concurrent mutation;
// a document that is no longer mutated may be read from several goroutines.
type Document struct {
	Recompile bool
	File      id.FileID
	Names     *id.Registry

	Nodes    [][]Node
	MultiIDs []id.Id
	Strings  []rune
	Tokens   []token.Token
	Scopes   []ScopeItem
}

// New returns an empty document whose diagnostics resolve names through
// names. names may be nil.
func New(file id.FileID, names *id.Registry) *Document {
	return &Document{
		Recompile: true,
		File:      file,
		Names:     names,
		Nodes:     [][]Node{nil},
	}
}

// RestartFrom discards all nodes and scopes of d and takes over the path,
// string and token pools of other, so that ids and pool references created
// against other stay valid in d.
func (d *Document) RestartFrom(other *Document) {
	for i := range d.Nodes {
		d.Nodes[i] = d.Nodes[i][:0]
	}
	d.MultiIDs = slices.Clone(other.MultiIDs)
	d.Strings = slices.Clone(other.Strings)
	d.Tokens = slices.Clone(other.Tokens)
	d.Scopes = d.Scopes[:0]
	if d.Names == nil {
		d.Names = other.Names
	}
	d.Recompile = true
}

func (d *Document) TokenSpan(tid token.TokenID) token.Span {
	if int(tid.Index) >= len(d.Tokens) {
		return token.NewSpan(tid.File, 0, 0)
	}
	return d.Tokens[tid.Index].Span
}

// LevelLen returns the number of nodes stored at level, creating empty
// levels up to it as needed.
func (d *Document) LevelLen(level int) int {
	for len(d.Nodes) <= level {
		d.Nodes = append(d.Nodes, nil)
	}
	return len(d.Nodes[level])
}

func (d *Document) level(level int) []Node {
	if level < 0 || level >= len(d.Nodes) {
		return nil
	}
	return d.Nodes[level]
}

// Levels returns the number of levels, empty ones included.
func (d *Document) Levels() int {
	return len(d.Nodes)
}

// PushNode appends n to level and returns its index. It does not search
// for an existing node with the same id; it is meant for building a fresh
// document in source order.
func (d *Document) PushNode(level int, n Node) int {
	i := d.LevelLen(level)
	d.Nodes[level] = append(d.Nodes[level], n)
	return i
}

func (d *Document) AddToken(t token.Token) token.TokenID {
	i := len(d.Tokens)
	d.Tokens = append(d.Tokens, t)
	return token.TokenID{File: d.File, Index: uint32(i)}
}

// AddString stores s in the string pool and returns a String value
// referring to it.
func (d *Document) AddString(s string) Value {
	start := len(d.Strings)
	d.Strings = append(d.Strings, []rune(s)...)
	return StringRef(uint32(start), uint32(len(d.Strings)-start))
}

// StringOf returns the text of a String value.
func (d *Document) StringOf(v Value) string {
	start, end := int(v.Start), int(v.Start+v.Count)
	if v.Type != StringType || end > len(d.Strings) {
		return ""
	}
	return string(d.Strings[start:end])
}

// AddScopes appends items to the scope pool and returns the run.
func (d *Document) AddScopes(items ...ScopeItem) (start, count uint32) {
	s := len(d.Scopes)
	d.Scopes = append(d.Scopes, items...)
	return uint32(s), uint32(len(items))
}

// CreateMultiID stores ids as one path in the segment pool.
func (d *Document) CreateMultiID(ids []id.Id) id.Id {
	i := len(d.MultiIDs)
	d.MultiIDs = append(d.MultiIDs, ids...)
	return id.MultiID(i, len(ids))
}

// Segments returns the path a Multi id refers to, or the id itself as a
// one element path.
func (d *Document) Segments(i id.Id) []id.Id {
	if !i.IsMulti() {
		return []id.Id{i}
	}
	index, count := i.GetMulti()
	if index+count > len(d.MultiIDs) {
		return nil
	}
	return d.MultiIDs[index : index+count]
}

// PathString renders i with dots between the segments of a Multi id.
func (d *Document) PathString(i id.Id) string {
	return d.Names.FormatPath(d.MultiIDs, i, id.DotSep)
}

// ColonString renders i with :: between the segments of a Multi id.
func (d *Document) ColonString(i id.Id) string {
	return d.Names.FormatPath(d.MultiIDs, i, id.ColonSep)
}

func (d *Document) Node(ptr id.Ptr) (*Node, bool) {
	nodes := d.level(ptr.Level)
	if ptr.Index < 0 || ptr.Index >= len(nodes) {
		return nil, false
	}
	return &nodes[ptr.Index], true
}

// Children returns the child run of the node at ptr. The returned slice
// aliases the document.
func (d *Document) Children(ptr id.Ptr) []Node {
	n, ok := d.Node(ptr)
	if !ok {
		return nil
	}
	start, count := n.Value.Children()
	nodes := d.level(ptr.Level + 1)
	if start+count > len(nodes) {
		return nil
	}
	return nodes[start : start+count]
}

// PtrID returns a NodePtr id referring to ptr in this document.
func (d *Document) PtrID(ptr id.Ptr) id.Id {
	return id.NodePtrID(d.File, ptr)
}

// FetchCrateModule resolves a two segment crate::module path. A leading
// crate placeholder stands for outerCrate. Any other id is a compiler bug
// and panics.
func (d *Document) FetchCrateModule(i id.Id, outerCrate id.Id) CrateModule {
	if i.IsMulti() {
		index, count := i.GetMulti()
		if count == 2 && index+2 <= len(d.MultiIDs) {
			crate := d.MultiIDs[index]
			if crate == id.Crate {
				crate = outerCrate
			}
			return CrateModule{Crate: crate, Module: d.MultiIDs[index+1]}
		}
	}
	panic(fmt.Sprintf("live: unexpected id type %v for crate module", i.Classify()))
}

// Roots returns level 0. The returned slice aliases the document.
func (d *Document) Roots() []Node {
	return d.level(0)
}

// Mark is the size of every level and pool of a document at one point.
type Mark struct {
	levels                         []int
	multiIDs, strings, tokens, scs int
}

func (d *Document) Mark() Mark {
	m := Mark{
		levels:   make([]int, len(d.Nodes)),
		multiIDs: len(d.MultiIDs),
		strings:  len(d.Strings),
		tokens:   len(d.Tokens),
		scs:      len(d.Scopes),
	}
	for i, nodes := range d.Nodes {
		m.levels[i] = len(nodes)
	}
	return m
}

// Rewind drops the nodes and pool entries appended since m. Nodes written
// in place since m are not restored.
func (d *Document) Rewind(m Mark) {
	for i := range d.Nodes {
		n := 0
		if i < len(m.levels) {
			n = m.levels[i]
		}
		d.Nodes[i] = d.Nodes[i][:min(n, len(d.Nodes[i]))]
	}
	d.MultiIDs = d.MultiIDs[:min(m.multiIDs, len(d.MultiIDs))]
	d.Strings = d.Strings[:min(m.strings, len(d.Strings))]
	d.Tokens = d.Tokens[:min(m.tokens, len(d.Tokens))]
	d.Scopes = d.Scopes[:min(m.scs, len(d.Scopes))]
}
