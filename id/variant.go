package id

// Variant is the unpacked form of an Id.
type Variant interface {
	Kind() Kind
	Pack() Id
}

type Single struct {
	Hash uint64
}

type Empty struct{}

type Number struct {
	Value uint64
}

type Multi struct {
	Index int
	Count int
}

type NodePtr struct {
	File FileID
	Ptr  Ptr
}

func (Single) Kind() Kind  { return SingleKind }
func (Empty) Kind() Kind   { return EmptyKind }
func (Number) Kind() Kind  { return NumberKind }
func (Multi) Kind() Kind   { return MultiKind }
func (NodePtr) Kind() Kind { return NodePtrKind }

func (v Single) Pack() Id  { return SingleID(v.Hash) }
func (Empty) Pack() Id     { return EmptyID() }
func (v Number) Pack() Id  { return NumberID(v.Value) }
func (v Multi) Pack() Id   { return MultiID(v.Index, v.Count) }
func (v NodePtr) Pack() Id { return NodePtrID(v.File, v.Ptr) }

// Classify unpacks i into its variant.
func (i Id) Classify() Variant {
	switch i.Kind() {
	case SingleKind:
		return Single{Hash: uint64(i)}
	case NodePtrKind:
		f, p := i.GetNodePtr()
		return NodePtr{File: f, Ptr: p}
	case MultiKind:
		index, count := i.GetMulti()
		return Multi{Index: index, Count: count}
	case NumberKind:
		return Number{Value: i.GetNumber()}
	default:
		return Empty{}
	}
}

// Encode packs v. Values outside the packed ranges are truncated.
func Encode(v Variant) Id {
	return v.Pack()
}
