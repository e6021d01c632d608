package id

import "fmt"

const (
	tagMask    = 0xE000_0000_0000_0000
	singleBit  = 0x8000_0000_0000_0000
	singleMask = 0x7fff_ffff_ffff_ffff
	bodyMask   = 0x1fff_ffff_ffff_ffff

	emptyTag   = 0x8000_0000_0000_0000
	nodePtrTag = 0xA000_0000_0000_0000
	multiTag   = 0xC000_0000_0000_0000
	numberTag  = 0xE000_0000_0000_0000

	lowMask = 0xffff_ffff
)

// Id is a packed identifier. See the package documentation for the layout.
type Id uint64

// FileID is the dense index of a source file.
type FileID uint16

func FileIndex(i int) FileID { return FileID(i) }

func (f FileID) Index() int { return int(f) }

// Ptr addresses one node of a live document.
type Ptr struct {
	Level int
	Index int
}

func (p Ptr) String() string {
	return fmt.Sprintf("%d:%d", p.Level, p.Index)
}

type Kind int

const (
	SingleKind Kind = iota
	EmptyKind
	NodePtrKind
	MultiKind
	NumberKind
)

func (k Kind) String() string {
	switch k {
	case SingleKind:
		return "Single"
	case EmptyKind:
		return "Empty"
	case NodePtrKind:
		return "NodePtr"
	case MultiKind:
		return "Multi"
	case NumberKind:
		return "Number"
	default:
		return "<unknown kind>"
	}
}

// Kind inspects only the top 3 bits.
func (i Id) Kind() Kind {
	if uint64(i)&singleBit == 0 {
		return SingleKind
	}
	switch uint64(i) & tagMask {
	case nodePtrTag:
		return NodePtrKind
	case multiTag:
		return MultiKind
	case numberTag:
		return NumberKind
	default:
		return EmptyKind
	}
}

func SingleID(v uint64) Id {
	return Id(v & singleMask)
}

func EmptyID() Id {
	return Id(emptyTag)
}

func NumberID(v uint64) Id {
	return Id(numberTag | (v & bodyMask))
}

// MultiID packs a run of count segments starting at index of a segment pool.
func MultiID(index, count int) Id {
	return Id(((uint64(count)<<32 | uint64(index)&lowMask) & bodyMask) | multiTag)
}

func NodePtrID(file FileID, ptr Ptr) Id {
	return Id(nodePtrTag |
		uint64(ptr.Index)&lowMask |
		uint64(file)<<32 |
		(uint64(ptr.Level)&0x1fff)<<48)
}

func (i Id) IsSingle() bool  { return uint64(i)&singleBit == 0 }
func (i Id) IsEmpty() bool   { return uint64(i)&tagMask == emptyTag }
func (i Id) IsNodePtr() bool { return uint64(i)&tagMask == nodePtrTag }
func (i Id) IsMulti() bool   { return uint64(i)&tagMask == multiTag }
func (i Id) IsNumber() bool  { return uint64(i)&tagMask == numberTag }

// GetMulti returns the pool index and segment count of a Multi id.
// It panics if i is not a Multi id.
func (i Id) GetMulti() (index, count int) {
	if !i.IsMulti() {
		panic(fmt.Sprintf("id: GetMulti on %s id", i.Kind()))
	}
	return int(uint64(i) & lowMask), int((uint64(i) & bodyMask) >> 32)
}

func (i Id) GetSingle() uint64 {
	if !i.IsSingle() {
		panic(fmt.Sprintf("id: GetSingle on %s id", i.Kind()))
	}
	return uint64(i)
}

func (i Id) GetNumber() uint64 {
	if !i.IsNumber() {
		panic(fmt.Sprintf("id: GetNumber on %s id", i.Kind()))
	}
	return uint64(i) & bodyMask
}

func (i Id) GetNodePtr() (FileID, Ptr) {
	if !i.IsNodePtr() {
		panic(fmt.Sprintf("id: GetNodePtr on %s id", i.Kind()))
	}
	return FileID((uint64(i) >> 32) & 0xffff), Ptr{
		Level: int((uint64(i) >> 48) & 0x1fff),
		Index: int(uint64(i) & lowMask),
	}
}

// String renders i without a registry; Single ids print as hashes.
func (i Id) String() string {
	var r *Registry
	return r.Format(i)
}
